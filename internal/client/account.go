// ABOUTME: Account endpoints: login, password change and profile update
// ABOUTME: Payloads carry the server's role vocabulary; callers translate it

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Admin is the admin record as the server reports it
type Admin struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Status   string `json:"status,omitempty"`
}

// LoginResult is the data field of a successful login
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Admin       Admin  `json:"admin"`
}

// ChangePasswordInput is the body of POST /admin/change-password
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdate holds the multipart fields of POST /admin/update-profile.
// Empty fields are not sent. Avatar is read from AvatarPath when set.
type ProfileUpdate struct {
	Email      string
	Mobile     string
	AvatarPath string
}

// Login calls POST /admin/login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req, err := jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	req.authed = false

	var result LoginResult
	if _, err := c.do(ctx, req, &result); err != nil {
		return nil, err
	}
	if result.AccessToken == "" || result.Admin.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "invalid response from backend: login response missing token or admin"}
	}
	return &result, nil
}

// ChangePassword calls POST /admin/change-password and returns the server message
func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) (string, error) {
	req, err := jsonRequest(http.MethodPost, "/admin/change-password", input)
	if err != nil {
		return "", err
	}
	return c.do(ctx, req, nil)
}

// UpdateProfile calls POST /admin/update-profile with a multipart body
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Admin, error) {
	body, contentType, err := profileBody(update)
	if err != nil {
		return nil, err
	}

	var admin Admin
	_, err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/admin/update-profile",
		body:        body,
		contentType: contentType,
		authed:      true,
	}, &admin)
	if err != nil {
		return nil, err
	}
	if admin.ID == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "invalid response from backend: profile response missing _id"}
	}
	return &admin, nil
}

func profileBody(update ProfileUpdate) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"email", update.Email},
		{"mobile", update.Mobile},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s field: %w", f.name, err)
		}
	}

	if update.AvatarPath != "" {
		f, err := os.Open(update.AvatarPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open avatar: %w", err)
		}
		defer f.Close()

		part, err := mw.CreateFormFile("avatar", filepath.Base(update.AvatarPath))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create avatar part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("failed to read avatar: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
