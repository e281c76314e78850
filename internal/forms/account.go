// ABOUTME: Login, password change and profile forms
// ABOUTME: Checked locally so bad input never reaches the API

package forms

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
)

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate trims the email and checks both fields
func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	return validate.Struct(c)
}

// PasswordChange is the change-password form
type PasswordChange struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=OldPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Input validates the form and builds the request body
func (p *PasswordChange) Input() (client.ChangePasswordInput, error) {
	if err := validate.Struct(p); err != nil {
		return client.ChangePasswordInput{}, err
	}
	return client.ChangePasswordInput{OldPassword: p.OldPassword, NewPassword: p.NewPassword}, nil
}

// ProfileForm is the update-profile form. Blank fields are left unchanged.
type ProfileForm struct {
	Email      string `json:"email" validate:"omitempty,email"`
	Mobile     string `json:"mobile" validate:"omitempty,e164"`
	AvatarPath string `json:"avatar"`
}

// Update validates the form and builds the multipart fields
func (p *ProfileForm) Update() (client.ProfileUpdate, error) {
	p.Email = strings.TrimSpace(p.Email)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.AvatarPath = strings.TrimSpace(p.AvatarPath)

	if p.Email == "" && p.Mobile == "" && p.AvatarPath == "" {
		return client.ProfileUpdate{}, errors.New("nothing to update")
	}
	if err := validate.Struct(p); err != nil {
		return client.ProfileUpdate{}, err
	}
	if p.AvatarPath != "" {
		info, err := os.Stat(p.AvatarPath)
		if err != nil || info.IsDir() {
			return client.ProfileUpdate{}, validate.FieldErrors{"avatar": fmt.Sprintf("avatar file %s is not readable", p.AvatarPath)}
		}
	}
	return client.ProfileUpdate{Email: p.Email, Mobile: p.Mobile, AvatarPath: p.AvatarPath}, nil
}
