// ABOUTME: Normalized user record held by the session
// ABOUTME: Built from the server's admin payload with the role translated

package auth

import (
	"encoding/json"
	"fmt"

	"github.com/eventdesk/console/internal/client"
)

// User is the logged-in admin as the console sees it
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Mobile   string `json:"mobile,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UserFromAdmin normalizes a server admin record
func UserFromAdmin(a client.Admin) (*User, error) {
	role, err := CanonicalRole(a.Role)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     role,
		Mobile:   a.Mobile,
		Avatar:   a.Avatar,
	}, nil
}

// decodeUser parses a stored user entry and checks its role
func decodeUser(raw string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("parse stored user: %w", err)
	}
	if !u.Role.Valid() {
		return nil, fmt.Errorf("%w: stored role %q", ErrUnknownRole, string(u.Role))
	}
	return &u, nil
}

func encodeUser(u *User) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}
	return string(data), nil
}
