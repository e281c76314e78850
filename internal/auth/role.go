// ABOUTME: Canonical admin roles and translation from the server's role vocabulary
// ABOUTME: The only place server role strings are converted

package auth

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned for role strings outside the known vocabulary
var ErrUnknownRole = errors.New("unknown role")

// Role is a canonical client-side role
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleSubAdmin   Role = "sub-admin"
)

// serverRoles maps the API's role vocabulary onto canonical roles
var serverRoles = map[string]Role{
	"superadmin": RoleSuperAdmin,
	"subadmin":   RoleSubAdmin,
}

// Valid reports whether r is one of the canonical roles
func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleSubAdmin
}

// Label returns a display name for the role
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleSubAdmin:
		return "Sub Admin"
	default:
		return "Unknown"
	}
}

// ParseRole accepts canonical role strings only
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// CanonicalRole translates a server role string
func CanonicalRole(server string) (Role, error) {
	r, ok := serverRoles[server]
	if !ok {
		return "", fmt.Errorf("%w: server role %q", ErrUnknownRole, server)
	}
	return r, nil
}

// ServerRole translates a canonical role back for request payloads
func ServerRole(r Role) (string, error) {
	for server, canonical := range serverRoles {
		if canonical == r {
			return server, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
}
