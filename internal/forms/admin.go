// ABOUTME: Admin user and schedule drafts
// ABOUTME: Roles are entered in canonical form and translated by the auth package

package forms

import (
	"strings"
	"time"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
)

// AdminDraft creates or updates an admin user.
// Password is required only when creating.
type AdminDraft struct {
	ID       string `json:"-"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required_without=ID,omitempty,min=8"`
	Mobile   string `json:"mobile" validate:"omitempty,e164"`
	Role     string `json:"role" validate:"required,oneof=super-admin sub-admin"`
}

// ToInput validates the draft and builds the request body
func (d *AdminDraft) ToInput() (*client.AdminInput, error) {
	d.Email = strings.TrimSpace(d.Email)
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	role, err := auth.ParseRole(d.Role)
	if err != nil {
		return nil, err
	}
	serverRole, err := auth.ServerRole(role)
	if err != nil {
		return nil, err
	}
	return &client.AdminInput{
		Email:    d.Email,
		Password: d.Password,
		Mobile:   d.Mobile,
		Role:     serverRole,
	}, nil
}

// ScheduleDraft is a session slot being created or edited
type ScheduleDraft struct {
	ID        string    `json:"-"`
	EventID   string    `json:"eventId" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Speaker   string    `json:"speaker"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

// ToSchedule validates the draft and builds the request body
func (d *ScheduleDraft) ToSchedule() (*client.Schedule, error) {
	d.Title = strings.TrimSpace(d.Title)
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	return &client.Schedule{
		ID:        d.ID,
		EventID:   d.EventID,
		Title:     d.Title,
		Speaker:   d.Speaker,
		Location:  d.Location,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
	}, nil
}
