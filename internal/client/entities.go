// ABOUTME: Entity panel models for events, exhibitors, visitors, stalls, FAQs, schedules and admins
// ABOUTME: Mirrors the JSON documents the admin API returns in its data field

package client

import "time"

// Sponsor is a nested entry of an event
type Sponsor struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Website string `json:"website,omitempty" yaml:"website" validate:"omitempty,url"`
	Logo    string `json:"logo,omitempty" yaml:"logo" validate:"omitempty,url"`
	Tier    string `json:"tier,omitempty" yaml:"tier" validate:"omitempty,oneof=platinum gold silver bronze"`
}

// Speaker is a nested entry of an event
type Speaker struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Designation string `json:"designation,omitempty" yaml:"designation"`
	Bio         string `json:"bio,omitempty" yaml:"bio"`
	LinkedIn    string `json:"linkedin,omitempty" yaml:"linkedin" validate:"omitempty,url"`
}

// Event is an event managed by the platform
type Event struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue"`
	Website     string    `json:"website,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status,omitempty"`
	Sponsors    []Sponsor `json:"sponsors"`
	Speakers    []Speaker `json:"speakers"`
}

// Exhibitor is a company registered to exhibit
type Exhibitor struct {
	ID          string `json:"_id"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile,omitempty"`
	Website     string `json:"website,omitempty"`
	EventID     string `json:"eventId,omitempty"`
	Status      string `json:"status"`
}

// Exhibitor review states
const (
	ExhibitorPending  = "pending"
	ExhibitorApproved = "approved"
	ExhibitorRejected = "rejected"
)

// Visitor is an attendee registration
type Visitor struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	EventID   string `json:"eventId,omitempty"`
	CheckedIn bool   `json:"checkedIn"`
}

// StallFeature is a toggleable amenity of a stall
type StallFeature struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Stall is a bookable exhibition space
type Stall struct {
	ID       string         `json:"_id,omitempty"`
	EventID  string         `json:"eventId"`
	Number   string         `json:"number"`
	Size     string         `json:"size,omitempty"`
	Price    float64        `json:"price"`
	Status   string         `json:"status,omitempty"`
	Features []StallFeature `json:"features"`
}

// FAQ is a question/answer pair shown to visitors
type FAQ struct {
	ID       string `json:"_id,omitempty" yaml:"id"`
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
}

// Schedule is a session slot within an event
type Schedule struct {
	ID        string    `json:"_id,omitempty"`
	EventID   string    `json:"eventId"`
	Title     string    `json:"title"`
	Speaker   string    `json:"speaker,omitempty"`
	Location  string    `json:"location,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// AdminInput is the body used to create or update an admin user
type AdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Role     string `json:"role"`
}

// ListOptions narrows list endpoints
type ListOptions struct {
	EventID string
	Search  string
	Status  string
}
