// ABOUTME: Event draft with editable sponsor and speaker lists
// ABOUTME: Loaded from YAML for the CLI and built step by step by the console wizard

package forms

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
	"gopkg.in/yaml.v3"
)

// EventDraft is an event being created or edited
type EventDraft struct {
	ID          string           `json:"-" yaml:"id,omitempty"`
	Title       string           `json:"title" yaml:"title" validate:"required,max=120"`
	Description string           `json:"description" yaml:"description"`
	Venue       string           `json:"venue" yaml:"venue" validate:"required"`
	Website     string           `json:"website" yaml:"website" validate:"omitempty,url"`
	StartDate   time.Time        `json:"startDate" yaml:"startDate" validate:"required"`
	EndDate     time.Time        `json:"endDate" yaml:"endDate" validate:"required,gtefield=StartDate"`
	Sponsors    []client.Sponsor `json:"sponsors" yaml:"sponsors" validate:"dive"`
	Speakers    []client.Speaker `json:"speakers" yaml:"speakers" validate:"dive"`
	Status      string           `json:"-" yaml:"status,omitempty"`
}

// EventDraftFrom prepares an existing event for editing
func EventDraftFrom(e *client.Event) *EventDraft {
	d := &EventDraft{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		Website:     e.Website,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Status:      e.Status,
	}
	d.Sponsors = append(d.Sponsors, e.Sponsors...)
	d.Speakers = append(d.Speakers, e.Speakers...)
	return d
}

// Clone returns a copy whose sponsor and speaker lists can be edited
// without touching d
func (d *EventDraft) Clone() *EventDraft {
	c := *d
	c.Sponsors = append([]client.Sponsor(nil), d.Sponsors...)
	c.Speakers = append([]client.Speaker(nil), d.Speakers...)
	return &c
}

// LoadEventDraft reads a draft from a YAML file
func LoadEventDraft(path string) (*EventDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	var d EventDraft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse event file %s: %w", path, err)
	}
	return &d, nil
}

// YAML renders the draft in the format LoadEventDraft reads
func (d *EventDraft) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *EventDraft) AddSponsor(s client.Sponsor) int {
	d.Sponsors = append(d.Sponsors, s)
	return len(d.Sponsors) - 1
}

func (d *EventDraft) UpdateSponsor(i int, s client.Sponsor) error {
	return updateAt(d.Sponsors, i, s)
}

func (d *EventDraft) RemoveSponsor(i int) error {
	rows, err := removeAt(d.Sponsors, i)
	d.Sponsors = rows
	return err
}

func (d *EventDraft) MoveSponsor(from, to int) error {
	return moveTo(d.Sponsors, from, to)
}

func (d *EventDraft) AddSpeaker(s client.Speaker) int {
	d.Speakers = append(d.Speakers, s)
	return len(d.Speakers) - 1
}

func (d *EventDraft) UpdateSpeaker(i int, s client.Speaker) error {
	return updateAt(d.Speakers, i, s)
}

func (d *EventDraft) RemoveSpeaker(i int) error {
	rows, err := removeAt(d.Speakers, i)
	d.Speakers = rows
	return err
}

func (d *EventDraft) MoveSpeaker(from, to int) error {
	return moveTo(d.Speakers, from, to)
}

// Validate checks the draft; errors are validate.FieldErrors
func (d *EventDraft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Venue = strings.TrimSpace(d.Venue)
	return validate.Struct(d)
}

// ToEvent validates the draft and builds the request body
func (d *EventDraft) ToEvent() (*client.Event, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	e := &client.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Venue:       d.Venue,
		Website:     d.Website,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      d.Status,
		Sponsors:    append([]client.Sponsor{}, d.Sponsors...),
		Speakers:    append([]client.Speaker{}, d.Speakers...),
	}
	return e, nil
}
