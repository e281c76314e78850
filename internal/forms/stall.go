// ABOUTME: Stall draft with amenity toggles from a fixed catalog
// ABOUTME: Catalog features are sent first, then any other features the stall already had

package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
)

// ErrUnknownFeature is returned when toggling a feature the stall does not offer
var ErrUnknownFeature = errors.New("unknown stall feature")

// DefaultFeatures is the amenity catalog offered for every stall
var DefaultFeatures = []string{"electricity", "wifi", "furniture", "storage", "signage", "water"}

// StallFeatures tracks which features are enabled. Features a stall already
// has outside the catalog are kept after the catalog ones.
type StallFeatures struct {
	catalog []string
	extra   []string
	enabled map[string]bool
}

// NewStallFeatures starts from current
func NewStallFeatures(catalog []string, current []client.StallFeature) *StallFeatures {
	f := &StallFeatures{
		catalog: append([]string{}, catalog...),
		enabled: make(map[string]bool, len(catalog)+len(current)),
	}
	for _, name := range catalog {
		f.enabled[name] = false
	}
	for _, sf := range current {
		if _, ok := f.enabled[sf.Name]; !ok {
			f.extra = append(f.extra, sf.Name)
		}
		f.enabled[sf.Name] = sf.Enabled
	}
	return f
}

// Toggle flips a feature and returns its new state
func (f *StallFeatures) Toggle(name string) (bool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	cur, ok := f.enabled[name]
	if !ok {
		return false, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFeature, name, strings.Join(f.Catalog(), ", "))
	}
	f.enabled[name] = !cur
	return !cur, nil
}

// Enabled reports whether a feature is on
func (f *StallFeatures) Enabled(name string) bool {
	return f.enabled[name]
}

// Catalog returns the feature names in display order
func (f *StallFeatures) Catalog() []string {
	out := make([]string, 0, len(f.catalog)+len(f.extra))
	out = append(out, f.catalog...)
	return append(out, f.extra...)
}

// List returns every feature with its state
func (f *StallFeatures) List() []client.StallFeature {
	out := make([]client.StallFeature, 0, len(f.catalog)+len(f.extra))
	for _, name := range f.Catalog() {
		out = append(out, client.StallFeature{Name: name, Enabled: f.enabled[name]})
	}
	return out
}

// StallDraft is a stall being created or edited
type StallDraft struct {
	ID       string         `json:"-"`
	EventID  string         `json:"eventId" validate:"required"`
	Number   string         `json:"number" validate:"required"`
	Size     string         `json:"size" validate:"omitempty,oneof=small medium large"`
	Price    float64        `json:"price" validate:"gte=0"`
	Status   string         `json:"status,omitempty"`
	Features *StallFeatures `json:"-" validate:"-"`
}

// StallDraftFrom prepares an existing stall for editing
func StallDraftFrom(s *client.Stall) *StallDraft {
	return &StallDraft{
		ID:       s.ID,
		EventID:  s.EventID,
		Number:   s.Number,
		Size:     s.Size,
		Price:    s.Price,
		Status:   s.Status,
		Features: NewStallFeatures(DefaultFeatures, s.Features),
	}
}

// ToStall validates the draft and builds the request body
func (d *StallDraft) ToStall() (*client.Stall, error) {
	d.Number = strings.TrimSpace(d.Number)
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	features := d.Features
	if features == nil {
		features = NewStallFeatures(DefaultFeatures, nil)
	}
	return &client.Stall{
		ID:       d.ID,
		EventID:  d.EventID,
		Number:   d.Number,
		Size:     d.Size,
		Price:    d.Price,
		Status:   d.Status,
		Features: features.List(),
	}, nil
}
