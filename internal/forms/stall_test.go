// ABOUTME: Tests for stall feature toggles and stall drafts
// ABOUTME: Features a stall already has outside the catalog are kept

package forms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
)

func TestStallFeatures_Toggle(t *testing.T) {
	f := NewStallFeatures(DefaultFeatures, []client.StallFeature{
		{Name: "wifi", Enabled: true},
		{Name: "helipad", Enabled: true},
	})

	if !f.Enabled("wifi") {
		t.Error("expected wifi enabled from current state")
	}
	if !f.Enabled("helipad") {
		t.Error("expected feature outside the catalog to keep its state")
	}

	on, err := f.Toggle(" Electricity ")
	if err != nil || !on {
		t.Errorf("expected electricity on, got %v (%v)", on, err)
	}
	on, _ = f.Toggle("wifi")
	if on {
		t.Error("expected wifi off after toggle")
	}

	if on, err := f.Toggle("helipad"); err != nil || on {
		t.Errorf("expected helipad off after toggle, got %v (%v)", on, err)
	}
	if _, err := f.Toggle("sauna"); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestStallFeatures_ListInCatalogOrder(t *testing.T) {
	f := NewStallFeatures([]string{"b", "a"}, []client.StallFeature{{Name: "a", Enabled: true}})
	got := f.List()
	want := []client.StallFeature{{Name: "b"}, {Name: "a", Enabled: true}}
	if len(got) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestStallDraft_ToStall(t *testing.T) {
	d := &StallDraft{EventID: "e1", Number: " A-12 ", Size: "large", Price: 1200}
	s, err := d.ToStall()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Number != "A-12" {
		t.Errorf("expected trimmed number, got %q", s.Number)
	}
	if len(s.Features) != len(DefaultFeatures) {
		t.Errorf("expected full feature list, got %d", len(s.Features))
	}

	bad := &StallDraft{Number: "1", Size: "huge", Price: -1}
	fields := validate.Fields(func() error { _, err := bad.ToStall(); return err }())
	for _, k := range []string{"eventId", "size", "price"} {
		if fields[k] == "" {
			t.Errorf("expected error for %s, got %v", k, fields)
		}
	}
}

func TestStallDraft_ToggleKeepsOtherFields(t *testing.T) {
	stall := &client.Stall{
		ID:      "s1",
		EventID: "e1",
		Number:  "A1",
		Size:    "medium",
		Price:   500,
		Status:  "booked",
		Features: []client.StallFeature{
			{Name: "projector", Enabled: true},
			{Name: "wifi", Enabled: false},
		},
	}

	d := StallDraftFrom(stall)
	if on, err := d.Features.Toggle("wifi"); err != nil || !on {
		t.Fatalf("expected wifi on, got %v (%v)", on, err)
	}
	got, err := d.ToStall()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != "booked" {
		t.Errorf("expected status booked, got %q", got.Status)
	}
	want := []client.StallFeature{
		{Name: "electricity"},
		{Name: "wifi", Enabled: true},
		{Name: "furniture"},
		{Name: "storage"},
		{Name: "signage"},
		{Name: "water"},
		{Name: "projector", Enabled: true},
	}
	if !reflect.DeepEqual(got.Features, want) {
		t.Errorf("expected features %+v, got %+v", want, got.Features)
	}
}
