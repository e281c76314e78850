// ABOUTME: Tests for the profile screen
// ABOUTME: Covers mode switching, local validation and request messages

package profile

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eventdesk/console/internal/auth"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testUser() *auth.User {
	return &auth.User{ID: "a1", Email: "ops@example.com", Mobile: "+15551234567", Role: auth.RoleSubAdmin}
}

func TestProfileView(t *testing.T) {
	s := New(testUser())
	view := s.View()

	for _, expected := range []string{"ops@example.com", "+15551234567", "Sub Admin", "edit profile"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestProfileModes(t *testing.T) {
	s := New(testUser())

	s.Update(keyMsg("e"))
	if !s.Editing() || s.mode != modeEdit {
		t.Fatal("expected edit mode after e")
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.Editing() {
		t.Error("expected esc to return to view mode")
	}

	s.Update(keyMsg("p"))
	if s.mode != modePassword {
		t.Error("expected password mode after p")
	}
}

func TestProfileSubmitNothing(t *testing.T) {
	s := New(testUser())
	s.open(modeEdit)

	cmd := s.submit()

	if s.busy {
		t.Error("expected not busy after local validation failure")
	}
	if !strings.Contains(s.View(), "nothing to update") {
		t.Errorf("expected validation error in view\n%s", s.View())
	}
	if cmd != nil {
		if _, ok := cmd().(UpdateMsg); ok {
			t.Error("expected no UpdateMsg for empty form")
		}
	}
}

func TestProfileSubmitUpdate(t *testing.T) {
	s := New(testUser())
	s.open(modeEdit)
	s.profile.Mobile = " +15557654321 "

	cmd := s.submit()
	if cmd == nil {
		t.Fatal("expected update command")
	}
	msg, ok := cmd().(UpdateMsg)
	if !ok {
		t.Fatalf("expected UpdateMsg, got %T", cmd())
	}
	if msg.Update.Mobile != "+15557654321" {
		t.Errorf("expected trimmed mobile, got %q", msg.Update.Mobile)
	}
	if !s.busy {
		t.Error("expected busy while request is in flight")
	}

	_, next := s.Update(keyMsg("e"))
	if next != nil {
		t.Error("expected input ignored while busy")
	}
}

func TestProfilePasswordMismatch(t *testing.T) {
	s := New(testUser())
	s.open(modePassword)
	s.password.OldPassword = "old-secret"
	s.password.NewPassword = "new-secret-1"
	s.password.ConfirmPassword = "new-secret-2"

	s.submit()

	if !strings.Contains(s.View(), "does not match") {
		t.Errorf("expected mismatch error\n%s", s.View())
	}
	if s.password.NewPassword != "" {
		t.Error("expected password fields cleared after failure")
	}
}

func TestProfilePasswordSubmit(t *testing.T) {
	s := New(testUser())
	s.open(modePassword)
	s.password.OldPassword = "old-secret"
	s.password.NewPassword = "new-secret-1"
	s.password.ConfirmPassword = "new-secret-1"

	cmd := s.submit()
	msg, ok := cmd().(PasswordMsg)
	if !ok {
		t.Fatalf("expected PasswordMsg, got %T", cmd())
	}
	if msg.Input.OldPassword != "old-secret" || msg.Input.NewPassword != "new-secret-1" {
		t.Errorf("unexpected input: %+v", msg.Input)
	}

	s.Done("Password changed")
	if s.Editing() || !strings.Contains(s.View(), "Password changed") {
		t.Error("expected view mode with notice after Done")
	}
}

func TestProfileServerError(t *testing.T) {
	s := New(testUser())
	s.open(modeEdit)
	s.busy = true

	s.SetError("email already in use")

	if s.busy {
		t.Error("expected busy cleared")
	}
	if s.mode != modeEdit {
		t.Error("expected edit form reopened")
	}
	if !strings.Contains(s.View(), "email already in use") {
		t.Error("expected server error in view")
	}
}
