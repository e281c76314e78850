// ABOUTME: Tests for login, password, profile and admin forms
// ABOUTME: Role entry is canonical and leaves the form in server vocabulary

package forms

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eventdesk/console/internal/validate"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name   string
		creds  Credentials
		fields []string
	}{
		{"ok", Credentials{Email: " a@b.com ", Password: "secret123"}, nil},
		{"empty", Credentials{}, []string{"email", "password"}},
		{"bad email", Credentials{Email: "ab", Password: "x"}, []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			fields := validate.Fields(err)
			for _, f := range tt.fields {
				if fields[f] == "" {
					t.Errorf("expected error for %s, got %v", f, err)
				}
			}
		})
	}
}

func TestPasswordChange(t *testing.T) {
	ok := PasswordChange{OldPassword: "old-pass", NewPassword: "new-pass-1", ConfirmPassword: "new-pass-1"}
	in, err := ok.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.NewPassword != "new-pass-1" || in.OldPassword != "old-pass" {
		t.Errorf("unexpected input %+v", in)
	}

	mismatch := PasswordChange{OldPassword: "old-pass", NewPassword: "new-pass-1", ConfirmPassword: "new-pass-2"}
	_, err = mismatch.Input()
	if got := validate.Fields(err)["confirmPassword"]; got != "confirmPassword does not match newPassword" {
		t.Errorf("unexpected message %q", got)
	}

	same := PasswordChange{OldPassword: "same-pass", NewPassword: "same-pass", ConfirmPassword: "same-pass"}
	_, err = same.Input()
	if validate.Fields(err)["newPassword"] == "" {
		t.Errorf("expected reuse of old password to be rejected, got %v", err)
	}
}

func TestProfileForm_Update(t *testing.T) {
	if _, err := (&ProfileForm{}).Update(); err == nil {
		t.Error("expected error for empty form")
	}

	avatar := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(avatar, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	upd, err := (&ProfileForm{Email: "x@y.com", AvatarPath: avatar}).Update()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.AvatarPath != avatar || upd.Email != "x@y.com" {
		t.Errorf("unexpected update %+v", upd)
	}

	_, err = (&ProfileForm{AvatarPath: filepath.Join(t.TempDir(), "missing.png")}).Update()
	if validate.Fields(err)["avatar"] == "" {
		t.Errorf("expected avatar error, got %v", err)
	}
}

func TestAdminDraft_ToInput(t *testing.T) {
	in, err := (&AdminDraft{Email: "sub@b.com", Password: "longenough", Role: "sub-admin"}).ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Role != "subadmin" {
		t.Errorf("expected server role subadmin, got %q", in.Role)
	}

	_, err = (&AdminDraft{Email: "sub@b.com", Role: "sub-admin"}).ToInput()
	if validate.Fields(err)["password"] == "" {
		t.Errorf("expected password required on create, got %v", err)
	}

	if _, err := (&AdminDraft{ID: "u1", Email: "sub@b.com", Role: "super-admin"}).ToInput(); err != nil {
		t.Errorf("expected update without password to pass, got %v", err)
	}

	_, err = (&AdminDraft{Email: "sub@b.com", Password: "longenough", Role: "superadmin"}).ToInput()
	if validate.Fields(err)["role"] == "" {
		t.Errorf("expected server vocabulary to be rejected, got %v", err)
	}
}

func TestScheduleDraft_ToSchedule(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	d := &ScheduleDraft{EventID: "e1", Title: "Keynote", StartTime: start, EndTime: start}
	_, err := d.ToSchedule()
	if validate.Fields(err)["endTime"] == "" {
		t.Errorf("expected endTime error, got %v", err)
	}

	d.EndTime = start.Add(time.Hour)
	s, err := d.ToSchedule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Keynote" {
		t.Errorf("unexpected schedule %+v", s)
	}
}
