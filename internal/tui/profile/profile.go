// ABOUTME: Profile screen showing the signed-in admin with edit and password forms
// ABOUTME: Emits validated requests; the app performs them and reports back

package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/tui/widgets"
)

// UpdateMsg asks the app to submit a profile update
type UpdateMsg struct {
	Update client.ProfileUpdate
}

// PasswordMsg asks the app to submit a password change
type PasswordMsg struct {
	Input client.ChangePasswordInput
}

type mode int

const (
	modeView mode = iota
	modeEdit
	modePassword
)

// Screen is the profile view as a bubbletea model
type Screen struct {
	user   *auth.User
	mode   mode
	form   *huh.Form
	err    string
	notice string
	busy   bool

	profile  forms.ProfileForm
	password forms.PasswordChange
}

// New creates the profile screen for user
func New(user *auth.User) *Screen {
	return &Screen{user: user}
}

// SetUser replaces the displayed admin after a successful update
func (s *Screen) SetUser(user *auth.User) {
	s.user = user
}

// Done returns to the profile view with a success notice
func (s *Screen) Done(notice string) {
	s.busy = false
	s.err = ""
	s.notice = notice
	s.mode = modeView
	s.form = nil
	s.profile = forms.ProfileForm{}
	s.password = forms.PasswordChange{}
}

// SetError reports a failed request and reopens the form that sent it
func (s *Screen) SetError(msg string) tea.Cmd {
	s.busy = false
	s.err = msg
	s.password = forms.PasswordChange{}
	return s.open(s.mode)
}

// Editing reports whether a form is open
func (s *Screen) Editing() bool {
	return s.mode != modeView
}

func (s *Screen) open(m mode) tea.Cmd {
	s.mode = m
	switch m {
	case modeEdit:
		s.form = s.createProfileForm()
	case modePassword:
		s.form = s.createPasswordForm()
	default:
		s.form = nil
		return nil
	}
	return s.form.Init()
}

func (s *Screen) createProfileForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("Leave blank to keep the current email").
				Value(&s.profile.Email),
			huh.NewInput().
				Title("Mobile").
				Placeholder("+15551234567").
				Value(&s.profile.Mobile),
			huh.NewInput().
				Title("Avatar image").
				Description("Path to a local image file").
				Value(&s.profile.AvatarPath),
		).Title("Edit profile"),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

func (s *Screen) createPasswordForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password.OldPassword),
			huh.NewInput().
				Title("New password").
				Description("At least 8 characters").
				EchoMode(huh.EchoModePassword).
				Value(&s.password.NewPassword),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password.ConfirmPassword),
		).Title("Change password"),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Init implements tea.Model
func (s *Screen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if s.mode == modeView {
			switch key.String() {
			case "e":
				s.err, s.notice = "", ""
				return s, s.open(modeEdit)
			case "p":
				s.err, s.notice = "", ""
				return s, s.open(modePassword)
			}
			return s, nil
		}
		if key.String() == "esc" {
			s.err = ""
			return s, s.open(modeView)
		}
	}

	if s.form == nil {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		return s, s.submit()
	}
	return s, cmd
}

func (s *Screen) submit() tea.Cmd {
	switch s.mode {
	case modeEdit:
		update, err := s.profile.Update()
		if err != nil {
			s.err = err.Error()
			return s.open(modeEdit)
		}
		s.busy = true
		s.err = ""
		return func() tea.Msg { return UpdateMsg{Update: update} }

	case modePassword:
		input, err := s.password.Input()
		if err != nil {
			s.err = err.Error()
			s.password = forms.PasswordChange{}
			return s.open(modePassword)
		}
		s.busy = true
		s.err = ""
		return func() tea.Msg { return PasswordMsg{Input: input} }
	}
	return nil
}

// View implements tea.Model
func (s *Screen) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Profile"))
	sb.WriteString("\n")

	if s.user != nil {
		rows := [][2]string{
			{"Email", s.user.Email},
			{"Username", s.user.Username},
			{"Mobile", s.user.Mobile},
			{"Avatar", s.user.Avatar},
		}
		for _, r := range rows {
			if r[1] == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("%-10s %s\n", r[0], styles.ValueStyle.Render(r[1])))
		}
		sb.WriteString(fmt.Sprintf("%-10s %s\n", "Role", widgets.RoleBadge(s.user.Role)))
	}
	sb.WriteString("\n")

	if s.err != "" {
		sb.WriteString(styles.ErrorText.Render(s.err))
		sb.WriteString("\n\n")
	} else if s.notice != "" {
		sb.WriteString(styles.StatusOK.Render(s.notice))
		sb.WriteString("\n\n")
	}

	switch {
	case s.busy:
		sb.WriteString(styles.Subtitle.Render("Saving..."))
	case s.form != nil:
		sb.WriteString(s.form.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc cancel"))
	default:
		sb.WriteString(styles.Help.Render(
			styles.KeyStyle.Render("e") + " edit profile  " + styles.KeyStyle.Render("p") + " change password"))
	}
	return sb.String()
}
