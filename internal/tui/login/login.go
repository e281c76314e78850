// ABOUTME: Login screen with inline field validation
// ABOUTME: Emits the entered credentials; the app performs the actual login

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/validate"
)

// SubmittedMsg carries validated credentials
type SubmittedMsg struct {
	Credentials forms.Credentials
}

// Screen is the login form as a bubbletea model
type Screen struct {
	email    string
	password string
	err      string
	busy     bool
	form     *huh.Form
}

// New creates an empty login screen
func New() *Screen {
	s := &Screen{}
	s.form = s.createForm()
	return s
}

func (s *Screen) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("admin@example.com").
				Value(&s.email).
				Validate(func(v string) error {
					return validate.Var("email", strings.TrimSpace(v), "required,email")
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					return validate.Var("password", v, "required")
				}),
		).Title("Sign in").
			Description("Use your admin account"),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// SetError shows a failed login and resets the form, keeping the email
func (s *Screen) SetError(msg string) tea.Cmd {
	s.err = msg
	s.busy = false
	s.password = ""
	s.form = s.createForm()
	return s.form.Init()
}

// Busy reports whether a login request is outstanding
func (s *Screen) Busy() bool {
	return s.busy
}

// Init implements tea.Model
func (s *Screen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		creds := forms.Credentials{Email: s.email, Password: s.password}
		if err := creds.Validate(); err != nil {
			return s, s.SetError(err.Error())
		}
		s.busy = true
		s.err = ""
		return s, func() tea.Msg { return SubmittedMsg{Credentials: creds} }
	}
	return s, cmd
}

// View implements tea.Model
func (s *Screen) View() string {
	var sb strings.Builder
	sb.WriteString(s.form.View())
	if s.busy {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
	}
	if s.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(s.err))
	}
	return sb.String()
}
