// ABOUTME: Navigation menu listing the views the current admin may open
// ABOUTME: Built from the guard's admitted routes, so role-gated views never appear

package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/tui/icons"
)

// LogoutValue is the option value that ends the session
const LogoutValue = "logout"

// SelectedMsg is sent when a route is chosen
type SelectedMsg struct {
	Path string
}

// LogoutMsg is sent when the logout option is chosen
type LogoutMsg struct{}

// CancelledMsg is sent when the menu is dismissed
type CancelledMsg struct{}

type option struct {
	label string
	value string
}

// Menu is the route picker as a bubbletea model
type Menu struct {
	options  []option
	selected string
	form     *huh.Form
}

// New creates a menu for the given routes, preselecting current
func New(routes []guard.Route, current string) *Menu {
	m := &Menu{selected: current}
	for _, r := range routes {
		m.options = append(m.options, option{
			label: fmt.Sprintf("%s %s", icons.ForRoute(r.Path).String(), r.Title),
			value: r.Path,
		})
	}
	m.options = append(m.options, option{label: icons.Quit.String() + " Log out", value: LogoutValue})
	if m.selected == "" && len(m.options) > 0 {
		m.selected = m.options[0].value
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(m.options))
	for _, o := range m.options {
		opts = append(opts, huh.NewOption(o.label, o.value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Go to").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// Paths returns the option values in display order
func (m *Menu) Paths() []string {
	out := make([]string, 0, len(m.options))
	for _, o := range m.options {
		out = append(out, o.value)
	}
	return out
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		selected := m.selected
		m.form = m.createForm()
		if selected == LogoutValue {
			return m, func() tea.Msg { return LogoutMsg{} }
		}
		return m, func() tea.Msg { return SelectedMsg{Path: selected} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}
