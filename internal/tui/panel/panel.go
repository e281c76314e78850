// ABOUTME: Table panel listing one entity collection with keyed row actions
// ABOUTME: Destructive actions wait for a y/n confirmation before being emitted

package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/tui/styles"
)

// defaultHeight is the number of visible rows before a size is known
const defaultHeight = 10

// Action is a key bound to an operation on the selected row
type Action struct {
	Key     string
	Label   string
	Confirm bool
	// Global actions do not need a selected row
	Global bool
}

// Row is one entity rendered as table cells
type Row struct {
	ID    string
	Cells []string
}

// ActionMsg is sent when an action is triggered. ID is empty for global actions.
type ActionMsg struct {
	Key string
	ID  string
}

// RefreshMsg asks the owner to reload the panel data
type RefreshMsg struct{}

// Panel is a bubbletea model wrapping a bubbles table
type Panel struct {
	title   string
	table   table.Model
	ids     []string
	actions []Action
	pending *Action
	loading bool
	err     string
	notice  string
	width   int
}

// New creates a panel with the given columns and actions
func New(title string, columns []table.Column, actions ...Action) *Panel {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultHeight),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Surface).
		Bold(true)
	t.SetStyles(s)

	return &Panel{
		title:   title,
		table:   t,
		actions: actions,
		loading: true,
	}
}

// Title returns the panel title
func (p *Panel) Title() string {
	return p.title
}

// SetRows replaces the table contents, keeping the cursor in range
func (p *Panel) SetRows(rows []Row) {
	p.ids = make([]string, len(rows))
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		p.ids[i] = r.ID
		tableRows[i] = table.Row(r.Cells)
	}
	p.table.SetRows(tableRows)
	if c := p.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		p.table.SetCursor(len(rows) - 1)
	}
	p.loading = false
	p.err = ""
}

// SetLoading marks the panel as waiting for data
func (p *Panel) SetLoading() {
	p.loading = true
	p.err = ""
}

// SetError shows a request failure above the table
func (p *Panel) SetError(msg string) {
	p.loading = false
	p.err = msg
}

// SetNotice shows a one-line status message, such as the result of an action
func (p *Panel) SetNotice(msg string) {
	p.notice = msg
}

// Loading reports whether data is still being fetched
func (p *Panel) Loading() bool {
	return p.loading
}

// Len returns the number of rows
func (p *Panel) Len() int {
	return len(p.ids)
}

// Selected returns the ID of the row under the cursor
func (p *Panel) Selected() (string, bool) {
	c := p.table.Cursor()
	if c < 0 || c >= len(p.ids) {
		return "", false
	}
	return p.ids[c], true
}

// SetSize fits the table into the given area
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.table.SetWidth(width)
	// title, status line, help line and header border
	p.table.SetHeight(max(3, height-6))
}

// Init implements tea.Model
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p *Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.pending != nil {
		action := *p.pending
		p.pending = nil
		if key.String() == "y" {
			return p, p.emit(action)
		}
		p.notice = action.Label + " cancelled"
		return p, nil
	}

	if key.String() == "r" {
		p.notice = ""
		return p, func() tea.Msg { return RefreshMsg{} }
	}

	for _, a := range p.actions {
		if key.String() != a.Key {
			continue
		}
		if !a.Global {
			if _, ok := p.Selected(); !ok {
				return p, nil
			}
		}
		if a.Confirm {
			pending := a
			p.pending = &pending
			return p, nil
		}
		p.notice = ""
		return p, p.emit(a)
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p *Panel) emit(a Action) tea.Cmd {
	msg := ActionMsg{Key: a.Key}
	if !a.Global {
		msg.ID, _ = p.Selected()
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (p *Panel) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.title))
	sb.WriteString("\n")

	switch {
	case p.loading:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		return sb.String()
	case p.err != "":
		sb.WriteString(styles.ErrorText.Render("Error: " + p.err))
		sb.WriteString("\n")
	}

	if len(p.ids) == 0 {
		sb.WriteString(styles.Subtitle.Render("Nothing here yet"))
	} else {
		sb.WriteString(p.table.View())
	}
	sb.WriteString("\n")

	if p.pending != nil {
		sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("%s selected row? (y/n)", p.pending.Label)))
	} else if p.notice != "" {
		sb.WriteString(styles.StatusOK.Render(p.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(p.help())
	return sb.String()
}

// help lists the panel's key bindings
func (p *Panel) help() string {
	parts := []string{styles.KeyStyle.Render("r") + " refresh"}
	for _, a := range p.actions {
		parts = append(parts, styles.KeyStyle.Render(a.Key)+" "+strings.ToLower(a.Label))
	}
	return styles.Help.Render(strings.Join(parts, "  "))
}
