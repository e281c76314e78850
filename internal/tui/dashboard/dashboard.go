// ABOUTME: Dashboard screen showing collection counts and upcoming events
// ABOUTME: Counts the admin's role cannot see render as not available

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/tui/icons"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/tui/widgets"
)

// dateLayout is used for event dates on the dashboard
const dateLayout = "Jan 2, 2006"

// Dashboard displays the platform summary
type Dashboard struct {
	summary *client.Summary
	user    *auth.User
	width   int
	height  int
}

// New creates a dashboard for the given user. Summary may be nil while loading.
func New(user *auth.User, summary *client.Summary, width, height int) *Dashboard {
	return &Dashboard{
		summary: summary,
		user:    user,
		width:   width,
		height:  height,
	}
}

// Update replaces the summary
func (d *Dashboard) Update(summary *client.Summary) {
	d.summary = summary
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.summary == nil {
		return styles.Subtitle.Render("Loading dashboard...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Dashboard"))
	sb.WriteString("\n")
	if d.user != nil {
		name := d.user.Username
		if name == "" {
			name = d.user.Email
		}
		sb.WriteString(fmt.Sprintf("Signed in as %s  %s\n\n", styles.ValueStyle.Render(name), widgets.RoleBadge(d.user.Role)))
	}

	cfg := widgets.DefaultMetricBlockConfig()
	blocks := []string{
		widgets.CountBlock(icons.Event, "Events", d.summary.Events, "total", cfg),
		widgets.CountBlock(icons.Stall, "Stalls", d.summary.Stalls, "total", cfg),
		widgets.CountBlock(icons.Exhibitor, "Exhibitors", d.summary.Exhibitors, pendingLabel(d.summary.Pending), cfg),
		widgets.CountBlock(icons.Visitor, "Visitors", d.summary.Visitors, "registered", cfg),
	}
	sb.WriteString(d.layoutBlocks(blocks, cfg.Width))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Title.Render("Upcoming events"))
	sb.WriteString("\n")
	if len(d.summary.Upcoming) == 0 {
		sb.WriteString(styles.Subtitle.Render("No upcoming events"))
	}
	for _, e := range d.summary.Upcoming {
		sb.WriteString(fmt.Sprintf("%s %s  %s\n",
			icons.Event.String(),
			styles.ValueStyle.Render(e.Title),
			styles.Subtitle.UnsetMarginBottom().Render(dateRange(e))))
	}

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

// layoutBlocks places blocks in rows that fit the dashboard width
func (d *Dashboard) layoutBlocks(blocks []string, blockWidth int) string {
	perRow := 4
	if d.width > 0 {
		perRow = max(1, d.width/(blockWidth+1))
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(blocks[i:end])...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func spaced(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}

func pendingLabel(pending int) string {
	if pending < 0 {
		return "super-admin only"
	}
	return fmt.Sprintf("%d pending", pending)
}

func dateRange(e client.Event) string {
	if e.StartDate.IsZero() {
		return "date to be announced"
	}
	start := e.StartDate.Format(dateLayout)
	if e.EndDate.IsZero() || sameDay(e.StartDate, e.EndDate) {
		return start
	}
	return start + " - " + e.EndDate.Format(dateLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
