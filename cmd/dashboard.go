// ABOUTME: Dashboard command for the eventdesk CLI
// ABOUTME: Shows platform counts and upcoming events for the signed-in admin

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/guard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform counts and upcoming events",
	Long: `Display event and stall counts with the next upcoming events.
Super admins also see exhibitor, pending review and visitor counts.`,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runDashboard(ctx, w, time.Now())
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches the summary visible to the signed-in role and returns exit code
func runDashboard(ctx context.Context, w io.Writer, now time.Time) int {
	return withSession(ctx, w, guard.PathDashboard, func(ctx context.Context, a *app, state auth.State) int {
		super := state.User.Role == auth.RoleSuperAdmin
		summary, err := a.client.Summary(ctx, client.SummaryScope{Exhibitors: super, Visitors: super, Now: now})
		if err != nil {
			return fail(w, err)
		}
		emit(w, summary, func() string { return formatDashboardHuman(summary) })
		return 0
	})
}

// formatDashboardHuman formats the summary for human readability
func formatDashboardHuman(s *client.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Events:      %d\n", s.Events)
	fmt.Fprintf(&sb, "Stalls:      %d\n", s.Stalls)
	if s.Exhibitors >= 0 {
		fmt.Fprintf(&sb, "Exhibitors:  %d (%d pending review)\n", s.Exhibitors, s.Pending)
	}
	if s.Visitors >= 0 {
		fmt.Fprintf(&sb, "Visitors:    %d\n", s.Visitors)
	}
	sb.WriteString("\n")

	if len(s.Upcoming) == 0 {
		sb.WriteString("No upcoming events")
		return sb.String()
	}
	sb.WriteString("Upcoming events:\n")
	rows := make([][]string, 0, len(s.Upcoming))
	for _, e := range s.Upcoming {
		rows = append(rows, []string{e.Title, e.Venue, eventDates(e)})
	}
	sb.WriteString(formatTable([]string{"Title", "Venue", "Dates"}, rows, ""))
	return sb.String()
}

// eventDates renders an event's date range
func eventDates(e client.Event) string {
	if e.StartDate.IsZero() {
		return "-"
	}
	start := e.StartDate.Format(dateLayout)
	if e.EndDate.IsZero() || e.EndDate.Format(dateLayout) == start {
		return start
	}
	return start + " - " + e.EndDate.Format(dateLayout)
}
