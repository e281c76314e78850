// ABOUTME: Exhibitor and visitor commands for super admins
// ABOUTME: Exhibitors are reviewed with approve/reject; visitors can only be listed or removed

package cmd

import (
	"context"
	"io"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/guard"
	"github.com/spf13/cobra"
)

var (
	registrationEvent  string
	registrationSearch string
	exhibitorStatus    string
)

var exhibitorsCmd = &cobra.Command{
	Use:   "exhibitors",
	Short: "Review exhibitor registrations (super admin)",
}

var exhibitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exhibitors",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runExhibitorsList(ctx, w, client.ListOptions{
			EventID: registrationEvent,
			Search:  registrationSearch,
			Status:  exhibitorStatus,
		})
	}),
}

var exhibitorsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an exhibitor",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runExhibitorReview(ctx, w, args[0], client.ExhibitorApproved)
	}),
}

var exhibitorsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an exhibitor",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runExhibitorReview(ctx, w, args[0], client.ExhibitorRejected)
	}),
}

var exhibitorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exhibitor",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runExhibitorsDelete(ctx, w, args[0])
	}),
}

var visitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "Manage visitor registrations (super admin)",
}

var visitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visitors",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runVisitorsList(ctx, w, client.ListOptions{EventID: registrationEvent, Search: registrationSearch})
	}),
}

var visitorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a visitor",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runVisitorsDelete(ctx, w, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(exhibitorsCmd, visitorsCmd)
	exhibitorsCmd.AddCommand(exhibitorsListCmd, exhibitorsApproveCmd, exhibitorsRejectCmd, exhibitorsDeleteCmd)
	visitorsCmd.AddCommand(visitorsListCmd, visitorsDeleteCmd)

	for _, c := range []*cobra.Command{exhibitorsListCmd, visitorsListCmd} {
		c.Flags().StringVar(&registrationEvent, "event", "", "Only registrations for this event ID")
		c.Flags().StringVar(&registrationSearch, "search", "", "Filter by name or email")
	}
	exhibitorsListCmd.Flags().StringVar(&exhibitorStatus, "status", "", "pending, approved or rejected")
}

// runExhibitorsList lists exhibitors and returns exit code
func runExhibitorsList(ctx context.Context, w io.Writer, opts client.ListOptions) int {
	return withSession(ctx, w, guard.PathExhibitors, func(ctx context.Context, a *app, _ auth.State) int {
		exhibitors, err := a.client.ListExhibitors(ctx, opts)
		if err != nil {
			return fail(w, err)
		}
		emit(w, exhibitors, func() string { return formatExhibitorsHuman(exhibitors) })
		return 0
	})
}

// formatExhibitorsHuman formats exhibitors as a table
func formatExhibitorsHuman(exhibitors []client.Exhibitor) string {
	rows := make([][]string, 0, len(exhibitors))
	for _, e := range exhibitors {
		rows = append(rows, []string{e.ID, e.CompanyName, e.ContactName, e.Email, e.Status})
	}
	return formatTable([]string{"ID", "Company", "Contact", "Email", "Status"}, rows, "No exhibitors found.")
}

// runExhibitorReview sets an exhibitor's review status and returns exit code
func runExhibitorReview(ctx context.Context, w io.Writer, id, status string) int {
	return withSession(ctx, w, guard.PathExhibitors, func(ctx context.Context, a *app, _ auth.State) int {
		exhibitor, err := a.client.SetExhibitorStatus(ctx, id, status)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, "Exhibitor "+exhibitor.CompanyName+" "+status, exhibitor)
		return 0
	})
}

// runExhibitorsDelete deletes an exhibitor and returns exit code
func runExhibitorsDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathExhibitors, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteExhibitor(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Exhibitor deleted", map[string]string{"id": id})
		return 0
	})
}

// runVisitorsList lists visitors and returns exit code
func runVisitorsList(ctx context.Context, w io.Writer, opts client.ListOptions) int {
	return withSession(ctx, w, guard.PathVisitors, func(ctx context.Context, a *app, _ auth.State) int {
		visitors, err := a.client.ListVisitors(ctx, opts)
		if err != nil {
			return fail(w, err)
		}
		emit(w, visitors, func() string { return formatVisitorsHuman(visitors) })
		return 0
	})
}

// formatVisitorsHuman formats visitors as a table
func formatVisitorsHuman(visitors []client.Visitor) string {
	rows := make([][]string, 0, len(visitors))
	for _, v := range visitors {
		rows = append(rows, []string{v.ID, v.Name, v.Email, v.Mobile, yesNo(v.CheckedIn)})
	}
	return formatTable([]string{"ID", "Name", "Email", "Mobile", "Checked in"}, rows, "No visitors found.")
}

// runVisitorsDelete deletes a visitor and returns exit code
func runVisitorsDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathVisitors, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteVisitor(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Visitor deleted", map[string]string{"id": id})
		return 0
	})
}
