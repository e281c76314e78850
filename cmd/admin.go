// ABOUTME: FAQ and admin user commands for super admins
// ABOUTME: FAQs are replaced as one list from a YAML file; admins cannot delete themselves

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/guard"
	"github.com/spf13/cobra"
)

var (
	faqFile string

	adminDraft        forms.AdminDraft
	adminPasswordFile string
)

var faqsCmd = &cobra.Command{
	Use:   "faqs",
	Short: "Manage visitor FAQs (super admin)",
}

var faqsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List FAQs",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runFAQsList(ctx, w)
	}),
}

var faqsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the FAQs as YAML for editing",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runFAQsExport(ctx, w)
	}),
}

var faqsApplyCmd = &cobra.Command{
	Use:   "apply -f <file>",
	Short: "Replace the FAQ list from a YAML file",
	Long: `Replace every FAQ with the list in a YAML file. Rows with an empty question
and answer are dropped.

Example:
  eventdesk faqs export > faqs.yaml
  eventdesk faqs apply -f faqs.yaml`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runFAQsApply(ctx, w, faqFile)
	}),
}

var faqsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one FAQ",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runFAQsDelete(ctx, w, args[0])
	}),
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage admin users (super admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin users",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runUsersList(ctx, w)
	}),
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin user",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		draft := adminDraft
		if adminPasswordFile != "" {
			password, err := readSecret(adminPasswordFile)
			if err != nil {
				return fail(w, err)
			}
			draft.Password = password
		}
		return runUsersCreate(ctx, w, &draft)
	}),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an admin user",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runUsersDelete(ctx, w, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(faqsCmd, usersCmd)
	faqsCmd.AddCommand(faqsListCmd, faqsExportCmd, faqsApplyCmd, faqsDeleteCmd)
	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersDeleteCmd)

	faqsApplyCmd.Flags().StringVarP(&faqFile, "file", "f", "", "YAML file with a top-level faqs list")
	faqsApplyCmd.MarkFlagRequired("file")

	usersCreateCmd.Flags().StringVar(&adminDraft.Email, "email", "", "Email address")
	usersCreateCmd.Flags().StringVar(&adminDraft.Mobile, "mobile", "", "Mobile number in E.164 form")
	usersCreateCmd.Flags().StringVar(&adminDraft.Role, "role", string(auth.RoleSubAdmin), "super-admin or sub-admin")
	usersCreateCmd.Flags().StringVar(&adminPasswordFile, "password-file", "", `Read the initial password from a file, or "-" for stdin`)
}

// runFAQsList lists FAQs and returns exit code
func runFAQsList(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, guard.PathFAQs, func(ctx context.Context, a *app, _ auth.State) int {
		faqs, err := a.client.ListFAQs(ctx)
		if err != nil {
			return fail(w, err)
		}
		emit(w, faqs, func() string { return formatFAQsHuman(faqs) })
		return 0
	})
}

// formatFAQsHuman formats FAQs as a table
func formatFAQsHuman(faqs []client.FAQ) string {
	rows := make([][]string, 0, len(faqs))
	for _, f := range faqs {
		rows = append(rows, []string{f.ID, f.Question, f.Answer})
	}
	return formatTable([]string{"ID", "Question", "Answer"}, rows, "No FAQs yet.")
}

// runFAQsExport prints the current FAQs in the format apply reads and returns exit code
func runFAQsExport(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, guard.PathFAQs, func(ctx context.Context, a *app, _ auth.State) int {
		faqs, err := a.client.ListFAQs(ctx)
		if err != nil {
			return fail(w, err)
		}
		data, err := forms.NewFAQBatch(faqs).YAML()
		if err != nil {
			return fail(w, err)
		}
		w.Write(data)
		return 0
	})
}

// runFAQsApply replaces the FAQ list with the rows in path and returns exit code
func runFAQsApply(ctx context.Context, w io.Writer, path string) int {
	batch, err := forms.LoadFAQBatch(path)
	if err != nil {
		return fail(w, err)
	}
	rows, err := batch.Submit()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathFAQs, func(ctx context.Context, a *app, _ auth.State) int {
		saved, err := a.client.ReplaceFAQs(ctx, rows)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("FAQs saved (%d)", len(saved)), saved)
		return 0
	})
}

// runFAQsDelete deletes one FAQ and returns exit code
func runFAQsDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathFAQs, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteFAQ(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "FAQ deleted", map[string]string{"id": id})
		return 0
	})
}

// runUsersList lists admin users and returns exit code
func runUsersList(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, guard.PathUsers, func(ctx context.Context, a *app, _ auth.State) int {
		admins, err := a.client.ListAdmins(ctx, client.ListOptions{})
		if err != nil {
			return fail(w, err)
		}
		emit(w, admins, func() string { return formatUsersHuman(admins) })
		return 0
	})
}

// formatUsersHuman formats admin users as a table with console role names
func formatUsersHuman(admins []client.Admin) string {
	rows := make([][]string, 0, len(admins))
	for _, a := range admins {
		role := a.Role
		if r, err := auth.CanonicalRole(a.Role); err == nil {
			role = r.Label()
		}
		rows = append(rows, []string{a.ID, a.Email, a.Username, role, a.Mobile})
	}
	return formatTable([]string{"ID", "Email", "Username", "Role", "Mobile"}, rows, "No admin users found.")
}

// runUsersCreate creates an admin user and returns exit code
func runUsersCreate(ctx context.Context, w io.Writer, draft *forms.AdminDraft) int {
	input, err := draft.ToInput()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathUsers, func(ctx context.Context, a *app, _ auth.State) int {
		admin, err := a.client.CreateAdmin(ctx, *input)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("Admin %s created (%s)", admin.Email, admin.ID), admin)
		return 0
	})
}

// runUsersDelete deletes an admin user other than the caller and returns exit code
func runUsersDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathUsers, func(ctx context.Context, a *app, state auth.State) int {
		if state.User.ID == id {
			return invalid(w, errors.New("you cannot delete your own account"))
		}
		if err := a.client.DeleteAdmin(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Admin deleted", map[string]string{"id": id})
		return 0
	})
}
