// ABOUTME: Event commands: list, show, template, apply and delete
// ABOUTME: Events are written as YAML drafts and validated locally before they are sent

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/guard"
	"github.com/spf13/cobra"
)

var (
	eventSearch string
	eventStatus string
	eventFile   string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runEventsList(ctx, w, client.ListOptions{Search: eventSearch, Status: eventStatus})
	}),
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an event with its sponsors and speakers",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runEventsShow(ctx, w, args[0])
	}),
}

var eventsTemplateCmd = &cobra.Command{
	Use:   "template [id]",
	Short: "Print an event draft as YAML",
	Long: `Print a YAML draft for "events apply". With an id, the draft holds the
current values of that event; without one it is an empty template.`,
	Args: cobra.MaximumNArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return runEventsTemplate(ctx, w, id)
	}),
}

var eventsApplyCmd = &cobra.Command{
	Use:   "apply -f <file>",
	Short: "Create or update an event from a YAML draft",
	Long: `Create an event from a YAML draft, or update it when the draft has an id.

Example:
  eventdesk events template > expo.yaml
  eventdesk events apply -f expo.yaml`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runEventsApply(ctx, w, eventFile)
	}),
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runEventsDelete(ctx, w, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsShowCmd, eventsTemplateCmd, eventsApplyCmd, eventsDeleteCmd)
	eventsListCmd.Flags().StringVar(&eventSearch, "search", "", "Filter by title")
	eventsListCmd.Flags().StringVar(&eventStatus, "status", "", "Filter by status")
	eventsApplyCmd.Flags().StringVarP(&eventFile, "file", "f", "", "YAML event draft")
	eventsApplyCmd.MarkFlagRequired("file")
}

// runEventsList lists events and returns exit code
func runEventsList(ctx context.Context, w io.Writer, opts client.ListOptions) int {
	return withSession(ctx, w, guard.PathEvents, func(ctx context.Context, a *app, _ auth.State) int {
		events, err := a.client.ListEvents(ctx, opts)
		if err != nil {
			return fail(w, err)
		}
		emit(w, events, func() string { return formatEventsHuman(events) })
		return 0
	})
}

// formatEventsHuman formats events as a table
func formatEventsHuman(events []client.Event) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.ID, e.Title, e.Venue, eventDates(e), e.Status})
	}
	return formatTable([]string{"ID", "Title", "Venue", "Dates", "Status"}, rows, "No events found.")
}

// runEventsShow prints one event and returns exit code
func runEventsShow(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathEvents, func(ctx context.Context, a *app, _ auth.State) int {
		event, err := a.client.GetEvent(ctx, id)
		if err != nil {
			return fail(w, err)
		}
		emit(w, event, func() string { return formatEventHuman(event) })
		return 0
	})
}

// formatEventHuman formats an event with its nested lists
func formatEventHuman(e *client.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:   %s\n", e.Title)
	fmt.Fprintf(&sb, "Venue:   %s\n", e.Venue)
	fmt.Fprintf(&sb, "Dates:   %s\n", eventDates(*e))
	if e.Website != "" {
		fmt.Fprintf(&sb, "Website: %s\n", e.Website)
	}
	if e.Status != "" {
		fmt.Fprintf(&sb, "Status:  %s\n", e.Status)
	}
	if e.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", e.Description)
	}

	sponsors := make([][]string, 0, len(e.Sponsors))
	for _, s := range e.Sponsors {
		sponsors = append(sponsors, []string{s.Name, s.Tier, s.Website})
	}
	sb.WriteString("\nSponsors:\n")
	sb.WriteString(formatTable([]string{"Name", "Tier", "Website"}, sponsors, "  none"))

	speakers := make([][]string, 0, len(e.Speakers))
	for _, s := range e.Speakers {
		speakers = append(speakers, []string{s.Name, s.Designation})
	}
	sb.WriteString("\n\nSpeakers:\n")
	sb.WriteString(formatTable([]string{"Name", "Designation"}, speakers, "  none"))
	return sb.String()
}

// runEventsTemplate prints a YAML draft and returns exit code
func runEventsTemplate(ctx context.Context, w io.Writer, id string) int {
	if id == "" {
		return writeDraft(w, &forms.EventDraft{
			Sponsors: []client.Sponsor{{}},
			Speakers: []client.Speaker{{}},
		})
	}
	return withSession(ctx, w, guard.PathEvents, func(ctx context.Context, a *app, _ auth.State) int {
		event, err := a.client.GetEvent(ctx, id)
		if err != nil {
			return fail(w, err)
		}
		return writeDraft(w, forms.EventDraftFrom(event))
	})
}

func writeDraft(w io.Writer, d *forms.EventDraft) int {
	data, err := d.YAML()
	if err != nil {
		return fail(w, err)
	}
	w.Write(data)
	return 0
}

// runEventsApply creates or updates the event in path and returns exit code
func runEventsApply(ctx context.Context, w io.Writer, path string) int {
	draft, err := forms.LoadEventDraft(path)
	if err != nil {
		return fail(w, err)
	}
	event, err := draft.ToEvent()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathEvents, func(ctx context.Context, a *app, _ auth.State) int {
		var (
			saved   *client.Event
			message string
		)
		if event.ID == "" {
			saved, err = a.client.CreateEvent(ctx, event)
			message = "Event created"
		} else {
			saved, err = a.client.UpdateEvent(ctx, event.ID, event)
			message = "Event updated"
		}
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("%s: %s (%s)", message, saved.Title, saved.ID), saved)
		return 0
	})
}

// runEventsDelete deletes an event and returns exit code
func runEventsDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathEvents, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteEvent(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Event deleted", map[string]string{"id": id})
		return 0
	})
}
