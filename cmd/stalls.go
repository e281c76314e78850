// ABOUTME: Stall and schedule commands available to every admin
// ABOUTME: Stall amenities are toggled one at a time against the fixed feature catalog

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/guard"
	"github.com/spf13/cobra"
)

// slotLayout is how schedule times are written on the command line and in tables
const slotLayout = "2006-01-02 15:04"

var (
	venueEvent string

	stallDraft forms.StallDraft

	scheduleDraft forms.ScheduleDraft
	scheduleStart string
	scheduleEnd   string
)

var stallsCmd = &cobra.Command{
	Use:   "stalls",
	Short: "Manage exhibition stalls",
}

var stallsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stalls",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runStallsList(ctx, w, client.ListOptions{EventID: venueEvent})
	}),
}

var stallsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a stall",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		draft := stallDraft
		draft.EventID = venueEvent
		return runStallsCreate(ctx, w, &draft)
	}),
}

var stallsToggleCmd = &cobra.Command{
	Use:   "toggle <id> <feature>",
	Short: "Switch a stall amenity on or off",
	Long: fmt.Sprintf(`Switch one amenity of a stall on or off.

Features: %s`, strings.Join(forms.DefaultFeatures, ", ")),
	Args: cobra.ExactArgs(2),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runStallsToggle(ctx, w, args[0], args[1])
	}),
}

var stallsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stall",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runStallsDelete(ctx, w, args[0])
	}),
}

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "Manage event schedules",
}

var schedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedule slots",
	Args:  cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		return runSchedulesList(ctx, w, client.ListOptions{EventID: venueEvent})
	}),
}

var schedulesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a schedule slot",
	Long: `Create a schedule slot. Times use the local zone in the form "2006-01-02 15:04".

Example:
  eventdesk schedules create --event 64f1 --title Keynote --start "2026-11-03 09:00" --end "2026-11-03 10:00"`,
	Args: cobra.NoArgs,
	Run: run(func(ctx context.Context, w io.Writer, _ []string) int {
		draft := scheduleDraft
		draft.EventID = venueEvent
		return runSchedulesCreate(ctx, w, &draft, scheduleStart, scheduleEnd)
	}),
}

var schedulesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a schedule slot",
	Args:  cobra.ExactArgs(1),
	Run: run(func(ctx context.Context, w io.Writer, args []string) int {
		return runSchedulesDelete(ctx, w, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(stallsCmd, schedulesCmd)
	stallsCmd.AddCommand(stallsListCmd, stallsCreateCmd, stallsToggleCmd, stallsDeleteCmd)
	schedulesCmd.AddCommand(schedulesListCmd, schedulesCreateCmd, schedulesDeleteCmd)

	for _, c := range []*cobra.Command{stallsListCmd, schedulesListCmd} {
		c.Flags().StringVar(&venueEvent, "event", "", "Only entries for this event ID")
	}
	for _, c := range []*cobra.Command{stallsCreateCmd, schedulesCreateCmd} {
		c.Flags().StringVar(&venueEvent, "event", "", "Event ID")
		c.MarkFlagRequired("event")
	}

	stallsCreateCmd.Flags().StringVar(&stallDraft.Number, "number", "", "Stall number")
	stallsCreateCmd.Flags().StringVar(&stallDraft.Size, "size", "medium", "small, medium or large")
	stallsCreateCmd.Flags().Float64Var(&stallDraft.Price, "price", 0, "Booking price")

	schedulesCreateCmd.Flags().StringVar(&scheduleDraft.Title, "title", "", "Session title")
	schedulesCreateCmd.Flags().StringVar(&scheduleDraft.Speaker, "speaker", "", "Speaker name")
	schedulesCreateCmd.Flags().StringVar(&scheduleDraft.Location, "location", "", "Room or hall")
	schedulesCreateCmd.Flags().StringVar(&scheduleStart, "start", "", "Start time")
	schedulesCreateCmd.Flags().StringVar(&scheduleEnd, "end", "", "End time")
}

// runStallsList lists stalls and returns exit code
func runStallsList(ctx context.Context, w io.Writer, opts client.ListOptions) int {
	return withSession(ctx, w, guard.PathStalls, func(ctx context.Context, a *app, _ auth.State) int {
		stalls, err := a.client.ListStalls(ctx, opts)
		if err != nil {
			return fail(w, err)
		}
		emit(w, stalls, func() string { return formatStallsHuman(stalls) })
		return 0
	})
}

// formatStallsHuman formats stalls as a table
func formatStallsHuman(stalls []client.Stall) string {
	rows := make([][]string, 0, len(stalls))
	for _, s := range stalls {
		rows = append(rows, []string{
			s.ID, s.Number, s.Size, fmt.Sprintf("%.2f", s.Price), s.Status, featureList(s.Features),
		})
	}
	return formatTable([]string{"ID", "Number", "Size", "Price", "Status", "Features"}, rows, "No stalls found.")
}

func featureList(features []client.StallFeature) string {
	var on []string
	for _, f := range features {
		if f.Enabled {
			on = append(on, f.Name)
		}
	}
	if len(on) == 0 {
		return "-"
	}
	return strings.Join(on, ", ")
}

// runStallsCreate creates a stall and returns exit code
func runStallsCreate(ctx context.Context, w io.Writer, draft *forms.StallDraft) int {
	stall, err := draft.ToStall()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathStalls, func(ctx context.Context, a *app, _ auth.State) int {
		saved, err := a.client.CreateStall(ctx, stall)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("Stall %s created (%s)", saved.Number, saved.ID), saved)
		return 0
	})
}

// runStallsToggle flips one amenity of a stall and returns exit code
func runStallsToggle(ctx context.Context, w io.Writer, id, feature string) int {
	return withSession(ctx, w, guard.PathStalls, func(ctx context.Context, a *app, _ auth.State) int {
		stalls, err := a.client.ListStalls(ctx, client.ListOptions{})
		if err != nil {
			return fail(w, err)
		}
		var current *client.Stall
		for i := range stalls {
			if stalls[i].ID == id {
				current = &stalls[i]
				break
			}
		}
		if current == nil {
			return fail(w, fmt.Errorf("stall %s not found", id))
		}

		draft := forms.StallDraftFrom(current)
		on, err := draft.Features.Toggle(feature)
		if err != nil {
			return invalid(w, err)
		}
		stall, err := draft.ToStall()
		if err != nil {
			return invalid(w, err)
		}
		saved, err := a.client.UpdateStall(ctx, id, stall)
		if err != nil {
			return fail(w, err)
		}
		state := "off"
		if on {
			state = "on"
		}
		emitDone(w, fmt.Sprintf("Stall %s: %s %s", saved.Number, strings.ToLower(strings.TrimSpace(feature)), state), saved)
		return 0
	})
}

// runStallsDelete deletes a stall and returns exit code
func runStallsDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathStalls, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteStall(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Stall deleted", map[string]string{"id": id})
		return 0
	})
}

// runSchedulesList lists schedule slots and returns exit code
func runSchedulesList(ctx context.Context, w io.Writer, opts client.ListOptions) int {
	return withSession(ctx, w, guard.PathSchedules, func(ctx context.Context, a *app, _ auth.State) int {
		schedules, err := a.client.ListSchedules(ctx, opts)
		if err != nil {
			return fail(w, err)
		}
		emit(w, schedules, func() string { return formatSchedulesHuman(schedules) })
		return 0
	})
}

// formatSchedulesHuman formats schedule slots as a table
func formatSchedulesHuman(schedules []client.Schedule) string {
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, []string{
			s.ID, s.Title, s.Speaker, s.Location,
			s.StartTime.Local().Format(slotLayout), s.EndTime.Local().Format(slotLayout),
		})
	}
	return formatTable([]string{"ID", "Title", "Speaker", "Location", "Starts", "Ends"}, rows, "No schedules found.")
}

// runSchedulesCreate creates a schedule slot and returns exit code
func runSchedulesCreate(ctx context.Context, w io.Writer, draft *forms.ScheduleDraft, start, end string) int {
	var err error
	if draft.StartTime, err = parseSlot("start", start); err != nil {
		return invalid(w, err)
	}
	if draft.EndTime, err = parseSlot("end", end); err != nil {
		return invalid(w, err)
	}
	schedule, err := draft.ToSchedule()
	if err != nil {
		return invalid(w, err)
	}
	return withSession(ctx, w, guard.PathSchedules, func(ctx context.Context, a *app, _ auth.State) int {
		saved, err := a.client.CreateSchedule(ctx, schedule)
		if err != nil {
			return fail(w, err)
		}
		emitDone(w, fmt.Sprintf("Schedule %q created (%s)", saved.Title, saved.ID), saved)
		return 0
	})
}

func parseSlot(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation(slotLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must look like %q", name, slotLayout)
	}
	return t, nil
}

// runSchedulesDelete deletes a schedule slot and returns exit code
func runSchedulesDelete(ctx context.Context, w io.Writer, id string) int {
	return withSession(ctx, w, guard.PathSchedules, func(ctx context.Context, a *app, _ auth.State) int {
		if err := a.client.DeleteSchedule(ctx, id); err != nil {
			return fail(w, err)
		}
		emitDone(w, "Schedule deleted", map[string]string{"id": id})
		return 0
	})
}
