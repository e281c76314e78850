// ABOUTME: Per-route table definitions for the entity panels
// ABOUTME: Each definition loads its collection and runs the panel's row actions

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/tui/panel"
)

// Action keys shared across panels
const (
	keyNew      = "n"
	keyEdit     = "e"
	keyDelete   = "d"
	keyApprove  = "a"
	keyReject   = "x"
	keyFeatures = "t"
)

// panelData is one loaded collection: display rows plus the items behind them
type panelData struct {
	rows  []panel.Row
	items map[string]any
}

// ordered returns the items in row order
func ordered[T any](d panelData) []T {
	out := make([]T, 0, len(d.rows))
	for _, r := range d.rows {
		if v, ok := d.items[r.ID].(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func newPanelData(n int) panelData {
	return panelData{items: make(map[string]any, n)}
}

func (d *panelData) add(id string, item any, cells ...string) {
	d.rows = append(d.rows, panel.Row{ID: id, Cells: cells})
	d.items[id] = item
}

// panelDef describes one entity panel
type panelDef struct {
	columns []table.Column
	actions []panel.Action
	load    func(ctx context.Context, c *client.Client) (panelData, error)
	// run performs actions that need no further input; it returns a notice
	run func(ctx context.Context, c *client.Client, key, id string) (string, error)
}

var panelDefs = map[string]panelDef{
	guard.PathEvents: {
		columns: []table.Column{
			{Title: "Title", Width: 28},
			{Title: "Venue", Width: 20},
			{Title: "Dates", Width: 24},
			{Title: "Sponsors", Width: 9},
			{Title: "Speakers", Width: 9},
		},
		actions: []panel.Action{
			{Key: keyNew, Label: "New", Global: true},
			{Key: keyEdit, Label: "Edit"},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadEvents,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "Event deleted", c.DeleteEvent(ctx, id)
		},
	},
	guard.PathStalls: {
		columns: []table.Column{
			{Title: "Number", Width: 8},
			{Title: "Event", Width: 14},
			{Title: "Size", Width: 8},
			{Title: "Price", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Features", Width: 30},
		},
		actions: []panel.Action{
			{Key: keyNew, Label: "New", Global: true},
			{Key: keyFeatures, Label: "Features"},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadStalls,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "Stall deleted", c.DeleteStall(ctx, id)
		},
	},
	guard.PathSchedules: {
		columns: []table.Column{
			{Title: "Title", Width: 24},
			{Title: "Speaker", Width: 16},
			{Title: "Location", Width: 14},
			{Title: "Starts", Width: 17},
			{Title: "Ends", Width: 17},
		},
		actions: []panel.Action{
			{Key: keyNew, Label: "New", Global: true},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadSchedules,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "Schedule deleted", c.DeleteSchedule(ctx, id)
		},
	},
	guard.PathExhibitors: {
		columns: []table.Column{
			{Title: "Company", Width: 22},
			{Title: "Contact", Width: 16},
			{Title: "Email", Width: 24},
			{Title: "Status", Width: 10},
		},
		actions: []panel.Action{
			{Key: keyApprove, Label: "Approve"},
			{Key: keyReject, Label: "Reject", Confirm: true},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadExhibitors,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			switch key {
			case keyApprove:
				_, err := c.SetExhibitorStatus(ctx, id, client.ExhibitorApproved)
				return "Exhibitor approved", err
			case keyReject:
				_, err := c.SetExhibitorStatus(ctx, id, client.ExhibitorRejected)
				return "Exhibitor rejected", err
			case keyDelete:
				return "Exhibitor deleted", c.DeleteExhibitor(ctx, id)
			}
			return "", nil
		},
	},
	guard.PathVisitors: {
		columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 26},
			{Title: "Mobile", Width: 14},
			{Title: "Checked in", Width: 10},
		},
		actions: []panel.Action{
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadVisitors,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "Visitor deleted", c.DeleteVisitor(ctx, id)
		},
	},
	guard.PathFAQs: {
		columns: []table.Column{
			{Title: "Question", Width: 36},
			{Title: "Answer", Width: 44},
		},
		actions: []panel.Action{
			{Key: keyNew, Label: "New", Global: true},
			{Key: keyEdit, Label: "Edit"},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadFAQs,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "FAQ deleted", c.DeleteFAQ(ctx, id)
		},
	},
	guard.PathUsers: {
		columns: []table.Column{
			{Title: "Email", Width: 28},
			{Title: "Username", Width: 16},
			{Title: "Role", Width: 12},
			{Title: "Mobile", Width: 14},
		},
		actions: []panel.Action{
			{Key: keyNew, Label: "New", Global: true},
			{Key: keyDelete, Label: "Delete", Confirm: true},
		},
		load: loadAdmins,
		run: func(ctx context.Context, c *client.Client, key, id string) (string, error) {
			if key != keyDelete {
				return "", nil
			}
			return "Admin deleted", c.DeleteAdmin(ctx, id)
		},
	},
}

func loadEvents(ctx context.Context, c *client.Client) (panelData, error) {
	events, err := c.ListEvents(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(events))
	for _, e := range events {
		d.add(e.ID, e, e.Title, e.Venue, eventDates(e),
			fmt.Sprint(len(e.Sponsors)), fmt.Sprint(len(e.Speakers)))
	}
	return d, nil
}

func loadStalls(ctx context.Context, c *client.Client) (panelData, error) {
	stalls, err := c.ListStalls(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(stalls))
	for _, s := range stalls {
		d.add(s.ID, s, s.Number, s.EventID, s.Size, fmt.Sprintf("%.2f", s.Price), s.Status, enabledFeatures(s.Features))
	}
	return d, nil
}

func loadSchedules(ctx context.Context, c *client.Client) (panelData, error) {
	schedules, err := c.ListSchedules(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(schedules))
	for _, s := range schedules {
		d.add(s.ID, s, s.Title, s.Speaker, s.Location,
			s.StartTime.Format(timeLayout), s.EndTime.Format(timeLayout))
	}
	return d, nil
}

func loadExhibitors(ctx context.Context, c *client.Client) (panelData, error) {
	exhibitors, err := c.ListExhibitors(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(exhibitors))
	for _, e := range exhibitors {
		d.add(e.ID, e, e.CompanyName, e.ContactName, e.Email, e.Status)
	}
	return d, nil
}

func loadVisitors(ctx context.Context, c *client.Client) (panelData, error) {
	visitors, err := c.ListVisitors(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(visitors))
	for _, v := range visitors {
		checked := "no"
		if v.CheckedIn {
			checked = "yes"
		}
		d.add(v.ID, v, v.Name, v.Email, v.Mobile, checked)
	}
	return d, nil
}

func loadFAQs(ctx context.Context, c *client.Client) (panelData, error) {
	faqs, err := c.ListFAQs(ctx)
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(faqs))
	for _, f := range faqs {
		d.add(f.ID, f, f.Question, f.Answer)
	}
	return d, nil
}

func loadAdmins(ctx context.Context, c *client.Client) (panelData, error) {
	admins, err := c.ListAdmins(ctx, client.ListOptions{})
	if err != nil {
		return panelData{}, err
	}
	d := newPanelData(len(admins))
	for _, a := range admins {
		d.add(a.ID, a, a.Email, a.Username, roleLabel(a.Role), a.Mobile)
	}
	return d, nil
}

// timeLayout formats schedule slots in tables and forms
const timeLayout = "2006-01-02 15:04"

func eventDates(e client.Event) string {
	if e.StartDate.IsZero() {
		return "TBA"
	}
	start := e.StartDate.Format("2006-01-02")
	end := e.EndDate.Format("2006-01-02")
	if e.EndDate.IsZero() || start == end {
		return start
	}
	return start + " to " + end
}

func enabledFeatures(features []client.StallFeature) string {
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
