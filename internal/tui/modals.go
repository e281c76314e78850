// ABOUTME: Small huh forms opened over a panel to create or edit one entity
// ABOUTME: Values are validated locally before any request is sent

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/tui/styles"
)

// modal is a one-group form shown in place of the panel
type modal struct {
	title  string
	build  func() *huh.Form
	submit func() (tea.Cmd, error)
	form   *huh.Form
	err    string
}

func newModal(title string, build func() *huh.Form, submit func() (tea.Cmd, error)) *modal {
	return &modal{title: title, build: build, submit: submit, form: build()}
}

// update forwards msg to the form. done is true once a valid submission was sent.
func (m *modal) update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return cmd, false
	}
	req, err := m.submit()
	if err != nil {
		m.err = err.Error()
		m.form = m.build()
		return m.form.Init(), false
	}
	return req, true
}

func (m *modal) view() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(m.title))
	sb.WriteString("\n")
	if m.err != "" {
		sb.WriteString(styles.ErrorText.Render(m.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc cancel"))
	return sb.String()
}

func (a *App) stallModal() *modal {
	draft := &forms.StallDraft{Size: "medium"}
	price := "0"
	build := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Event ID").Value(&draft.EventID),
			huh.NewInput().Title("Stall number").Value(&draft.Number),
			huh.NewSelect[string]().Title("Size").
				Options(huh.NewOptions("small", "medium", "large")...).
				Value(&draft.Size),
			huh.NewInput().Title("Price").Value(&price),
		)).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	}
	submit := func() (tea.Cmd, error) {
		p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil {
			return nil, fmt.Errorf("price must be a number")
		}
		draft.Price = p
		stall, err := draft.ToStall()
		if err != nil {
			return nil, err
		}
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.CreateStall(ctx, stall)
			return "Stall created", err
		}), nil
	}
	return newModal("New stall", build, submit)
}

func (a *App) featuresModal(stall client.Stall) *modal {
	draft := forms.StallDraftFrom(&stall)
	var selected []string
	for _, name := range draft.Features.Catalog() {
		if draft.Features.Enabled(name) {
			selected = append(selected, name)
		}
	}
	build := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Features of stall " + stall.Number).
				Description("space toggles, enter saves").
				Options(huh.NewOptions(draft.Features.Catalog()...)...).
				Value(&selected),
		)).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	}
	submit := func() (tea.Cmd, error) {
		want := make(map[string]bool, len(selected))
		for _, name := range selected {
			want[name] = true
		}
		for _, name := range draft.Features.Catalog() {
			if draft.Features.Enabled(name) != want[name] {
				if _, err := draft.Features.Toggle(name); err != nil {
					return nil, err
				}
			}
		}
		updated, err := draft.ToStall()
		if err != nil {
			return nil, err
		}
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.UpdateStall(ctx, stall.ID, updated)
			return "Stall features saved", err
		}), nil
	}
	return newModal("Stall features", build, submit)
}

func (a *App) scheduleModal() *modal {
	draft := &forms.ScheduleDraft{}
	var start, end string
	build := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Event ID").Value(&draft.EventID),
			huh.NewInput().Title("Title").Value(&draft.Title),
			huh.NewInput().Title("Speaker").Value(&draft.Speaker),
			huh.NewInput().Title("Location").Value(&draft.Location),
			huh.NewInput().Title("Starts").Placeholder(timeLayout).Value(&start),
			huh.NewInput().Title("Ends").Placeholder(timeLayout).Value(&end),
		)).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	}
	submit := func() (tea.Cmd, error) {
		var err error
		if draft.StartTime, err = parseSlot(start); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		if draft.EndTime, err = parseSlot(end); err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		schedule, err := draft.ToSchedule()
		if err != nil {
			return nil, err
		}
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.CreateSchedule(ctx, schedule)
			return "Schedule created", err
		}), nil
	}
	return newModal("New schedule", build, submit)
}

// faqModal edits row index of current, or appends a row when index is negative
func (a *App) faqModal(current []client.FAQ, index int) *modal {
	batch := forms.NewFAQBatch(current)
	title := "Edit FAQ"
	if index < 0 {
		index = batch.Add()
		title = "New FAQ"
	}
	question := batch.Rows[index].Question
	answer := batch.Rows[index].Answer
	build := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Question").Value(&question),
			huh.NewText().Title("Answer").Lines(4).Value(&answer),
		)).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	}
	submit := func() (tea.Cmd, error) {
		if err := batch.Edit(index, question, answer); err != nil {
			return nil, err
		}
		rows, err := batch.Submit()
		if err != nil {
			return nil, err
		}
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.ReplaceFAQs(ctx, rows)
			return "FAQs saved", err
		}), nil
	}
	return newModal(title, build, submit)
}

func (a *App) adminModal() *modal {
	draft := &forms.AdminDraft{Role: string(auth.RoleSubAdmin)}
	build := func() *huh.Form {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&draft.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&draft.Password),
			huh.NewInput().Title("Mobile").Placeholder("+15551234567").Value(&draft.Mobile),
			huh.NewSelect[string]().Title("Role").
				Options(
					huh.NewOption(auth.RoleSubAdmin.Label(), string(auth.RoleSubAdmin)),
					huh.NewOption(auth.RoleSuperAdmin.Label(), string(auth.RoleSuperAdmin)),
				).
				Value(&draft.Role),
		)).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	}
	submit := func() (tea.Cmd, error) {
		input, err := draft.ToInput()
		if err != nil {
			return nil, err
		}
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.CreateAdmin(ctx, *input)
			return "Admin created", err
		}), nil
	}
	return newModal("New admin", build, submit)
}

func parseSlot(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s", timeLayout)
	}
	return t, nil
}

// roleLabel shows a server role string in console vocabulary
func roleLabel(server string) string {
	role, err := auth.CanonicalRole(server)
	if err != nil {
		return server
	}
	return role.Label()
}
