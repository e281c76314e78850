// ABOUTME: Event editor wizard as a bubbletea model
// ABOUTME: Uses huh forms with a visual progress indicator for step navigation

package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/tui/icons"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/validate"
)

// DateLayout is the format event dates are typed in
const DateLayout = "2006-01-02"

// CompleteMsg is sent when the wizard produces a valid draft
type CompleteMsg struct {
	Draft *forms.EventDraft
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Wizard manages the event editing flow as a bubbletea model
type Wizard struct {
	draft *forms.EventDraft
	form  *huh.Form
	step  int
	width int
	err   string

	// Form field values (strings for huh)
	title       string
	venue       string
	website     string
	description string
	startDate   string
	endDate     string
	sponsors    string
	speakers    string
}

// Step names for progress indicator
var stepNames = []string{"Details", "Dates", "Sponsors & Speakers"}

// createTheme returns the huh theme in the console palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	sky := lipgloss.Color("#0EA5E9")
	skyLight := lipgloss.Color("#38BDF8")
	blue := lipgloss.Color("#3B82F6")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(sky).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(sky)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(skyLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(sky)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a wizard editing draft. A nil draft starts a new event.
func New(draft *forms.EventDraft) *Wizard {
	if draft == nil {
		draft = &forms.EventDraft{}
	}
	w := &Wizard{
		draft:       draft,
		step:        1,
		title:       draft.Title,
		venue:       draft.Venue,
		website:     draft.Website,
		description: draft.Description,
		startDate:   formatDate(draft.StartDate),
		endDate:     formatDate(draft.EndDate),
		sponsors:    formatSponsors(draft.Sponsors),
		speakers:    formatSpeakers(draft.Speakers),
	}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(120).
				Value(&w.title).
				Validate(required("title")),
			huh.NewInput().
				Title("Venue").
				Value(&w.venue).
				Validate(required("venue")),
			huh.NewInput().
				Title("Website").
				Placeholder("https://").
				Value(&w.website).
				Validate(optionalURL),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&w.description),
		).Title("Step 1: Details").
			Description("What is the event and where is it held?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder(DateLayout).
				Value(&w.startDate).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Description("May equal the start date for one-day events").
				Placeholder(DateLayout).
				Value(&w.endDate).
				Validate(validateDate),
		).Title("Step 2: Dates").
			Description("Dates are entered as YYYY-MM-DD"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Sponsors").
				Description("One per line: name | website | tier").
				Lines(4).
				Value(&w.sponsors),
			huh.NewText().
				Title("Speakers").
				Description("One per line: name | designation").
				Lines(4).
				Value(&w.speakers),
		).Title("Step 3: Sponsors & Speakers").
			Description("Leave empty if none are confirmed yet"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		draft, err := w.build()
		if err != nil {
			// Back to the start with every entered value kept
			w.err = err.Error()
			w.step = 1
			w.form = w.createStep1Form()
			return w, w.form.Init()
		}
		w.err = ""
		return w, func() tea.Msg {
			return CompleteMsg{Draft: draft}
		}
	}

	return w, nil
}

// build applies the entered values to a copy of the draft being edited.
// Fields the form does not show are carried over unchanged.
func (w *Wizard) build() (*forms.EventDraft, error) {
	d := w.draft.Clone()
	d.Title = w.title
	d.Venue = w.venue
	d.Website = strings.TrimSpace(w.website)
	d.Description = strings.TrimSpace(w.description)

	var err error
	if d.StartDate, err = mergeDate(w.draft.StartDate, w.startDate); err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	if d.EndDate, err = mergeDate(w.draft.EndDate, w.endDate); err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	d.Sponsors = mergeSponsors(w.draft.Sponsors, parseSponsors(w.sponsors))
	d.Speakers = mergeSpeakers(w.draft.Speakers, parseSpeakers(w.speakers))

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	if w.err != "" {
		sb.WriteString(styles.ErrorText.Render(icons.Critical.String() + " " + w.err))
		sb.WriteString("\n\n")
	}

	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(60, w.width-1)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	heading := "Editing event"
	if w.draft.ID == "" {
		heading = "New event"
	}
	styledTitle := titleStyle.Render(heading)
	topFillWidth := max(0, width-5-lipgloss.Width(heading))
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"

	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// Step returns the current step number, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if err := validate.Var("website", s, "url"); err != nil {
		return errors.New("must be a valid URL")
	}
	return nil
}

func validateDate(s string) error {
	_, err := parseDate(s)
	return err
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s", DateLayout)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// mergeDate applies a typed date to orig. An unchanged date returns orig;
// a changed one keeps orig's time of day and location.
func mergeDate(orig time.Time, s string) (time.Time, error) {
	if !orig.IsZero() && strings.TrimSpace(s) == formatDate(orig) {
		return orig, nil
	}
	t, err := parseDate(s)
	if err != nil || orig.IsZero() {
		return t, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(),
		orig.Hour(), orig.Minute(), orig.Second(), orig.Nanosecond(), orig.Location()), nil
}

// matchRows pairs each edited row with the original it came from: first by
// name, then by position when that original is not claimed by name.
// The result holds an index into orig, or -1 for a new row.
func matchRows(orig, edited []string) []int {
	used := make([]bool, len(orig))
	match := make([]int, len(edited))
	for i, name := range edited {
		match[i] = -1
		for j, o := range orig {
			if !used[j] && strings.EqualFold(o, name) {
				match[i], used[j] = j, true
				break
			}
		}
	}
	for i := range edited {
		if match[i] == -1 && i < len(orig) && !used[i] {
			match[i], used[i] = i, true
		}
	}
	return match
}

func mergeSponsors(orig, edited []client.Sponsor) []client.Sponsor {
	names := func(rows []client.Sponsor) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Name
		}
		return out
	}
	match := matchRows(names(orig), names(edited))
	out := make([]client.Sponsor, 0, len(edited))
	for i, s := range edited {
		if j := match[i]; j >= 0 {
			s.Logo = orig[j].Logo
		}
		out = append(out, s)
	}
	return out
}

func mergeSpeakers(orig, edited []client.Speaker) []client.Speaker {
	names := func(rows []client.Speaker) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Name
		}
		return out
	}
	match := matchRows(names(orig), names(edited))
	out := make([]client.Speaker, 0, len(edited))
	for i, s := range edited {
		if j := match[i]; j >= 0 {
			s.Bio = orig[j].Bio
			s.LinkedIn = orig[j].LinkedIn
		}
		out = append(out, s)
	}
	return out
}

// splitLine splits "a | b | c" into at least n trimmed fields
func splitLine(line string, n int) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func parseSponsors(s string) []client.Sponsor {
	var out []client.Sponsor
	for _, line := range nonBlankLines(s) {
		f := splitLine(line, 3)
		out = append(out, client.Sponsor{Name: f[0], Website: f[1], Tier: strings.ToLower(f[2])})
	}
	return out
}

func parseSpeakers(s string) []client.Speaker {
	var out []client.Speaker
	for _, line := range nonBlankLines(s) {
		f := splitLine(line, 2)
		out = append(out, client.Speaker{Name: f[0], Designation: f[1]})
	}
	return out
}

func formatSponsors(sponsors []client.Sponsor) string {
	lines := make([]string, 0, len(sponsors))
	for _, s := range sponsors {
		lines = append(lines, strings.TrimRight(strings.Join([]string{s.Name, s.Website, s.Tier}, " | "), " |"))
	}
	return strings.Join(lines, "\n")
}

func formatSpeakers(speakers []client.Speaker) string {
	lines := make([]string, 0, len(speakers))
	for _, s := range speakers {
		lines = append(lines, strings.TrimRight(strings.Join([]string{s.Name, s.Designation}, " | "), " |"))
	}
	return strings.Join(lines, "\n")
}
