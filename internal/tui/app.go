// ABOUTME: Root bubbletea model for the admin console
// ABOUTME: Every screen change goes through the route guard; requests die with their session

package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eventdesk/console/internal/auth"
	"github.com/eventdesk/console/internal/cache"
	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/forms"
	"github.com/eventdesk/console/internal/guard"
	"github.com/eventdesk/console/internal/tui/dashboard"
	"github.com/eventdesk/console/internal/tui/login"
	"github.com/eventdesk/console/internal/tui/menu"
	"github.com/eventdesk/console/internal/tui/panel"
	"github.com/eventdesk/console/internal/tui/profile"
	"github.com/eventdesk/console/internal/tui/styles"
	"github.com/eventdesk/console/internal/tui/wizard"
	"github.com/rs/zerolog"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width the frame is drawn at
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	summaryKey       = "summary"
)

// Deps are the collaborators the console runs against
type Deps struct {
	Resolver *auth.Resolver
	Client   *client.Client
	Cache    *cache.Cache
	Logger   zerolog.Logger
}

// resolvedMsg is sent when the stored session has been read
type resolvedMsg struct {
	state auth.State
}

// loginResultMsg is sent when a login attempt finishes
type loginResultMsg struct {
	err error
}

// summaryLoadedMsg carries the dashboard data
type summaryLoadedMsg struct {
	gen     auth.Generation
	summary *client.Summary
	err     error
}

// panelLoadedMsg carries one panel's collection
type panelLoadedMsg struct {
	gen   auth.Generation
	route string
	data  panelData
	err   error
}

// actionDoneMsg is sent when a create, update or delete finishes
type actionDoneMsg struct {
	gen    auth.Generation
	route  string
	notice string
	err    error
}

// eventFetchedMsg carries an event opened for editing
type eventFetchedMsg struct {
	gen   auth.Generation
	event *client.Event
	err   error
}

// profileSavedMsg is sent when a profile update finishes
type profileSavedMsg struct {
	gen  auth.Generation
	user *auth.User
	err  error
}

// passwordChangedMsg is sent when a password change finishes
type passwordChangedMsg struct {
	gen     auth.Generation
	message string
	err     error
}

// App is the root model for the console
type App struct {
	ctx      context.Context
	resolver *auth.Resolver
	client   *client.Client
	cache    *cache.Cache
	logger   zerolog.Logger

	nav     *guard.Navigator
	spinner spinner.Model
	state   auth.State
	gen     auth.Generation

	// route is the rendered route, empty until auth resolves.
	// returnTo is where to go after the next login.
	route      string
	returnTo   string
	width      int
	height     int
	lastUpdate time.Time

	// Child models
	login     *login.Screen
	menu      *menu.Menu
	dashboard *dashboard.Dashboard
	panel     *panel.Panel
	data      panelData
	wizard    *wizard.Wizard
	profile   *profile.Screen
	modal     *modal
}

// New creates the console. start is the route to open once auth resolves.
func New(ctx context.Context, deps Deps, start string) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	if start == "" {
		start = guard.PathDashboard
	}
	return &App{
		ctx:      ctx,
		resolver: deps.Resolver,
		client:   deps.Client,
		cache:    deps.Cache,
		logger:   deps.Logger,
		nav:      guard.NewNavigator(),
		spinner:  s,
		state:    auth.State{Status: auth.StatusResolving},
		returnTo: start,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return resolvedMsg{state: a.resolver.Resolve()}
	})
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ended := a.checkSession(); ended {
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		if a.wizard != nil {
			a.wizard.SetWidth(msg.Width - 1)
		}
		return a, nil

	case spinner.TickMsg:
		if a.route != "" {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case resolvedMsg:
		a.syncState()
		target := a.returnTo
		a.returnTo = ""
		return a, a.navigate(target)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case login.SubmittedMsg:
		return a, a.submitLogin(msg.Credentials)

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case menu.SelectedMsg:
		a.menu = nil
		return a, a.navigate(msg.Path)

	case menu.LogoutMsg:
		a.menu = nil
		return a, a.logout()

	case menu.CancelledMsg:
		a.menu = nil
		return a, nil

	case summaryLoadedMsg:
		if a.stale(msg.gen) || a.dashboard == nil {
			return a, nil
		}
		if msg.err != nil {
			a.cache.Clear(summaryKey)
			a.logRequestError("summary", msg.err)
			return a, nil
		}
		a.dashboard.Update(msg.summary)
		a.lastUpdate = time.Now()
		return a, nil

	case panelLoadedMsg:
		if a.stale(msg.gen) || msg.route != a.route || a.panel == nil {
			return a, nil
		}
		if msg.err != nil {
			a.panel.SetError(msg.err.Error())
			a.logRequestError(msg.route, msg.err)
			return a, nil
		}
		a.data = msg.data
		a.panel.SetRows(msg.data.rows)
		a.lastUpdate = time.Now()
		return a, nil

	case panel.RefreshMsg:
		if a.panel == nil {
			return a, nil
		}
		a.invalidate(a.route)
		a.panel.SetLoading()
		return a, a.loadPanel(a.route)

	case panel.ActionMsg:
		return a, a.handleAction(msg)

	case actionDoneMsg:
		if a.stale(msg.gen) {
			return a, nil
		}
		a.invalidate(msg.route)
		if msg.route != a.route || a.panel == nil {
			return a, nil
		}
		if msg.err != nil {
			a.panel.SetError(msg.err.Error())
			return a, nil
		}
		a.panel.SetNotice(msg.notice)
		a.panel.SetLoading()
		return a, a.loadPanel(a.route)

	case eventFetchedMsg:
		if a.stale(msg.gen) || a.route != guard.PathEvents {
			return a, nil
		}
		if msg.err != nil {
			if a.panel != nil {
				a.panel.SetError(msg.err.Error())
			}
			return a, nil
		}
		return a, a.openWizard(forms.EventDraftFrom(msg.event))

	case wizard.CompleteMsg:
		a.wizard = nil
		return a, a.saveEvent(msg.Draft)

	case wizard.CancelledMsg:
		a.wizard = nil
		return a, nil

	case profile.UpdateMsg:
		return a, a.updateProfile(msg.Update)

	case profile.PasswordMsg:
		return a, a.changePassword(msg.Input)

	case profileSavedMsg:
		if a.profile == nil || msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			return a, a.profile.SetError(msg.err.Error())
		}
		a.syncState()
		a.profile.SetUser(msg.user)
		a.profile.Done("Profile updated")
		return a, nil

	case passwordChangedMsg:
		if a.stale(msg.gen) || a.profile == nil {
			return a, nil
		}
		if msg.err != nil {
			return a, a.profile.SetError(msg.err.Error())
		}
		notice := msg.message
		if notice == "" {
			notice = "Password changed"
		}
		a.profile.Done(notice)
		return a, nil
	}

	return a.forward(msg)
}

// forward passes messages huh needs for its internals to the active form
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case a.menu != nil:
		_, cmd := a.menu.Update(msg)
		return a, cmd
	case a.wizard != nil:
		_, cmd := a.wizard.Update(msg)
		return a, cmd
	case a.modal != nil:
		cmd, done := a.modal.update(msg)
		if done {
			a.modal = nil
		}
		return a, cmd
	case a.route == guard.PathLogin && a.login != nil:
		_, cmd := a.login.Update(msg)
		return a, cmd
	case a.route == guard.PathProfile && a.profile != nil:
		_, cmd := a.profile.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.route == "" {
		return a, nil
	}

	// Open forms take every key
	switch {
	case a.menu != nil, a.wizard != nil, a.route == guard.PathLogin:
		return a.forward(msg)
	case a.modal != nil:
		if msg.String() == "esc" {
			a.modal = nil
			return a, nil
		}
		return a.forward(msg)
	case a.route == guard.PathProfile && a.profile != nil && a.profile.Editing():
		return a.forward(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "m", "tab":
		return a, a.openMenu()
	case "b", "esc":
		return a, a.back()
	}

	switch {
	case a.route == guard.PathDashboard:
		if msg.String() == "r" {
			a.cache.Clear(summaryKey)
			return a, a.loadSummary()
		}
	case a.route == guard.PathProfile && a.profile != nil:
		_, cmd := a.profile.Update(msg)
		return a, cmd
	case a.panel != nil:
		_, cmd := a.panel.Update(msg)
		return a, cmd
	}
	return a, nil
}

// navigate runs path through the guard and opens whatever it admits
func (a *App) navigate(path string) tea.Cmd {
	d, err := a.nav.Navigate(a.state, path)
	if err != nil {
		a.logger.Warn().Err(err).Msg("navigation refused")
		return nil
	}

	switch d.Kind {
	case guard.Pending:
		a.returnTo = path
		return nil
	case guard.Redirect:
		a.logger.Debug().Str("from", path).Str("to", d.Target).Msg("guard redirect")
		if d.Target == guard.PathLogin {
			a.returnTo = path
		}
		return a.open(d.Target)
	default:
		return a.open(path)
	}
}

// back returns to the previous admitted route, re-checking it first
func (a *App) back() tea.Cmd {
	d, ok := a.nav.Back(a.state)
	if !ok {
		return nil
	}
	if d.Kind == guard.Redirect {
		return a.open(d.Target)
	}
	return a.open(a.nav.Current())
}

// open builds the screen for an admitted route
func (a *App) open(path string) tea.Cmd {
	a.route = path
	a.menu = nil
	a.wizard = nil
	a.modal = nil
	a.panel = nil
	a.dashboard = nil
	a.profile = nil
	a.data = panelData{}

	switch path {
	case guard.PathLogin:
		a.login = login.New()
		return a.login.Init()
	case guard.PathDashboard:
		a.dashboard = dashboard.New(a.state.User, nil, a.contentWidth(), a.contentHeight())
		return a.loadSummary()
	case guard.PathProfile:
		a.profile = profile.New(a.state.User)
		return nil
	}

	def, ok := panelDefs[path]
	if !ok {
		return nil
	}
	route, _ := guard.Lookup(path)
	a.panel = panel.New(route.Title, def.columns, def.actions...)
	a.resize()
	return a.loadPanel(path)
}

func (a *App) openMenu() tea.Cmd {
	var routes []guard.Route
	for _, r := range guard.Admitted(a.state) {
		if !r.Public {
			routes = append(routes, r)
		}
	}
	a.menu = menu.New(routes, a.route)
	return a.menu.Init()
}

func (a *App) openWizard(draft *forms.EventDraft) tea.Cmd {
	a.wizard = wizard.New(draft)
	a.wizard.SetWidth(a.width - 1)
	return a.wizard.Init()
}

func (a *App) openModal(m *modal) tea.Cmd {
	a.modal = m
	return m.form.Init()
}

// handleAction dispatches a panel key to a form or a request
func (a *App) handleAction(msg panel.ActionMsg) tea.Cmd {
	switch {
	case a.route == guard.PathEvents && msg.Key == keyNew:
		return a.openWizard(nil)
	case a.route == guard.PathEvents && msg.Key == keyEdit:
		return a.fetchEvent(msg.ID)
	case a.route == guard.PathStalls && msg.Key == keyNew:
		return a.openModal(a.stallModal())
	case a.route == guard.PathStalls && msg.Key == keyFeatures:
		if s, ok := a.data.items[msg.ID].(client.Stall); ok {
			return a.openModal(a.featuresModal(s))
		}
		return nil
	case a.route == guard.PathSchedules && msg.Key == keyNew:
		return a.openModal(a.scheduleModal())
	case a.route == guard.PathFAQs && msg.Key == keyNew:
		return a.openModal(a.faqModal(ordered[client.FAQ](a.data), -1))
	case a.route == guard.PathFAQs && msg.Key == keyEdit:
		faqs := ordered[client.FAQ](a.data)
		for i, f := range faqs {
			if f.ID == msg.ID {
				return a.openModal(a.faqModal(faqs, i))
			}
		}
		return nil
	case a.route == guard.PathUsers && msg.Key == keyNew:
		return a.openModal(a.adminModal())
	}

	def, ok := panelDefs[a.route]
	if !ok || def.run == nil {
		return nil
	}
	key, id := msg.Key, msg.ID
	return a.action(func(ctx context.Context) (string, error) {
		return def.run(ctx, a.client, key, id)
	})
}

// action runs fn under the current session and reports its notice on the
// panel that issued it
func (a *App) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	gen, route := a.gen, a.route
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		notice, err := fn(ctx)
		return actionDoneMsg{gen: gen, route: route, notice: notice, err: err}
	})
}

// sessionCmd runs fn with a context cancelled when the current session ends
func (a *App) sessionCmd(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, cancel := a.resolver.SessionContext(a.ctx)
	return func() tea.Msg {
		defer cancel()
		return fn(ctx)
	}
}

func (a *App) loadSummary() tea.Cmd {
	gen := a.gen
	scope := client.SummaryScope{Now: time.Now()}
	if a.state.User != nil && a.state.User.Role == auth.RoleSuperAdmin {
		scope.Exhibitors = true
		scope.Visitors = true
	}
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		summary, err := cache.Fetch(ctx, a.cache, summaryKey, func(ctx context.Context) (*client.Summary, error) {
			return a.client.Summary(ctx, scope)
		})
		return summaryLoadedMsg{gen: gen, summary: summary, err: err}
	})
}

func (a *App) loadPanel(route string) tea.Cmd {
	def, ok := panelDefs[route]
	if !ok {
		return nil
	}
	gen := a.gen
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		data, err := cache.Fetch(ctx, a.cache, panelKey(route), func(ctx context.Context) (panelData, error) {
			return def.load(ctx, a.client)
		})
		return panelLoadedMsg{gen: gen, route: route, data: data, err: err}
	})
}

func (a *App) fetchEvent(id string) tea.Cmd {
	gen := a.gen
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		ev, err := a.client.GetEvent(ctx, id)
		return eventFetchedMsg{gen: gen, event: ev, err: err}
	})
}

func (a *App) saveEvent(draft *forms.EventDraft) tea.Cmd {
	ev, err := draft.ToEvent()
	if err != nil {
		a.panel.SetError(err.Error())
		return nil
	}
	if ev.ID == "" {
		return a.action(func(ctx context.Context) (string, error) {
			_, err := a.client.CreateEvent(ctx, ev)
			return "Event created", err
		})
	}
	return a.action(func(ctx context.Context) (string, error) {
		_, err := a.client.UpdateEvent(ctx, ev.ID, ev)
		return "Event updated", err
	})
}

func (a *App) updateProfile(update client.ProfileUpdate) tea.Cmd {
	gen := a.gen
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		admin, err := a.client.UpdateProfile(ctx, update)
		if err != nil {
			return profileSavedMsg{gen: gen, err: err}
		}
		user, err := a.resolver.ReplaceUser(gen, *admin)
		return profileSavedMsg{gen: gen, user: user, err: err}
	})
}

func (a *App) changePassword(input client.ChangePasswordInput) tea.Cmd {
	gen := a.gen
	return a.sessionCmd(func(ctx context.Context) tea.Msg {
		message, err := a.client.ChangePassword(ctx, input)
		return passwordChangedMsg{gen: gen, message: message, err: err}
	})
}

func (a *App) submitLogin(creds forms.Credentials) tea.Cmd {
	return func() tea.Msg {
		_, err := a.resolver.Login(a.ctx, creds.Email, creds.Password)
		return loginResultMsg{err: err}
	}
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.login == nil {
			return a, nil
		}
		return a, a.login.SetError(loginError(msg.err))
	}
	a.cache.Purge()
	a.syncState()
	a.nav.Reset()
	target := a.returnTo
	a.returnTo = ""
	if target == "" || target == guard.PathLogin {
		target = guard.PathDashboard
	}
	return a, a.navigate(target)
}

func (a *App) logout() tea.Cmd {
	a.resolver.Logout()
	return a.sessionEnded("")
}

// checkSession notices a session that ended outside the console, such as a
// 401 answered to one of its requests
func (a *App) checkSession() (tea.Cmd, bool) {
	if a.state.Status != auth.StatusAuthenticated || a.resolver.Generation() == a.gen {
		return nil, false
	}
	if a.resolver.State().Status == auth.StatusAuthenticated {
		a.syncState()
		return nil, false
	}
	a.logger.Info().Msg("session ended by the server")
	return a.sessionEnded("Your session has expired. Please sign in again."), true
}

// sessionEnded drops everything tied to the old session and shows the login screen
func (a *App) sessionEnded(reason string) tea.Cmd {
	a.cache.Purge()
	current := a.route
	a.syncState()
	a.nav.Reset()
	a.returnTo = ""
	cmd := a.navigate(current)
	if reason != "" && a.login != nil {
		return tea.Batch(cmd, a.login.SetError(reason))
	}
	return cmd
}

func (a *App) syncState() {
	a.state = a.resolver.State()
	a.gen = a.resolver.Generation()
}

// stale reports whether a response belongs to an earlier session
func (a *App) stale(gen auth.Generation) bool {
	if gen != a.gen {
		a.logger.Debug().Uint64("gen", uint64(gen)).Uint64("current", uint64(a.gen)).Msg("dropping response from ended session")
		return true
	}
	return false
}

func (a *App) invalidate(route string) {
	a.cache.Clear(panelKey(route))
	a.cache.Clear(summaryKey)
}

func (a *App) logRequestError(what string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	a.logger.Warn().Err(err).Str("request", what).Msg("request failed")
}

func (a *App) resize() {
	if a.dashboard != nil {
		a.dashboard.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.panel != nil {
		a.panel.SetSize(a.contentWidth(), a.contentHeight())
	}
}

func panelKey(route string) string {
	return "panel:" + route
}

// loginError turns a login failure into what the login screen shows
func loginError(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return "Invalid email or password"
	}
	if errors.Is(err, auth.ErrUnknownRole) {
		return "This account has no console access"
	}
	return err.Error()
}

// Run starts the console and blocks until it exits
func Run(ctx context.Context, deps Deps, start string) error {
	p := tea.NewProgram(
		New(ctx, deps, start),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
