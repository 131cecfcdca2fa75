package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/prefs"
	"trove/internal/session"
	"trove/internal/state"
)

// Route represents the current active view.
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteHome
	RouteBrowse
	RouteNewItem
	RouteAdmin
)

// Refresher triggers an immediate item feed refresh.
type Refresher interface {
	Kick()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    api.Service
	Session   *session.Cache
	Store     *state.Store
	Feed      Refresher
	Debounce  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    api.Service
	sess      *session.Cache
	store     *state.Store
	feed      Refresher
	debounce  time.Duration
	prefsPath string
	keys      keyMap

	// UI state
	theme    Theme
	route    Route
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	toasts   []toast

	// Identity
	user *api.User

	// Per-view state
	login    loginState
	register registerState
	home     homeState
	browse   browseState
	report   reportState
	admin    adminState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		sess:      opts.Session,
		store:     opts.Store,
		feed:      opts.Feed,
		debounce:  debounce,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		route:     RouteLogin,
		login:     newLoginState(),
		register:  newRegisterState(),
		browse:    browseState{search: newBrowseSearch()},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		uiTickCmd(),
		identityCmd(m.ctx, m.sess),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case uiTickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.browse.snapshot = state.Snapshot(msg)
		m.browse.syncSelection()
		return m, nil

	case identityMsg:
		return m.handleIdentity(msg)

	case navigateMsg:
		return m.navigate(msg.route)

	case toastNoteMsg:
		m.pushToast(msg.level, msg.text)
		return m, nil

	case logoutMsg:
		return m.handleLogout(msg)

	case debounceFiredMsg:
		return m.handleDebounceFired(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case dashboardMsg:
		return m.handleDashboard(msg)

	case feedbackResultMsg:
		return m.handleFeedbackResult(msg)

	case replyStartedMsg:
		return m.handleReplyStarted(msg)

	case replyResultMsg:
		return m.handleReplyResult(msg)

	case claimResultMsg:
		return m.handleClaimResult(msg)

	case messageResultMsg:
		return m.handleMessageResult(msg)

	case createItemResultMsg:
		return m.handleCreateItemResult(msg)

	case adminDashboardMsg:
		return m.handleAdminDashboard(msg)

	case adminDeniedMsg:
		return m.handleAdminDenied(msg)

	case deleteResultMsg:
		return m.handleDeleteResult(msg)
	}

	// Forward remaining messages (cursor blinks, spinner ticks) to the
	// active input owners.
	return m.updateActiveInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	if m.route != RouteLogin && m.route != RouteRegister {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
	}
	b.WriteString(m.renderToasts())

	switch m.route {
	case RouteLogin:
		b.WriteString(m.renderLogin())
	case RouteRegister:
		b.WriteString(m.renderRegister())
	case RouteHome:
		b.WriteString(m.renderHome())
	case RouteBrowse:
		b.WriteString(m.renderBrowse())
	case RouteNewItem:
		b.WriteString(m.renderReport())
	case RouteAdmin:
		b.WriteString(m.renderAdmin())
	}
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Modal captures all input while open
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Text inputs get first pick while focused
	if m.editing() {
		return m.handleViewKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "H":
		if m.user != nil {
			return m.navigate(RouteHome)
		}
	case "B":
		if m.user != nil {
			return m.navigate(RouteBrowse)
		}
	case "R":
		if m.user != nil {
			return m.navigate(RouteNewItem)
		}
	case "A":
		if m.user != nil {
			return m.navigate(RouteAdmin)
		}
	case "Q":
		if m.user != nil {
			return m, logoutCmd(m.ctx, m.client)
		}
	}

	return m.handleViewKey(msg)
}

// handleViewKey dispatches a key to the active view.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.route {
	case RouteLogin:
		return m.handleLoginKey(msg)
	case RouteRegister:
		return m.handleRegisterKey(msg)
	case RouteHome:
		return m.handleHomeKey(msg)
	case RouteBrowse:
		return m.handleBrowseKey(msg)
	case RouteNewItem:
		return m.handleReportKey(msg)
	case RouteAdmin:
		return m.handleAdminKey(msg)
	}
	return m, nil
}

// editing reports whether the active view holds keyboard focus in a
// text input, suppressing global single-letter bindings.
func (m Model) editing() bool {
	switch m.route {
	case RouteLogin, RouteRegister, RouteNewItem:
		return true
	case RouteBrowse:
		return m.browse.searching
	case RouteHome:
		return m.home.feedbackFocused
	}
	return false
}

// navigate switches the active view and fires its entry command.
func (m Model) navigate(route Route) (tea.Model, tea.Cmd) {
	m.route = route
	m.modal = nil
	m.showHelp = false

	switch route {
	case RouteLogin:
		m.login = newLoginState()
		return m, m.login.email.Focus()
	case RouteRegister:
		m.register = newRegisterState()
		return m, m.register.inputs[regFieldName].Focus()
	case RouteHome:
		m.home = newHomeState()
		return m, fetchDashboardCmd(m.ctx, m.client)
	case RouteBrowse:
		m.browse.searching = false
		if m.feed != nil {
			m.feed.Kick()
		}
		return m, fetchSnapshotCmd(m.store)
	case RouteNewItem:
		m.report = newReportState()
		return m, m.report.name.Focus()
	case RouteAdmin:
		m.admin = newAdminState()
		return m, adminGateCmd(m.ctx, m.sess, m.client)
	}
	return m, nil
}

// handleTick prunes toasts and refreshes view data once per second.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.pruneToasts(now)

	cmds := []tea.Cmd{uiTickCmd()}
	if m.route == RouteBrowse && m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// handleIdentity handles the startup identity probe. Absence of a
// session is a normal state, not an error.
func (m Model) handleIdentity(msg identityMsg) (tea.Model, tea.Cmd) {
	m.user = msg.user
	if m.user == nil {
		if m.route != RouteLogin && m.route != RouteRegister {
			return m.navigate(RouteLogin)
		}
		return m, m.login.email.Focus()
	}
	if m.route == RouteLogin {
		return m.navigate(RouteHome)
	}
	return m, nil
}

// handleLogout processes the sign-out result. Failure leaves the
// session untouched.
func (m Model) handleLogout(msg logoutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.pushToast(toastError, serverOr(msg.err, "Sign out failed"))
		return m, nil
	}
	m.sess.Invalidate()
	m.user = nil
	m.pushToast(toastSuccess, "Signed out")
	return m.navigate(RouteLogin)
}

// updateActiveInputs forwards non-key messages to whichever view owns
// focused inputs so cursors keep blinking.
func (m Model) updateActiveInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case RouteLogin:
		m.login, cmd = m.login.update(msg)
	case RouteRegister:
		m.register, cmd = m.register.update(msg)
	case RouteNewItem:
		m.report, cmd = m.report.update(msg)
	case RouteBrowse:
		if m.browse.searching {
			m.browse.search, cmd = m.browse.search.Update(msg)
		}
	case RouteHome:
		if m.home.feedbackFocused {
			m.home.feedback, cmd = m.home.feedback.Update(msg)
		}
	}
	if m.modal != nil {
		var modalCmd tea.Cmd
		var closed bool
		m.modal, modalCmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		cmd = tea.Batch(cmd, modalCmd)
	}
	return m, cmd
}

// Messages

type uiTickMsg time.Time

type snapshotMsg state.Snapshot

type identityMsg struct {
	user *api.User
}

type navigateMsg struct {
	route Route
}

type toastNoteMsg struct {
	level toastLevel
	text  string
}

type logoutMsg struct {
	err error
}

// Commands

func uiTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func identityCmd(ctx context.Context, sess *session.Cache) tea.Cmd {
	return func() tea.Msg {
		return identityMsg{user: sess.Current(ctx)}
	}
}

func logoutCmd(ctx context.Context, client api.Service) tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: client.Logout(ctx)}
	}
}

// navigateAfterCmd schedules a route change after a delay. Login and
// registration both pause briefly so the session cookie settles before
// the next view fetches with it.
func navigateAfterCmd(d time.Duration, route Route) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return navigateMsg{route: route}
	})
}

// serverOr returns the server-provided error message or a fallback.
func serverOr(err error, fallback string) string {
	return api.ServerMessage(err, fallback)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
