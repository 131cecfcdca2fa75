package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trove/internal/api"
	"trove/internal/session"
	"trove/internal/state"
)

// fakeService implements api.Service in-memory with call counters.
type fakeService struct {
	user       *api.User
	meErr      error
	meCalls    int
	loginUser  *api.User
	loginErr   error
	items      []api.Item
	listCalls  int
	adminDash  *api.AdminDashboard
	adminErr   error
	adminCalls int
	logoutErr  error
}

func (f *fakeService) Login(context.Context, api.Credentials) (*api.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeService) Register(context.Context, api.Registration) (*api.User, error) {
	return nil, nil
}

func (f *fakeService) Logout(context.Context) error { return f.logoutErr }
func (f *fakeService) Refresh(context.Context) error { return nil }

func (f *fakeService) Validate(context.Context) error { return nil }

func (f *fakeService) Me(context.Context) (*api.User, error) {
	f.meCalls++
	return f.user, f.meErr
}

func (f *fakeService) ListItems(context.Context, api.ItemQuery) ([]api.Item, error) {
	f.listCalls++
	return f.items, nil
}

func (f *fakeService) CreateItem(context.Context, api.NewItem) (string, error) { return "", nil }
func (f *fakeService) ItemByID(context.Context, int64) (*api.Item, error) { return nil, nil }

func (f *fakeService) Claims(context.Context) ([]api.Claim, error) { return nil, nil }
func (f *fakeService) ClaimItem(context.Context, int64) (string, error) { return "", nil }
func (f *fakeService) ClaimByID(context.Context, int64) (*api.Claim, error) {
	return nil, nil
}

func (f *fakeService) Messages(context.Context) ([]api.Message, error) { return nil, nil }
func (f *fakeService) SentMessages(context.Context) ([]api.Message, error) { return nil, nil }

func (f *fakeService) SendMessage(context.Context, api.OutgoingMessage) (string, error) {
	return "", nil
}

func (f *fakeService) Reply(context.Context, api.OutgoingMessage) (string, error) {
	return "", nil
}

func (f *fakeService) MessageByID(context.Context, int64) (*api.Message, error) {
	return nil, nil
}

func (f *fakeService) SubmitFeedback(context.Context, string) (string, error) { return "", nil }
func (f *fakeService) Dashboard(context.Context) (*api.Dashboard, error) { return nil, nil }

func (f *fakeService) AdminDashboard(context.Context) (*api.AdminDashboard, error) {
	f.adminCalls++
	return f.adminDash, f.adminErr
}

func (f *fakeService) DeleteItem(context.Context, int64) (string, error) { return "", nil }
func (f *fakeService) DeleteClaim(context.Context, int64) (string, error) { return "", nil }
func (f *fakeService) DeleteUser(context.Context, int64) (string, error) { return "", nil }
func (f *fakeService) DeleteFeedback(context.Context, int64) (string, error) { return "", nil }

var _ api.Service = (*fakeService)(nil)

type fakeFeed struct {
	kicks int
}

func (f *fakeFeed) Kick() { f.kicks++ }

func newTestModel(fake *fakeService) Model {
	m := New(Options{
		Client:   fake,
		Session:  session.NewCache(fake, time.Minute),
		Store:    &state.Store{},
		Feed:     &fakeFeed{},
		Debounce: 10 * time.Millisecond,
	})
	m.ready = true
	m.width = 100
	m.height = 40
	return m
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func lastToast(t *testing.T, m Model) toast {
	t.Helper()
	if len(m.toasts) == 0 {
		t.Fatalf("no toasts, want at least one")
	}
	return m.toasts[len(m.toasts)-1]
}

func TestLoginFailure_StaysOnLoginWithServerMessage(t *testing.T) {
	m := newTestModel(&fakeService{})

	m, cmd := apply(t, m, loginResultMsg{err: &api.StatusError{
		Code:    401,
		Message: "Invalid email or password",
	}})

	if m.route != RouteLogin {
		t.Fatalf("route = %d, want RouteLogin", m.route)
	}
	if cmd != nil {
		t.Fatalf("cmd = non-nil, want no navigation on failure")
	}
	if got := lastToast(t, m); got.level != toastError || got.text != "Invalid email or password" {
		t.Fatalf("toast = %+v, want error with server message", got)
	}
	if m.user != nil {
		t.Fatalf("user = %v, want nil after failed login", m.user)
	}
}

func TestLoginSuccess_RecordsIdentityAndDelaysRouting(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(fake)

	admin := &api.User{ID: 1, Name: "Root", Role: api.RoleAdmin}
	m, cmd := apply(t, m, loginResultMsg{user: admin})

	if cmd == nil {
		t.Fatalf("cmd = nil, want delayed navigation")
	}
	if m.route != RouteLogin {
		t.Fatalf("route = %d, want RouteLogin until the delay elapses", m.route)
	}
	if m.user == nil || !m.user.IsAdmin() {
		t.Fatalf("user = %v, want the admin identity", m.user)
	}
	if got := m.sess.Current(context.Background()); got == nil || got.ID != 1 {
		t.Fatalf("session identity = %v, want the login result", got)
	}
	if fake.meCalls != 0 {
		t.Fatalf("Me calls = %d, want 0 (login seeds the cache)", fake.meCalls)
	}
}

func TestIdentityProbe_RoutesSignedInUserHome(t *testing.T) {
	user := &api.User{ID: 2, Name: "Ada", Role: api.RoleUser}
	m := newTestModel(&fakeService{user: user})

	m, cmd := apply(t, m, identityMsg{user: user})
	if m.route != RouteHome {
		t.Fatalf("route = %d, want RouteHome for an existing session", m.route)
	}
	if cmd == nil {
		t.Fatalf("cmd = nil, want dashboard fetch on entry")
	}
}

func TestIdentityProbe_AnonymousStaysOnLogin(t *testing.T) {
	m := newTestModel(&fakeService{})

	m, _ = apply(t, m, identityMsg{user: nil})
	if m.route != RouteLogin {
		t.Fatalf("route = %d, want RouteLogin for anonymous", m.route)
	}
}

func TestActionError_RateLimitOnlyNotifies(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteBrowse
	m.user = &api.User{ID: 2}

	m, _ = apply(t, m, claimResultMsg{err: &api.StatusError{Code: 429}})

	if m.route != RouteBrowse {
		t.Fatalf("route = %d, want RouteBrowse (429 never navigates)", m.route)
	}
	if got := lastToast(t, m); got.level != toastWarning || got.text != "Slow down - too many requests" {
		t.Fatalf("toast = %+v, want the rate limit warning", got)
	}
	if m.user == nil {
		t.Fatalf("user cleared on rate limit, want kept")
	}
}

func TestActionError_ExpiredSessionForcesLogin(t *testing.T) {
	fake := &fakeService{}
	m := newTestModel(fake)
	m.route = RouteBrowse
	m.user = &api.User{ID: 2}
	m.sess.Set(m.user)

	m, _ = apply(t, m, claimResultMsg{err: api.ErrSessionExpired})

	if m.route != RouteLogin {
		t.Fatalf("route = %d, want RouteLogin after session expiry", m.route)
	}
	if m.user != nil {
		t.Fatalf("user = %v, want nil", m.user)
	}

	// The cached identity must be gone too: the next probe refetches.
	if got := m.sess.Current(context.Background()); got != nil {
		t.Fatalf("session identity = %v, want nil after invalidation", got)
	}
	if fake.meCalls != 1 {
		t.Fatalf("Me calls = %d, want a refetch after invalidation", fake.meCalls)
	}
}

func TestLogout_FailureKeepsSession(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteHome
	m.user = &api.User{ID: 2, Name: "Ada"}

	m, _ = apply(t, m, logoutMsg{err: &api.StatusError{Code: 500, Message: "boom"}})

	if m.route != RouteHome {
		t.Fatalf("route = %d, want RouteHome kept on failed sign out", m.route)
	}
	if m.user == nil {
		t.Fatalf("user cleared on failed sign out, want kept")
	}
}

func TestLogout_SuccessReturnsToLogin(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteHome
	m.user = &api.User{ID: 2, Name: "Ada"}

	m, _ = apply(t, m, logoutMsg{})

	if m.route != RouteLogin {
		t.Fatalf("route = %d, want RouteLogin", m.route)
	}
	if m.user != nil {
		t.Fatalf("user = %v, want nil", m.user)
	}
}

func TestToasts_ExpireOnTick(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.pushToast(toastInfo, "hello")
	if len(m.toasts) != 1 {
		t.Fatalf("toasts = %d, want 1", len(m.toasts))
	}

	m, _ = apply(t, m, uiTickMsg(time.Now().Add(toastLifetime+time.Second)))
	if len(m.toasts) != 0 {
		t.Fatalf("toasts = %d after expiry, want 0", len(m.toasts))
	}
}

func TestRegisterEntry_FocusesNameField(t *testing.T) {
	m := newTestModel(&fakeService{})
	m.route = RouteLogin

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	if m.route != RouteRegister {
		t.Fatalf("route = %d, want RouteRegister", m.route)
	}
	if !m.register.inputs[regFieldName].Focused() {
		t.Fatalf("name field not focused on register entry")
	}
}
