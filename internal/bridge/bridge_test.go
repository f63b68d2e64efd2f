package bridge_test

import (
	"sync"
	"testing"
	"time"

	"github.com/deskbridge/deskbridge/internal/bridge"
	"github.com/deskbridge/deskbridge/internal/errors"
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store/memory"
)

// --- Mock implementations ------------------------------------------------

// recorder captures every signal sent on a bus, host side of the channel.
type recorder struct {
	mu   sync.Mutex
	sent []signal.Signal
}

func recordAll(bus *signal.Bus) *recorder {
	r := &recorder{}
	bus.Subscribe(signal.Any, func(s signal.Signal) {
		r.mu.Lock()
		r.sent = append(r.sent, s)
		r.mu.Unlock()
	})
	return r
}

// named returns the captured signals with the given name.
func (r *recorder) named(name string) []signal.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []signal.Signal
	for _, s := range r.sent {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

func (r *recorder) count(name string) int { return len(r.named(name)) }

type mockSession struct {
	mu          sync.Mutex
	user        bridge.User
	loggedIn    bool
	token       string
	logoutCalls int
}

func (m *mockSession) CurrentUser() (bridge.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.loggedIn
}

func (m *mockSession) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *mockSession) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutCalls++
}

func (m *mockSession) logouts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutCalls
}

// fixture wires a bridge against in-process buses, a memory store, and
// mock collaborators.
type fixture struct {
	transport *signal.Bus
	local     *signal.Bus
	store     *memory.Store
	session   *mockSession
	bridge    *bridge.Bridge
	host      *recorder

	mu   sync.Mutex
	navs []string
}

func selectors() bridge.Selectors {
	return bridge.Selectors{
		NotificationsOpen: memory.NotificationsOpen,
		EditorLoaded:      memory.EditorLoaded,
		UnseenCount:       memory.UnseenCount,
		CanManageOptions:  memory.CanManageOptions,
	}
}

func newFixture(t *testing.T, storeOpts []memory.Option, opts ...bridge.Option) *fixture {
	t.Helper()

	f := &fixture{
		transport: signal.NewBus(),
		local:     signal.NewBus(),
		store:     memory.New(storeOpts...),
		session:   &mockSession{loggedIn: true, user: bridge.User{ID: 1, Username: "wapuu"}, token: "oauth-token"},
	}
	f.host = recordAll(f.transport)

	f.bridge = bridge.New(f.transport, f.local, f.store, selectors(), f.recordNav, f.session, opts...)
	t.Cleanup(f.bridge.Stop)
	return f
}

func startFixture(t *testing.T, storeOpts []memory.Option, opts ...bridge.Option) *fixture {
	t.Helper()

	f := newFixture(t, storeOpts, opts...)
	if err := f.bridge.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return f
}

func (f *fixture) recordNav(path string) {
	f.mu.Lock()
	f.navs = append(f.navs, path)
	f.mu.Unlock()
}

func (f *fixture) navigations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.navs))
	copy(out, f.navs)
	return out
}

// waitFor polls until cond holds or the deadline passes. Timer-driven
// paths (response timeouts) are the only asynchronous ones in these tests.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

// --- Lifecycle -----------------------------------------------------------

func TestNew_PanicsOnNilCollaborators(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New should panic when the transport is nil")
		}
	}()
	bridge.New(nil, signal.NewBus(), memory.New(), selectors(), func(string) {}, &mockSession{})
}

func TestNew_PanicsOnMissingSelector(t *testing.T) {
	sel := selectors()
	sel.EditorLoaded = nil

	defer func() {
		if recover() == nil {
			t.Error("New should panic when a selector is missing")
		}
	}()
	bridge.New(signal.NewBus(), signal.NewBus(), memory.New(), sel, func(string) {}, &mockSession{})
}

func TestStart_Twice(t *testing.T) {
	f := startFixture(t, nil)

	if err := f.bridge.Start(); !errors.Is(err, errors.ErrAlreadyStarted) {
		t.Errorf("Second Start should return ErrAlreadyStarted, got %v", err)
	}
}

func TestStart_SendsLoginStatusAndAuth(t *testing.T) {
	f := startFixture(t, nil)

	status := f.host.named(signal.UserLoginStatus)
	if len(status) != 1 {
		t.Fatalf("Expected 1 user-login-status send, got %d", len(status))
	}
	if status[0].Args[0] != true {
		t.Errorf("Expected logged-in true, got %v", status[0].Args[0])
	}

	auth := f.host.named(signal.UserAuth)
	if len(auth) != 1 {
		t.Fatalf("Expected 1 user-auth send, got %d", len(auth))
	}
	user, ok := auth[0].Args[0].(bridge.User)
	if !ok || user.Username != "wapuu" {
		t.Errorf("Expected the current user in user-auth, got %v", auth[0].Args[0])
	}
	if auth[0].Args[1] != "oauth-token" {
		t.Errorf("Expected the oauth token in user-auth, got %v", auth[0].Args[1])
	}
}

func TestStart_LoggedOut(t *testing.T) {
	f := newFixture(t, nil)
	f.session.loggedIn = false
	if err := f.bridge.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := f.host.named(signal.UserLoginStatus)
	if len(status) != 1 || status[0].Args[0] != false {
		t.Errorf("Expected logged-in false, got %v", status)
	}
}

func TestStop_RetiresHandlers(t *testing.T) {
	f := startFixture(t, nil)
	f.bridge.Stop()

	f.transport.Send(signal.ShowReader)
	if len(f.navigations()) != 0 {
		t.Error("Handlers should be retired after Stop")
	}

	// Stop twice is safe.
	f.bridge.Stop()
}

func TestSelectedSite_SingleWriter(t *testing.T) {
	f := startFixture(t, nil)

	if f.bridge.SelectedSite() != nil {
		t.Fatal("No site should be selected initially")
	}

	site := &bridge.SiteRef{ID: 42, Slug: "example.wordpress.com", URL: "https://example.wordpress.com"}
	f.bridge.SetSelectedSite(site)
	if got := f.bridge.SelectedSite(); got == nil || got.ID != 42 {
		t.Errorf("Expected selected site 42, got %v", got)
	}

	f.bridge.SetSelectedSite(nil)
	if f.bridge.SelectedSite() != nil {
		t.Error("Selection should be clearable")
	}
}
