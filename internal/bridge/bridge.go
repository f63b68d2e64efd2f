package bridge

import (
	"sync"

	"github.com/deskbridge/deskbridge/internal/errors"
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store"
)

// Bridge is the client side of the host↔client command/request channel.
type Bridge struct {
	transport signal.Duplex
	local     signal.Duplex
	store     store.Store
	sel       Selectors
	navigate  NavigateFunc
	session   Session

	emit       *emitter
	correlator *correlator
	notifier   *notifier
	log        *logging.Logger

	mu       sync.RWMutex
	selected *SiteRef
	cancels  []func()
	started  bool
}

// New creates a Bridge with injected collaborators.
//
// All collaborators must be non-nil, including every Selectors field.
// Passing nil panics early to surface wiring bugs immediately.
func New(transport signal.Duplex, local signal.Duplex, st store.Store, sel Selectors, navigate NavigateFunc, session Session, opts ...Option) *Bridge {
	if transport == nil {
		panic("bridge: transport must not be nil")
	}
	if local == nil {
		panic("bridge: local signal surface must not be nil")
	}
	if st == nil {
		panic("bridge: store must not be nil")
	}
	if sel.NotificationsOpen == nil || sel.EditorLoaded == nil || sel.UnseenCount == nil || sel.CanManageOptions == nil {
		panic("bridge: all selectors must be set")
	}
	if navigate == nil {
		panic("bridge: navigate func must not be nil")
	}
	if session == nil {
		panic("bridge: session must not be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NopLogger()
	}
	if cfg.online == nil {
		cfg.online = func() bool { return true }
	}

	b := &Bridge{
		transport: transport,
		local:     local,
		store:     st,
		sel:       sel,
		navigate:  navigate,
		session:   session,
		log:       cfg.logger.WithComponent("bridge"),
	}
	b.emit = newEmitter(transport, session, cfg)
	b.correlator = newCorrelator(local, b.emit, cfg)
	b.notifier = newNotifier(st, sel, b.emit, cfg.logger)
	return b
}

// Start registers the transport handlers, the local-surface handlers, and
// the store subscription, then performs the startup pushes: the login
// status pair and the cached unseen count. Calling Start on a running
// bridge is an error; handler registration happens exactly once.
func (b *Bridge) Start() error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return errors.ErrAlreadyStarted
	}
	b.started = true
	b.mu.Unlock()

	b.log.Info("starting bridge")

	cancels := b.registerTransportHandlers()
	cancels = append(cancels, b.registerLocalHandlers()...)

	b.mu.Lock()
	b.cancels = cancels
	b.mu.Unlock()

	b.notifier.start()

	// Initial pushes set the host's app state.
	b.emit.sendBootUnseenCount()
	b.emit.sendLoginStatus()

	return nil
}

// Stop retires every registration and outstanding correlated request.
// It is safe to call multiple times.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	b.started = false
	cancels := b.cancels
	b.cancels = nil
	b.mu.Unlock()

	b.log.Info("stopping bridge")

	for _, cancel := range cancels {
		cancel()
	}
	b.notifier.stop()
	b.correlator.stop()
}

// SetSelectedSite records the currently active site. The host (or internal
// navigation) is the single writer; command handlers read it to scope
// views.
func (b *Bridge) SetSelectedSite(site *SiteRef) {
	b.mu.Lock()
	b.selected = site
	b.mu.Unlock()
}

// SelectedSite returns the currently active site, or nil.
func (b *Bridge) SelectedSite() *SiteRef {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selected
}

// Outstanding reports the number of unanswered correlated requests.
func (b *Bridge) Outstanding() int {
	return b.correlator.outstanding()
}

// navigateTo closes the notifications panel, then changes the visible view.
func (b *Bridge) navigateTo(path string) {
	b.closeNotificationsPanel()
	b.navigate(path)
}

// closeNotificationsPanel closes the panel if it is open; no-op otherwise.
func (b *Bridge) closeNotificationsPanel() {
	if b.sel.NotificationsOpen(b.store.State()) {
		b.store.Dispatch(store.ToggleNotificationsPanel{})
	}
}
