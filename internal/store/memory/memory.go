// Package memory provides a reducer-driven in-memory implementation of the
// store contracts. It backs the CLI's reference deployment and the
// integration tests; a production embedding would substitute the real
// application store.
package memory

import (
	"sync"

	"github.com/deskbridge/deskbridge/internal/store"
)

// Site is the slice of site data the bridge's collaborators care about.
type Site struct {
	ID   int64
	Slug string
	URL  string
}

// AppState is the concrete state snapshot produced by this store. It holds
// only the slices the bridge touches.
type AppState struct {
	Path              string
	NotificationsOpen bool
	EditorLoaded      bool
	UnseenCount       int
	Sites             map[int64]Site
	Requesting        map[int64]bool
	Options           map[int64]map[string]bool
	ManageOptions     map[int64]bool
}

func (s AppState) clone() AppState {
	out := s
	out.Sites = make(map[int64]Site, len(s.Sites))
	for id, site := range s.Sites {
		out.Sites[id] = site
	}
	out.Requesting = make(map[int64]bool, len(s.Requesting))
	for id, v := range s.Requesting {
		out.Requesting[id] = v
	}
	out.Options = make(map[int64]map[string]bool, len(s.Options))
	for id, opts := range s.Options {
		m := make(map[string]bool, len(opts))
		for k, v := range opts {
			m[k] = v
		}
		out.Options[id] = m
	}
	out.ManageOptions = make(map[int64]bool, len(s.ManageOptions))
	for id, v := range s.ManageOptions {
		out.ManageOptions[id] = v
	}
	return out
}

// Store is an in-memory store.Store implementation.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     AppState
	listeners map[uint64]func()
	nextID    uint64

	afterDispatch func(store.Action)
}

// Option configures a Store.
type Option func(*Store)

// WithAfterDispatch registers a hook invoked after every action has been
// reduced, before listeners are notified. The CLI uses this to emulate the
// out-of-scope subsystems that complete site requests asynchronously.
func WithAfterDispatch(fn func(store.Action)) Option {
	return func(s *Store) { s.afterDispatch = fn }
}

// WithSites seeds the store with site data.
func WithSites(sites ...Site) Option {
	return func(s *Store) {
		for _, site := range sites {
			s.state.Sites[site.ID] = site
		}
	}
}

// WithManageOptions seeds per-site manage_options capabilities of the
// current user.
func WithManageOptions(caps map[int64]bool) Option {
	return func(s *Store) {
		for id, v := range caps {
			s.state.ManageOptions[id] = v
		}
	}
}

// WithEditorLoaded seeds the editor-ready flag.
func WithEditorLoaded(loaded bool) Option {
	return func(s *Store) { s.state.EditorLoaded = loaded }
}

// WithUnseenCount seeds the unseen-notification count.
func WithUnseenCount(n int) Option {
	return func(s *Store) { s.state.UnseenCount = n }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		state: AppState{
			Sites:         make(map[int64]Site),
			Requesting:    make(map[int64]bool),
			Options:       make(map[int64]map[string]bool),
			ManageOptions: make(map[int64]bool),
		},
		listeners: make(map[uint64]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() store.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch reduces the action into state and notifies listeners.
func (s *Store) Dispatch(action store.Action) {
	s.mu.Lock()
	s.reduce(action)
	s.mu.Unlock()

	if s.afterDispatch != nil {
		s.afterDispatch(action)
	}
	s.notify()
}

// Subscribe registers a change listener.
func (s *Store) Subscribe(listener func()) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

// reduce applies an action. Callers hold the write lock.
func (s *Store) reduce(action store.Action) {
	switch a := action.(type) {
	case store.ToggleNotificationsPanel:
		s.state.NotificationsOpen = !s.state.NotificationsOpen
	case store.NavigateTo:
		s.state.Path = a.Path
	case store.RequestSiteData:
		s.state.Requesting[a.SiteID] = true
	case store.SiteReceived:
		s.state.Requesting[a.SiteID] = false
		s.state.Sites[a.SiteID] = Site{ID: a.SiteID, Slug: a.Slug, URL: a.URL}
	case store.SiteRequestFailed:
		s.state.Requesting[a.SiteID] = false
	case store.ActivateSiteOption:
		// Activation is in flight; capability state changes only on the
		// completion action.
	case store.SiteOptionActivated:
		opts := s.state.Options[a.SiteID]
		if opts == nil {
			opts = make(map[string]bool)
			s.state.Options[a.SiteID] = opts
		}
		opts[a.Option] = true
	case store.SiteOptionFailed:
		// Nothing to record; the failure travels in the completion signal.
	case store.SetEditorLoaded:
		s.state.EditorLoaded = a.Loaded
	case store.SetUnseenCount:
		s.state.UnseenCount = a.Count
	}
}
