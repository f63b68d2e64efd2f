package bridge

import (
	"time"

	"github.com/google/uuid"

	"github.com/deskbridge/deskbridge/internal/logging"
)

// Option configures a Bridge.
type Option func(*config)

type config struct {
	responseTimeout time.Duration
	requestIDs      bool
	newRequestID    func() string
	online          OnlineFunc
	cachedCount     CachedCountFunc
	logger          *logging.Logger
}

// WithResponseTimeout bounds how long the correlator waits for a completion
// signal before answering the host with a timeout error. Zero (the default)
// waits forever, matching the historical behavior.
func WithResponseTimeout(d time.Duration) Option {
	return func(c *config) {
		c.responseTimeout = d
	}
}

// WithRequestIDs adds a generated request id as a second correlation
// dimension, disambiguating concurrent requests for the same site. Off by
// default: the site id alone correlates, and a newer request for a site
// displaces the outstanding one.
func WithRequestIDs() Option {
	return func(c *config) {
		c.requestIDs = true
	}
}

// WithOnlineCheck sets the reachability probe guarding unseen-count pushes.
// The default reports always online.
func WithOnlineCheck(fn OnlineFunc) Option {
	return func(c *config) {
		c.online = fn
	}
}

// WithCachedCount sets the provider of the cached unseen-notification count
// pushed once at startup. Without one the boot push is skipped.
func WithCachedCount(fn CachedCountFunc) Option {
	return func(c *config) {
		c.cachedCount = fn
	}
}

// WithLogger sets the logger for the bridge.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func defaultConfig() *config {
	return &config{
		newRequestID: uuid.NewString,
		online:       func() bool { return true },
		cachedCount:  func() (int, bool) { return 0, false },
		logger:       logging.NopLogger(),
	}
}
