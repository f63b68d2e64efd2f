package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deskbridge/deskbridge/internal/errors"
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
)

// Client is the client side of the channel transport. It dials the host's
// channel endpoint, redials on failure, and dispatches inbound frames to
// subscribers. Subscriptions survive reconnects.
type Client struct {
	url    string
	origin string
	log    *logging.Logger
	bus    *signal.Bus
	out    chan frame

	mu    sync.RWMutex
	conn  *websocket.Conn
	ready chan struct{}

	redial time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRedialWait sets the backoff between failed dial attempts.
func WithRedialWait(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.redial = d
		}
	}
}

// NewClient creates a Client for the given websocket URL. Run must be
// called to establish the connection.
func NewClient(url, origin string, log *logging.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = logging.NopLogger()
	}
	c := &Client{
		url:    url,
		origin: origin,
		log:    log.WithComponent("transport"),
		bus:    signal.NewBus(),
		out:    make(chan frame, outboundBuffer),
		ready:  make(chan struct{}),
		redial: redialWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run dials and serves the connection until ctx is cancelled, redialling
// after failures. It blocks; run it on its own goroutine.
func (c *Client) Run(ctx context.Context) {
	go c.writeLoop(ctx)

	d := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := http.Header{}
	if c.origin != "" {
		header.Set("Origin", c.origin)
	}

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := d.DialContext(ctx, c.url, header)
		if err != nil {
			c.log.Warn("channel dial failed", "url", c.url, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.redial):
			}
			continue
		}

		c.setConn(conn)
		c.log.Info("channel connected", "url", c.url)
		c.readLoop(conn)
		c.setConn(nil)
		_ = conn.Close()

		c.log.Info("channel disconnected, redialling", "url", c.url)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.redial):
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.log.Warn("channel read failed", "error", err)
			return
		}
		c.bus.Send(f.Name, f.signalArgs()...)
	}
}

// writeLoop drains the outbound buffer. A dequeued frame is held until a
// connection is available rather than dropped, so signals queued before
// the first dial completes still reach the host once it does.
func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-c.out:
			conn := c.awaitConn(ctx)
			if conn == nil {
				c.log.Debug("discarding outbound signal", "signal", f.Name, "error", errors.ErrTransportClosed)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				c.log.Debug("channel write failed", "signal", f.Name, "error", err)
			}
		}
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	if conn != nil {
		close(c.ready)
	} else {
		c.ready = make(chan struct{})
	}
	c.mu.Unlock()
}

// awaitConn blocks until a connection is established or ctx is cancelled,
// in which case it returns nil.
func (c *Client) awaitConn(ctx context.Context) *websocket.Conn {
	for {
		c.mu.RLock()
		conn, ready := c.conn, c.ready
		c.mu.RUnlock()
		if conn != nil {
			return conn
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ready:
		}
	}
}

// Send queues a signal for delivery to the host. It never blocks: when the
// outbound buffer is full the signal is dropped.
func (c *Client) Send(name string, args ...any) {
	select {
	case c.out <- newFrame(name, args):
	default:
		c.log.Debug("outbound buffer full, dropping signal", "signal", name)
	}
}

// Subscribe registers a handler for inbound signals of the given name.
func (c *Client) Subscribe(name string, h signal.Handler) (cancel func()) {
	return c.bus.Subscribe(name, h)
}

// SubscribeOnce registers a one-shot handler for inbound signals.
func (c *Client) SubscribeOnce(name string, h signal.Handler) (cancel func()) {
	return c.bus.SubscribeOnce(name, h)
}
