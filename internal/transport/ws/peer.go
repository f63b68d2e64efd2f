package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
)

// Peer is the host side of one accepted channel connection.
type Peer struct {
	log  *logging.Logger
	bus  *signal.Bus
	out  chan frame
	conn *websocket.Conn

	closeOnce sync.Once
	done      chan struct{}
}

// Handler returns an http.HandlerFunc that upgrades each request to a
// websocket and hands the resulting Peer to accept. The Peer's pumps run
// until the connection drops; accept must not block for the connection's
// lifetime.
func Handler(log *logging.Logger, accept func(*Peer)) http.HandlerFunc {
	if log == nil {
		log = logging.NopLogger()
	}
	log = log.WithComponent("transport")

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("channel upgrade failed", "error", err)
			return
		}

		p := &Peer{
			log:  log,
			bus:  signal.NewBus(),
			out:  make(chan frame, outboundBuffer),
			conn: conn,
			done: make(chan struct{}),
		}
		accept(p)

		go p.writeLoop()
		p.readLoop()
		p.Close()
	}
}

func (p *Peer) readLoop() {
	for {
		var f frame
		if err := p.conn.ReadJSON(&f); err != nil {
			p.log.Debug("peer read failed", "error", err)
			return
		}
		p.bus.Send(f.Name, f.signalArgs()...)
	}
}

func (p *Peer) writeLoop() {
	for {
		select {
		case <-p.done:
			return
		case f := <-p.out:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(f); err != nil {
				p.log.Debug("peer write failed", "signal", f.Name, "error", err)
			}
		}
	}
}

// Close tears the connection down. Safe to call multiple times.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		_ = p.conn.Close()
	})
}

// Done is closed when the connection has shut down.
func (p *Peer) Done() <-chan struct{} { return p.done }

// Remote returns the client's network address.
func (p *Peer) Remote() string { return p.conn.RemoteAddr().String() }

// Send queues a signal for delivery to the client. It never blocks: when
// the outbound buffer is full or the peer is gone the signal is dropped.
func (p *Peer) Send(name string, args ...any) {
	select {
	case <-p.done:
		p.log.Debug("dropping signal, peer closed", "signal", name)
	case p.out <- newFrame(name, args):
	default:
		p.log.Debug("outbound buffer full, dropping signal", "signal", name)
	}
}

// Subscribe registers a handler for signals arriving from the client.
func (p *Peer) Subscribe(name string, h signal.Handler) (cancel func()) {
	return p.bus.Subscribe(name, h)
}

// SubscribeOnce registers a one-shot handler for signals from the client.
func (p *Peer) SubscribeOnce(name string, h signal.Handler) (cancel func()) {
	return p.bus.SubscribeOnce(name, h)
}
