package ws_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/transport/ws"
)

// startHost runs a host-side channel endpoint and returns its ws:// URL
// plus a channel yielding accepted peers.
func startHost(t *testing.T) (string, chan *ws.Peer) {
	t.Helper()

	peers := make(chan *ws.Peer, 1)
	srv := httptest.NewServer(ws.Handler(nil, func(p *ws.Peer) {
		peers <- p
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), peers
}

func startClient(t *testing.T, url string) *ws.Client {
	t.Helper()

	client := ws.NewClient(url, "https://client.test", nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go client.Run(ctx)
	return client
}

func TestClientToHost(t *testing.T) {
	url, peers := startHost(t)
	client := startClient(t, url)

	var peer *ws.Peer
	select {
	case peer = <-peers:
	case <-time.After(5 * time.Second):
		t.Fatal("client never connected")
	}

	var mu sync.Mutex
	var got []signal.Signal
	peer.Subscribe(signal.ViewPostClicked, func(s signal.Signal) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	client.Send(signal.ViewPostClicked, "https://example.wordpress.com/post/1")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 5*time.Second, 10*time.Millisecond, "peer should receive the signal")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, signal.ViewPostClicked, got[0].Name)
	require.Len(t, got[0].Args, 1)
	assert.Equal(t, "https://example.wordpress.com/post/1", got[0].Args[0])
}

func TestHostToClient(t *testing.T) {
	url, peers := startHost(t)
	client := startClient(t, url)

	var mu sync.Mutex
	var got []signal.Signal
	client.Subscribe(signal.Navigate, func(s signal.Signal) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	peer := <-peers
	peer.Send(signal.Navigate, "/read")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 5*time.Second, 10*time.Millisecond, "client should receive the signal")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got[0].Args, 1)
	assert.Equal(t, "/read", got[0].Args[0])
}

func TestNumericArgsArriveAsFloat64(t *testing.T) {
	// JSON decoding turns numbers into float64; inbound handlers must
	// coerce rather than assume int64.
	url, peers := startHost(t)
	client := startClient(t, url)

	var mu sync.Mutex
	var args []any
	client.Subscribe(signal.RequestSite, func(s signal.Signal) {
		mu.Lock()
		args = s.Args
		mu.Unlock()
	})

	peer := <-peers
	peer.Send(signal.RequestSite, int64(42))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(args) == 1
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, float64(42), args[0])
}

func TestSubscribeOnce(t *testing.T) {
	url, peers := startHost(t)
	client := startClient(t, url)

	var mu sync.Mutex
	count := 0
	client.SubscribeOnce(signal.Signout, func(s signal.Signal) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	peer := <-peers
	peer.Send(signal.Signout)
	peer.Send(signal.Signout)
	// A third, differently named signal flushes the pipeline so we know
	// both signout frames have been dispatched.
	done := make(chan struct{})
	client.SubscribeOnce(signal.ShowHelp, func(signal.Signal) { close(done) })
	peer.Send(signal.ShowHelp)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("flush signal never arrived")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "one-shot handler must fire exactly once")
}

func TestQueuedBeforeConnectDelivered(t *testing.T) {
	// Startup pushes are queued before the dial completes; they must be
	// held for the connection, not discarded.
	got := make(chan signal.Signal, 1)
	srv := httptest.NewServer(ws.Handler(nil, func(p *ws.Peer) {
		p.Subscribe(signal.UserLoginStatus, func(s signal.Signal) { got <- s })
	}))
	t.Cleanup(srv.Close)

	client := ws.NewClient("ws"+strings.TrimPrefix(srv.URL, "http"), "https://client.test", nil)
	client.Send(signal.UserLoginStatus, true)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go client.Run(ctx)

	select {
	case s := <-got:
		require.Len(t, s.Args, 1)
		assert.Equal(t, true, s.Args[0])
	case <-time.After(5 * time.Second):
		t.Fatal("queued signal never reached the host")
	}
}

func TestClientReconnectsAfterDrop(t *testing.T) {
	url, peers := startHost(t)

	client := ws.NewClient(url, "https://client.test", nil, ws.WithRedialWait(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go client.Run(ctx)

	var first *ws.Peer
	select {
	case first = <-peers:
	case <-time.After(5 * time.Second):
		t.Fatal("client never connected")
	}
	first.Close()

	var second *ws.Peer
	select {
	case second = <-peers:
	case <-time.After(5 * time.Second):
		t.Fatal("client never redialled")
	}

	var mu sync.Mutex
	var got []signal.Signal
	second.Subscribe(signal.ViewPostClicked, func(s signal.Signal) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	client.Send(signal.ViewPostClicked, "https://example.wordpress.com/post/2")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 5*time.Second, 10*time.Millisecond, "redialled peer should receive the signal")
}

func TestSendWhileDisconnectedDrops(t *testing.T) {
	client := ws.NewClient("ws://127.0.0.1:1/v1/channel", "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	// Must not block or panic with nobody listening.
	for i := 0; i < 200; i++ {
		client.Send(signal.Print, "title", "<html></html>")
	}
}

func TestPeerCloseIsIdempotent(t *testing.T) {
	url, peers := startHost(t)
	startClient(t, url)

	peer := <-peers
	peer.Close()
	peer.Close()

	select {
	case <-peer.Done():
	default:
		t.Fatal("Done should be closed after Close")
	}

	// Sends after close are silently dropped.
	peer.Send(signal.Navigate, "/read")
}
