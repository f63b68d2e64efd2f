package signal

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// subscription represents a registered signal handler.
type subscription struct {
	id      uint64
	name    string
	handler Handler
	once    bool
	fired   atomic.Bool // claimed by the first delivery of a once handler
}

// Bus is a synchronous in-process signal surface. It implements Duplex:
// Send dispatches to subscribers on the calling goroutine.
// It allows subsystems to communicate without direct dependencies.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]*subscription
	nextID atomic.Uint64
}

// NewBus creates a new signal bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]*subscription),
	}
}

// Subscribe registers a handler for a named signal. Handlers for the same
// name are invoked in registration order. Subscribing to Any receives every
// signal, after the name-specific handlers.
func (b *Bus) Subscribe(name string, h Handler) (cancel func()) {
	return b.add(name, h, false)
}

// SubscribeOnce registers a one-shot handler. The registration is retired
// before the handler runs; concurrent deliveries of the same signal invoke
// it at most once.
func (b *Bus) SubscribeOnce(name string, h Handler) (cancel func()) {
	return b.add(name, h, true)
}

func (b *Bus) add(name string, h Handler, once bool) func() {
	sub := &subscription{
		id:      b.nextID.Add(1),
		name:    name,
		handler: h,
		once:    once,
	}

	b.mu.Lock()
	b.subs[name] = append(b.subs[name], sub)
	b.mu.Unlock()

	return func() { b.remove(name, sub.id) }
}

func (b *Bus) remove(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, sub := range subs {
		if sub.id == id {
			b.subs[name] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Send dispatches a signal to all registered handlers: name-specific
// handlers first, then wildcard handlers, each group in registration order.
// A panicking handler is logged and recovered so it cannot block delivery
// to the remaining handlers.
func (b *Bus) Send(name string, args ...any) {
	sig := Signal{Name: name, Args: args}

	b.mu.RLock()
	specific := make([]*subscription, len(b.subs[name]))
	copy(specific, b.subs[name])
	wildcard := make([]*subscription, len(b.subs[Any]))
	copy(wildcard, b.subs[Any])
	b.mu.RUnlock()

	for _, sub := range specific {
		b.deliver(sub, sig)
	}
	for _, sub := range wildcard {
		b.deliver(sub, sig)
	}
}

func (b *Bus) deliver(sub *subscription, sig Signal) {
	if sub.once {
		if !sub.fired.CompareAndSwap(false, true) {
			return
		}
		b.remove(sub.name, sub.id)
	}
	safeCall(sub.handler, sig)
}

// safeCall invokes a handler and recovers from any panics. Panics are
// logged with stack traces to aid debugging while ensuring one misbehaving
// handler cannot take the surface down.
func safeCall(h Handler, sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: signal handler panicked for %s: %v\n%s", sig.Name, r, debug.Stack())
		}
	}()
	h(sig)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]*subscription)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subs {
		count += len(subs)
	}
	return count
}
