package signal

// Signal is a named message with positional arguments. Args may be empty.
// Payloads that cross the transport boundary are JSON values; payloads on
// the in-process Bus may be concrete Go types.
type Signal struct {
	Name string
	Args []any
}

// Handler is a function invoked for each delivered signal.
type Handler func(Signal)

// Any is the wildcard name: a handler subscribed to Any receives every
// signal on the surface, after the name-specific handlers.
const Any = "*"

// Sender sends fire-and-forget signals. Send never blocks the caller and
// carries no delivery guarantee: if the far side of a transport is gone the
// signal is silently dropped.
type Sender interface {
	Send(name string, args ...any)
}

// Subscriber registers handlers for named signals. The returned cancel
// function removes the registration; calling it more than once is safe.
type Subscriber interface {
	// Subscribe registers a long-lived handler. Handlers for the same name
	// are invoked in registration order.
	Subscribe(name string, h Handler) (cancel func())

	// SubscribeOnce registers a handler that is retired before its first
	// invocation. Later signals with the same name do not reach it, even
	// when they arrive concurrently with the first.
	SubscribeOnce(name string, h Handler) (cancel func())
}

// Duplex is a bidirectional signal surface.
type Duplex interface {
	Sender
	Subscriber
}
