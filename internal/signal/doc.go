// Package signal defines the unified signal surface the bridge is built on.
//
// A Signal is a named message with positional arguments. Two kinds of
// carriers implement the same contract: the channel transport to the host
// process (see internal/transport/ws) and the in-process Bus used for
// client-internal signals raised by other subsystems ("editor cannot load",
// "unseen count updated", operation completions). Consumers register
// handlers through the Subscriber interface and are agnostic to which
// physical channel a signal arrives on.
//
// One-shot registration is a first-class primitive: a handler registered
// with SubscribeOnce is retired before its first invocation, so retirement
// after the first matching delivery is guaranteed by the surface itself
// rather than reimplemented (and occasionally leaked) at each call site.
package signal
