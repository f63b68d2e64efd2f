// Package bridge connects the client to the host process that owns the
// native window, menu, and printer facilities the client cannot reach
// itself.
//
// A Bridge carries fire-and-forget commands in both directions over the
// channel transport and answers host-initiated requests whose results are
// produced asynchronously by the shared state store. Host commands are
// routed by the inbound dispatcher; host requests that need an answer go
// through the correlator, which registers a one-shot listener for the
// matching completion signal and forwards the outcome back to the host.
// The edge-triggered notifier watches derived store values and pushes a
// command only on observed transitions.
//
// The Bridge uses narrow collaborator contracts (signal.Duplex, store.Store,
// Selectors, Session) so the surrounding application stays encapsulated.
// Tests substitute in-process buses and mock collaborators.
//
// Lifecycle:
//
//	b := bridge.New(transport, local, st, selectors, navigate, session)
//	err := b.Start()  // registers handlers, performs the startup pushes
//	// ... signals flow ...
//	b.Stop()          // retires every registration and outstanding request
package bridge
