// Package store defines the contracts the bridge uses to talk to the shared
// application state store. The bridge never owns store data: it reads state
// through pure selector functions and mutates it exclusively by dispatching
// actions. The store itself is an external collaborator; a reference
// implementation lives in the memory subpackage.
package store

// State is an immutable snapshot of application state. Selectors assert it
// to the concrete type of the store implementation that produced it.
type State any

// Action is a dispatchable description of a state mutation.
type Action interface {
	// ActionType returns a stable name for the action, used for logging
	// and reducer routing.
	ActionType() string
}

// Store is the narrow view of the shared state store the bridge needs.
type Store interface {
	// State returns the current state snapshot.
	State() State

	// Dispatch applies an action. It is the single mutation entry point.
	Dispatch(Action)

	// Subscribe registers a listener invoked after every dispatched action
	// that may have changed state. The returned cancel function removes
	// the registration.
	Subscribe(listener func()) (cancel func())
}
