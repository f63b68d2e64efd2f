// Package errors provides centralized error definitions and error handling
// utilities for the bridge. It defines sentinel errors for lifecycle
// misuse, semantic error types for correlation failures and timeouts, and
// classification helpers.
//
// Responder-side failures never crash the bridge: correlation mismatches
// and timeouts travel to the host inside the normal response payload, and
// the types here exist so the bridge (and its tests) can build and inspect
// those messages consistently.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for bridge and transport lifecycle.
var (
	// ErrAlreadyStarted indicates Start was called on a running bridge.
	// Handler registration happens exactly once per bridge instance.
	ErrAlreadyStarted = New("bridge already started")

	// ErrTransportClosed indicates the channel transport has shut down.
	ErrTransportClosed = New("transport closed")
)

// CorrelationError represents a response observed for a different business
// key than the outstanding request. Per the bridge's best-effort policy the
// response is still forwarded; this error rides in its error field.
type CorrelationError struct {
	Signal   string
	Expected int64
	Observed int64
}

// NewCorrelationError creates a new CorrelationError.
func NewCorrelationError(signal string, expected, observed int64) *CorrelationError {
	return &CorrelationError{
		Signal:   signal,
		Expected: expected,
		Observed: observed,
	}
}

// Error returns the error message, naming both keys.
func (e *CorrelationError) Error() string {
	return fmt.Sprintf("expected response for siteId: %d, got: %d", e.Expected, e.Observed)
}

// Is allows matching any CorrelationError with errors.Is.
func (e *CorrelationError) Is(target error) bool {
	_, ok := target.(*CorrelationError)
	return ok
}

// TimeoutError represents an outstanding correlated request whose response
// signal never fired within the configured window.
type TimeoutError struct {
	Signal   string
	Duration time.Duration
}

// NewTimeoutError creates a new TimeoutError for the given response signal.
func NewTimeoutError(signal string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		Signal:   signal,
		Duration: duration,
	}
}

// Error returns the error message.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s (timeout: %s)", e.Signal, e.Duration)
}

// Is allows matching any TimeoutError with errors.Is.
func (e *TimeoutError) Is(target error) bool {
	_, ok := target.(*TimeoutError)
	return ok
}

// SupersededError represents an outstanding correlated request that was
// displaced by a newer request for the same correlation key.
type SupersededError struct {
	Signal string
	Key    int64
}

// NewSupersededError creates a new SupersededError.
func NewSupersededError(signal string, key int64) *SupersededError {
	return &SupersededError{Signal: signal, Key: key}
}

// Error returns the error message.
func (e *SupersededError) Error() string {
	return fmt.Sprintf("superseded by a newer request for siteId: %d", e.Key)
}

// Is allows matching any SupersededError with errors.Is.
func (e *SupersededError) Is(target error) bool {
	_, ok := target.(*SupersededError)
	return ok
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return As(err, &te)
}

// IsCorrelationMismatch reports whether err is (or wraps) a CorrelationError.
func IsCorrelationMismatch(err error) bool {
	var ce *CorrelationError
	return As(err, &ce)
}
