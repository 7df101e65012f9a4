// Package simerrors defines the fatal and recoverable error taxonomy raised
// by the simulation kernel and its collaborator packages. Every exported
// type wraps a sentinel error so callers can use errors.Is/errors.As
// without depending on the concrete type.
package simerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is the sentinel behind InvalidNameError.
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateSibling is the sentinel behind DuplicateSiblingError.
	ErrDuplicateSibling = errors.New("duplicate sibling name")
	// ErrInvalidKey is the sentinel behind InvalidKeyError.
	ErrInvalidKey = errors.New("invalid store key")
	// ErrAlreadySet is the sentinel behind AlreadySetError.
	ErrAlreadySet = errors.New("value already set for this instant")
	// ErrMissingKey is the sentinel behind MissingKeyError.
	ErrMissingKey = errors.New("missing store key")
	// ErrPayload is the sentinel behind PayloadError.
	ErrPayload = errors.New("event payload error")
	// ErrDisconnectedPort is the sentinel behind DisconnectedPortError.
	ErrDisconnectedPort = errors.New("port is not connected")
	// ErrInactiveTarget is the sentinel behind InactiveTargetError.
	ErrInactiveTarget = errors.New("target component is not active")
	// ErrWorkerStalled is the sentinel behind WorkerStalledError.
	ErrWorkerStalled = errors.New("worker did not respond in time")
	// ErrWorkerGone is the sentinel behind WorkerGoneError.
	ErrWorkerGone = errors.New("worker goroutine terminated")
	// ErrUnhandledEvent is the sentinel behind UnhandledEventError.
	ErrUnhandledEvent = errors.New("unhandled event")
)

// InvalidNameError reports that a proposed component or event name failed
// the naming rules (non-empty, letter-led, no whitespace/control/quote
// runes).
type InvalidNameError struct {
	Subject string // "component" or "event"
	Name    string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q", e.Subject, e.Name)
}

func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// DuplicateSiblingError reports that a component name collides with an
// existing child of the same parent.
type DuplicateSiblingError struct {
	ParentPath string
	Name       string
}

func (e *DuplicateSiblingError) Error() string {
	return fmt.Sprintf("component %q already has a child named %q", e.ParentPath, e.Name)
}

func (e *DuplicateSiblingError) Unwrap() error { return ErrDuplicateSibling }

// InvalidKeyError reports an invalid store key; the store rejects only
// the empty key.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid store key %q", e.Key)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// AlreadySetError reports a second write to the same key within the same
// instant with a different value than the first write.
type AlreadySetError struct {
	Key  string
	Time int64
}

func (e *AlreadySetError) Error() string {
	return fmt.Sprintf("store key %q already set at time %d with a different value", e.Key, e.Time)
}

func (e *AlreadySetError) Unwrap() error { return ErrAlreadySet }

// MissingKeyError reports a read of a store key that has never been
// written.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("store key %q has never been set", e.Key)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// PayloadError reports a mismatch between the type an event's payload was
// taken/borrowed as and the type it was actually constructed with, or a
// take/borrow of an event that carries no payload at all.
type PayloadError struct {
	Event   string
	Message string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("event %q payload error: %s", e.Event, e.Message)
}

func (e *PayloadError) Unwrap() error { return ErrPayload }

// DisconnectedPortError reports a send through an OutPort that was never
// connected to an InPort.
type DisconnectedPortError struct {
	Owner string
}

func (e *DisconnectedPortError) Error() string {
	return fmt.Sprintf("port on component %q is not connected", e.Owner)
}

func (e *DisconnectedPortError) Unwrap() error { return ErrDisconnectedPort }

// InactiveTargetError reports an event scheduled to a component ID that is
// not a registered active component (a passive component, or an ID that
// was never registered).
type InactiveTargetError struct {
	Target string
}

func (e *InactiveTargetError) Error() string {
	return fmt.Sprintf("target component %q is not active", e.Target)
}

func (e *InactiveTargetError) Unwrap() error { return ErrInactiveTarget }

// WorkerStalledError reports that a worker failed to return an Effector
// within the configured worker timeout.
type WorkerStalledError struct {
	Target string
	Event  string
}

func (e *WorkerStalledError) Error() string {
	return fmt.Sprintf("worker for component %q stalled processing event %q", e.Target, e.Event)
}

func (e *WorkerStalledError) Unwrap() error { return ErrWorkerStalled }

// WorkerGoneError reports that a worker's goroutine terminated (its
// channel closed, or it panicked and the panic was recovered at the
// goroutine boundary).
type WorkerGoneError struct {
	Target string
	Panic  any
}

func (e *WorkerGoneError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("worker for component %q is gone (panic: %v)", e.Target, e.Panic)
	}
	return fmt.Sprintf("worker for component %q is gone", e.Target)
}

func (e *WorkerGoneError) Unwrap() error { return ErrWorkerGone }

// UnhandledEventError reports a worker function that received an event
// name it has no case for and chose to treat that as fatal rather than
// silently ignore it.
type UnhandledEventError struct {
	Component string
	Event     string
}

func (e *UnhandledEventError) Error() string {
	return fmt.Sprintf("component %q has no handler for event %q", e.Component, e.Event)
}

func (e *UnhandledEventError) Unwrap() error { return ErrUnhandledEvent }
