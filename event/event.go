// Package event defines the message type dispatched between the kernel
// and worker goroutines: a name, an optional port tag identifying which
// inbound port it arrived on, and an opaque payload.
package event

import "github.com/discrete-sim/kernel/simerrors"

// Event is a one-shot message. Its payload, if any, is read with
// PayloadRef or TakePayload — both are type-checked at call time since Go
// has no way to express the original payload's dynamic type statically.
type Event struct {
	Name    string
	PortTag string
	payload any
}

// New constructs a bare event with no port tag and no payload.
func New(name string) (Event, error) {
	return WithPortPayload(name, "", nil)
}

// WithPayload constructs an event carrying a payload but no port tag.
func WithPayload(name string, payload any) (Event, error) {
	return WithPortPayload(name, "", payload)
}

// WithPort constructs an event tagged with the inbound port it arrived
// on, but with no payload.
func WithPort(name, portTag string) (Event, error) {
	return WithPortPayload(name, portTag, nil)
}

// WithPortPayload constructs an event with both a port tag and a payload.
func WithPortPayload(name, portTag string, payload any) (Event, error) {
	if name == "" {
		return Event{}, &simerrors.InvalidNameError{Subject: "event", Name: name}
	}
	return Event{Name: name, PortTag: portTag, payload: payload}, nil
}

// PayloadRef returns the event's payload as T without consuming it,
// borrowing the value the way a future read of the same event would see
// it again.
func PayloadRef[T any](e Event) (T, error) {
	var zero T
	if e.payload == nil {
		return zero, &simerrors.PayloadError{Event: e.Name, Message: "missing payload"}
	}
	v, ok := e.payload.(T)
	if !ok {
		return zero, &simerrors.PayloadError{Event: e.Name, Message: "downcast failed"}
	}
	return v, nil
}

// TakePayload returns the event's payload as T and clears it from the
// event, so a second take/ref against the same Event value observes no
// payload. Since Event is passed by value this only affects the caller's
// own local copy.
func TakePayload[T any](e *Event) (T, error) {
	v, err := PayloadRef[T](*e)
	if err != nil {
		return v, err
	}
	e.payload = nil
	return v, nil
}

// HasPayload reports whether the event carries any payload at all.
func (e Event) HasPayload() bool {
	return e.payload != nil
}
