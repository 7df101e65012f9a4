// Package port implements the typed wiring between components: an
// OutPort on a producer connects to an InPort on a consumer, and sends
// through an unconnected OutPort fail with a DisconnectedPort error
// rather than silently doing nothing.
package port

import (
	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simerrors"
)

// InPort is the consumer side of a connection. T is compile-time only —
// it exists to keep OutPort[T].ConnectTo type-safe and carries no runtime
// data of its own.
type InPort[T any] struct {
	Owner   componenttree.ID
	PortTag string
}

// NewInPort returns an InPort owned by owner and tagged portTag.
func NewInPort[T any](owner componenttree.ID, portTag string) InPort[T] {
	return InPort[T]{Owner: owner, PortTag: portTag}
}

// OutPort is the producer side of a connection. Until ConnectTo is
// called, RemoteID is componenttree.NoComponent and every send fails.
type OutPort[T any] struct {
	ownerName string
	RemoteID  componenttree.ID
	RemoteTag string
}

// NewOutPort returns an unconnected OutPort. ownerName is used only to
// build a readable DisconnectedPort error message.
func NewOutPort[T any](ownerName string) OutPort[T] {
	return OutPort[T]{ownerName: ownerName, RemoteID: componenttree.NoComponent}
}

// ConnectTo wires this OutPort to an InPort, replacing any previous
// connection.
func (p *OutPort[T]) ConnectTo(in InPort[T]) {
	p.RemoteID = in.Owner
	p.RemoteTag = in.PortTag
}

// Connected reports whether ConnectTo has been called.
func (p *OutPort[T]) Connected() bool {
	return p.RemoteID != componenttree.NoComponent
}

// SendPayload schedules an event carrying payload to the connected
// target for immediate delivery, tagged with the port it arrived on.
func (p *OutPort[T]) SendPayload(eff *effector.Effector, name string, payload T) error {
	if !p.Connected() {
		return &simerrors.DisconnectedPortError{Owner: p.ownerName}
	}
	ev, err := event.WithPortPayload(name, p.RemoteTag, payload)
	if err != nil {
		return err
	}
	eff.ScheduleImmediately(ev, p.RemoteID)
	return nil
}

// SendPayloadAfterSeconds is SendPayload delayed by secs seconds.
func (p *OutPort[T]) SendPayloadAfterSeconds(eff *effector.Effector, name string, payload T, secs, timeUnits float64) error {
	if !p.Connected() {
		return &simerrors.DisconnectedPortError{Owner: p.ownerName}
	}
	ev, err := event.WithPortPayload(name, p.RemoteTag, payload)
	if err != nil {
		return err
	}
	eff.ScheduleAfterSeconds(ev, p.RemoteID, secs, timeUnits)
	return nil
}
