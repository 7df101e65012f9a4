// Package metrics defines the kernel's pluggable instrumentation point.
// A Collector is consulted at well-known points in the dispatch loop; the
// default NoOp implementation costs nothing, and Prometheus wires the
// same calls into real metric types for embedders that want them.
package metrics

import "time"

// Collector receives kernel instrumentation calls. The kernel makes most
// calls from its own goroutine, but WorkerTimeout is called from the
// per-event dispatch goroutines, so implementations must be safe for
// concurrent use (NoOp trivially is; Prometheus's client library is).
type Collector interface {
	DispatchPassStarted(componentCount int)
	DispatchPassFinished(duration time.Duration, eventsDispatched int)
	StoreWrite()
	WorkerTimeout()
	ActiveComponents(n int)
	StoreEdition(edition uint32)
}

// NoOp is the zero-overhead default Collector.
type NoOp struct{}

func (NoOp) DispatchPassStarted(int)             {}
func (NoOp) DispatchPassFinished(time.Duration, int) {}
func (NoOp) StoreWrite()                         {}
func (NoOp) WorkerTimeout()                      {}
func (NoOp) ActiveComponents(int)                {}
func (NoOp) StoreEdition(uint32)                 {}

var _ Collector = NoOp{}
