// Package worker runs one active component's goroutine: a loop that
// receives (event, snapshot) pairs over a channel, invokes the
// component's worker function, and sends the resulting Effector back.
// A panic inside the worker function is recovered at this boundary and
// surfaced to the kernel as a WorkerGone condition rather than crashing
// the process.
package worker

import (
	"context"
	"math/rand"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simstate"
)

// Func is the signature every active component implements: given the
// event it was woken for, the shared read-only snapshot of the world,
// and a private deterministic RNG, it returns the Effector describing
// what should happen.
type Func func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector

// dispatchMsg is one unit of work sent to a worker goroutine.
type dispatchMsg struct {
	ctx   context.Context
	event event.Event
	state simstate.SimState
}

// result is what a worker goroutine sends back, either an Effector or a
// recovered panic value.
type result struct {
	eff   *effector.Effector
	panic any
}

// Handle is the kernel's view of one running worker: the channels used
// to talk to it and the metadata needed to seed its RNG deterministically.
type Handle struct {
	ID   componenttree.ID
	Name string

	in     chan dispatchMsg
	out    chan result
	done   chan struct{}
	closed bool
}

// Start launches fn on its own goroutine, seeded deterministically from
// seed and id so that two runs with the same seed produce the same
// sequence of random draws for the same component.
func Start(id componenttree.ID, name string, seed uint64, fn Func) *Handle {
	h := &Handle{
		ID:   id,
		Name: name,
		in:   make(chan dispatchMsg),
		out:  make(chan result),
		done: make(chan struct{}),
	}
	rng := rand.New(rand.NewSource(int64(seed) + int64(id)))

	go func() {
		defer close(h.done)
		for msg := range h.in {
			h.out <- runOnce(msg, fn, rng)
		}
	}()

	return h
}

func runOnce(msg dispatchMsg, fn Func, rng *rand.Rand) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res = result{panic: r}
		}
	}()
	eff := fn(msg.ctx, msg.event, msg.state, rng)
	return result{eff: eff}
}

// Dispatch sends ev/state to the worker and blocks until it responds or
// ctx is done. It never returns an error itself — timeouts and closed
// workers are reported via the timedOut, panicVal and gone results so the kernel
// can build the right simerrors value with the target's full path.
func (h *Handle) Dispatch(ctx context.Context, ev event.Event, state simstate.SimState) (eff *effector.Effector, timedOut bool, panicVal any, gone bool) {
	select {
	case h.in <- dispatchMsg{ctx: ctx, event: ev, state: state}:
	case <-ctx.Done():
		return nil, true, nil, false
	case <-h.done:
		return nil, false, nil, true
	}

	select {
	case r := <-h.out:
		if r.panic != nil {
			return nil, false, r.panic, false
		}
		return r.eff, false, nil, false
	case <-ctx.Done():
		return nil, true, nil, false
	case <-h.done:
		return nil, false, nil, true
	}
}

// Stop closes the worker's input channel, ending its goroutine.
func (h *Handle) Stop() {
	if h.closed {
		return
	}
	h.closed = true
	close(h.in)
}
