// Package scheduler implements the kernel's time-ordered queue of
// pending events as a binary min-heap over container/heap, giving O(log n)
// push/pop without pulling in a dedicated priority-queue dependency.
package scheduler

import (
	"container/heap"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simtime"
)

// Entry is one pending (time, target, event) tuple.
type Entry struct {
	At     simtime.Time
	Target componenttree.ID
	Event  event.Event
}

// entryHeap adapts []Entry to container/heap.Interface, ordered solely by
// At. No ordering among entries that share the same time is promised —
// the kernel groups and drains them together regardless of position.
type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].At < h[j].At }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler is a min-heap of scheduled entries. It is owned exclusively
// by the kernel goroutine; nothing else may touch it concurrently.
type Scheduler struct {
	h entryHeap
}

// New returns an empty scheduler.
func New() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.h)
	return s
}

// Push adds an entry to the scheduler.
func (s *Scheduler) Push(e Entry) {
	heap.Push(&s.h, e)
}

// Peek returns the earliest entry without removing it.
func (s *Scheduler) Peek() (Entry, bool) {
	if len(s.h) == 0 {
		return Entry{}, false
	}
	return s.h[0], true
}

// Pop removes and returns the earliest entry.
func (s *Scheduler) Pop() (Entry, bool) {
	if len(s.h) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&s.h).(Entry), true
}

// Len reports the number of pending entries.
func (s *Scheduler) Len() int {
	return len(s.h)
}

// DrainAt removes and returns every entry scheduled at exactly t.
func (s *Scheduler) DrainAt(t simtime.Time) []Entry {
	var out []Entry
	for {
		next, ok := s.Peek()
		if !ok || next.At != t {
			break
		}
		entry, _ := s.Pop()
		out = append(out, entry)
	}
	return out
}
