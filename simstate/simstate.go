// Package simstate defines the read-only snapshot handed to every worker
// for the duration of one dispatch pass: shared references to the
// component tree and store as they stood when the pass began. Workers
// never see a pointer to the kernel itself.
package simstate

import (
	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/simtime"
	"github.com/discrete-sim/kernel/store"
)

// SimState is the immutable view a worker function reads from while
// producing its Effector. Tree and Store are the kernel's actual
// instances, shared read-only: workers must never mutate them directly,
// only stage changes through the Effector they return.
type SimState struct {
	Tree *componenttree.Tree
	Store *store.Store
	Now   simtime.Time
}

// WasRemoved reports whether id (or any ancestor of id) has been marked
// removed, by checking the reserved "<path>.removed" store key.
func (s SimState) WasRemoved(id componenttree.ID) bool {
	cur := id
	for {
		key := s.Tree.FullPath(cur) + ".removed"
		if s.Store.Contains(key) {
			return true
		}
		c, ok := s.Tree.Get(cur)
		if !ok || c.Parent == componenttree.NoComponent {
			return false
		}
		cur = c.Parent
	}
}
