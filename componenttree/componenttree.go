// Package componenttree implements the dense-ID tree of named components
// that a simulation is built from. Components are never removed from the
// underlying slice — "removal" is a logical state tracked in the store
// (see the kernel package) so that IDs remain stable for the lifetime of
// a run.
package componenttree

import (
	"strings"
	"sync"
	"unicode"

	"github.com/discrete-sim/kernel/simerrors"
)

// ID identifies a component by its index into the tree's internal slice.
type ID int

// NoComponent is the sentinel parent/target ID meaning "no component":
// the parent of the root, or the target of an unconnected port.
const NoComponent ID = -1

// Component is one node in the tree.
type Component struct {
	Name     string
	Parent   ID
	Children []ID
}

// Tree is a mutex-guarded, append-only forest that in practice always
// has exactly one root (the first component added).
type Tree struct {
	mu         sync.RWMutex
	components []Component
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Add registers a new component and returns its ID. parent must be
// NoComponent for the very first component added (the root) and a valid
// existing ID for every component after that — a tree may have only one
// root.
func (t *Tree) Add(name string, parent ID) (ID, error) {
	if err := validateName("component", name); err != nil {
		return NoComponent, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.components) == 0 {
		if parent != NoComponent {
			return NoComponent, &simerrors.InvalidNameError{Subject: "component", Name: name}
		}
		t.components = append(t.components, Component{Name: name, Parent: NoComponent})
		return ID(0), nil
	}

	if parent < 0 || int(parent) >= len(t.components) {
		return NoComponent, &simerrors.InvalidNameError{Subject: "component", Name: name}
	}

	for _, childID := range t.components[parent].Children {
		if t.components[childID].Name == name {
			return NoComponent, &simerrors.DuplicateSiblingError{
				ParentPath: t.fullPathLocked(parent),
				Name:       name,
			}
		}
	}

	id := ID(len(t.components))
	t.components = append(t.components, Component{Name: name, Parent: parent})
	t.components[parent].Children = append(t.components[parent].Children, id)
	return id, nil
}

func validateName(subject, name string) error {
	if name == "" {
		return &simerrors.InvalidNameError{Subject: subject, Name: name}
	}
	runes := []rune(name)
	if !unicode.IsLetter(runes[0]) {
		return &simerrors.InvalidNameError{Subject: subject, Name: name}
	}
	if strings.ContainsAny(name, "\"'.") {
		return &simerrors.InvalidNameError{Subject: subject, Name: name}
	}
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return &simerrors.InvalidNameError{Subject: subject, Name: name}
		}
	}
	return nil
}

// Get returns a copy of the component at id.
func (t *Tree) Get(id ID) (Component, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.components) {
		return Component{}, false
	}
	c := t.components[id]
	children := make([]ID, len(c.Children))
	copy(children, c.Children)
	c.Children = children
	return c, true
}

// Len returns the number of registered components.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.components)
}

// Root returns the tree's single root component, if any has been added.
func (t *Tree) Root() (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.components) == 0 {
		return NoComponent, false
	}
	return ID(0), true
}

// Top returns the child of the root that is an ancestor of (or equal to)
// id — the "top-level" component under which id lives. It returns false
// if id is the root itself or does not exist.
func (t *Tree) Top(id ID) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.components) {
		return NoComponent, false
	}
	cur := id
	for {
		c := t.components[cur]
		if c.Parent == NoComponent {
			return NoComponent, false // id is the root
		}
		if c.Parent == ID(0) {
			return cur, true
		}
		cur = c.Parent
	}
}

// Predicate is a filter used by FindChild/FindParent.
type Predicate func(id ID, c Component) bool

// FindChild performs a breadth-first search of id's descendants (not
// including id itself) for the first component matching predicate.
func (t *Tree) FindChild(id ID, predicate Predicate) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.components) {
		return NoComponent, false
	}

	queue := append([]ID(nil), t.components[id].Children...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		c := t.components[next]
		if predicate(next, c) {
			return next, true
		}
		queue = append(queue, c.Children...)
	}
	return NoComponent, false
}

// FindParent walks id's ancestor chain (not including id itself) for the
// first component matching predicate.
func (t *Tree) FindParent(id ID, predicate Predicate) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || int(id) >= len(t.components) {
		return NoComponent, false
	}
	cur := t.components[id].Parent
	for cur != NoComponent {
		c := t.components[cur]
		if predicate(cur, c) {
			return cur, true
		}
		cur = c.Parent
	}
	return NoComponent, false
}

// Iter yields every (ID, Component) pair in insertion order.
func (t *Tree) Iter(yield func(ID, Component) bool) {
	t.mu.RLock()
	snapshot := make([]Component, len(t.components))
	copy(snapshot, t.components)
	t.mu.RUnlock()

	for i, c := range snapshot {
		if !yield(ID(i), c) {
			return
		}
	}
}

// FullPath returns the dotted path from (excluding) the root down to id.
func (t *Tree) FullPath(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fullPathLocked(id)
}

func (t *Tree) fullPathLocked(id ID) string {
	if id < 0 || int(id) >= len(t.components) {
		return ""
	}
	var segments []string
	cur := id
	for cur != NoComponent && t.components[cur].Parent != NoComponent {
		segments = append(segments, t.components[cur].Name)
		cur = t.components[cur].Parent
	}
	if cur != NoComponent && t.components[cur].Parent == NoComponent && len(segments) == 0 {
		// id is the root itself: its path is empty, matching the original's
		// behavior of excluding the root from the dotted path.
		return ""
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// DisplayPath returns FullPath(id) right-padded with spaces to the length
// of the longest path in the tree, capped at maxWidth runes (0 means
// unlimited). A path longer than maxWidth is left-truncated and prefixed
// with a single ellipsis rune. This is a presentation helper only; store
// keys always use the untruncated FullPath.
func (t *Tree) DisplayPath(id ID, maxWidth int) string {
	full := t.FullPath(id)
	width := 0
	t.Iter(func(other ID, _ Component) bool {
		if n := len([]rune(t.FullPath(other))); n > width {
			width = n
		}
		return true
	})
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	runes := []rune(full)
	if maxWidth > 0 && len(runes) > maxWidth {
		if maxWidth <= 1 {
			return "…"
		}
		return "…" + string(runes[len(runes)-(maxWidth-1):])
	}
	return full + strings.Repeat(" ", width-len(runes))
}
