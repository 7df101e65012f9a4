// Package snapshot defines the read-only view of a running simulation
// that the (out-of-scope) inspection server or a test harness polls, and
// a small registry of encoders for exporting one.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/simtime"
	"github.com/discrete-sim/kernel/store"
)

// ComponentView describes one component for export purposes.
type ComponentView struct {
	ID       int    `json:"id" yaml:"id" msgpack:"id"`
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Path     string `json:"path" yaml:"path" msgpack:"path"`
	ParentID int    `json:"parent_id" yaml:"parent_id" msgpack:"parent_id"`
}

// Snapshot captures everything an external observer needs to render the
// current state of a run.
type Snapshot struct {
	RunID      uuid.UUID        `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Time       simtime.Time     `json:"time" yaml:"time" msgpack:"time"`
	Components []ComponentView  `json:"components" yaml:"components" msgpack:"components"`
	Store      store.View       `json:"store" yaml:"store" msgpack:"store"`
}

// Build assembles a Snapshot from the live tree and store. It copies
// everything out, so the result is safe to hand to an encoder or ship
// across a channel after the kernel has moved on to the next instant.
func Build(runID uuid.UUID, now simtime.Time, tree *componenttree.Tree, st *store.Store) Snapshot {
	var views []ComponentView
	tree.Iter(func(id componenttree.ID, c componenttree.Component) bool {
		views = append(views, ComponentView{
			ID:       int(id),
			Name:     c.Name,
			Path:     tree.FullPath(id),
			ParentID: int(c.Parent),
		})
		return true
	})
	return Snapshot{
		RunID:      runID,
		Time:       now,
		Components: views,
		Store:      st.Snapshot(),
	}
}

// Format encodes a Snapshot into bytes in some wire format.
type Format func(Snapshot) ([]byte, error)

// Registry is a name-keyed set of encoders. A new Registry pre-populated
// with "json", "yaml" and "msgpack" is returned by DefaultRegistry.
type Registry map[string]Format

// DefaultRegistry returns a Registry with the three formats the
// inspection server needs: JSON and YAML for human consumption, and
// MessagePack for bandwidth-sensitive polling.
func DefaultRegistry() Registry {
	return Registry{
		"json": func(s Snapshot) ([]byte, error) {
			return json.Marshal(s)
		},
		"yaml": func(s Snapshot) ([]byte, error) {
			return yaml.Marshal(s)
		},
		"msgpack": func(s Snapshot) ([]byte, error) {
			return msgpack.Marshal(s)
		},
	}
}

// Encode looks up format in r and runs it against s.
func (r Registry) Encode(format string, s Snapshot) ([]byte, error) {
	enc, ok := r[format]
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown format %q", format)
	}
	return enc(s)
}
