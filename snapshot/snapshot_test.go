package snapshot_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/snapshot"
	"github.com/discrete-sim/kernel/store"
)

func TestBuildCapturesComponentsAndStore(t *testing.T) {
	tr := componenttree.New()
	root, err := tr.Add("sim", componenttree.NoComponent)
	require.NoError(t, err)
	_, err = tr.Add("bot", root)
	require.NoError(t, err)

	st := store.New()
	require.NoError(t, st.SetInt("bot.counter", 1, 0))

	runID := uuid.New()
	snap := snapshot.Build(runID, 10, tr, st)

	assert.Equal(t, runID, snap.RunID)
	assert.Equal(t, 2, len(snap.Components))
	assert.Equal(t, int64(1), snap.Store.Ints["bot.counter"])
}

func TestRegistryEncodesAllFormats(t *testing.T) {
	reg := snapshot.DefaultRegistry()
	snap := snapshot.Build(uuid.New(), 0, componenttree.New(), store.New())

	for _, format := range []string{"json", "yaml", "msgpack"} {
		out, err := reg.Encode(format, snap)
		require.NoErrorf(t, err, "format %s", format)
		assert.NotEmptyf(t, out, "format %s", format)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	reg := snapshot.DefaultRegistry()
	_, err := reg.Encode("bogus", snapshot.Snapshot{})
	assert.Error(t, err)
}
