package worker_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simstate"
	"github.com/discrete-sim/kernel/worker"
)

func TestDispatchReturnsEffector(t *testing.T) {
	fn := func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
		eff := effector.New(componenttree.ID(1), state.Now)
		eff.Logf(effector.LevelInfo, "topic", "handled %s", ev.Name)
		return eff
	}
	h := worker.Start(componenttree.ID(1), "bot", 42, fn)
	defer h.Stop()

	ev, err := event.New("tick")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	eff, timedOut, panicVal, gone := h.Dispatch(ctx, ev, simstate.SimState{Now: 5})
	require.False(t, timedOut)
	require.False(t, gone)
	require.Nil(t, panicVal)
	require.NotNil(t, eff)
	assert.Equal(t, "handled tick", eff.Logs[0].Message)
}

func TestDispatchRecoversPanic(t *testing.T) {
	fn := func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
		panic("boom")
	}
	h := worker.Start(componenttree.ID(2), "bot", 1, fn)
	defer h.Stop()

	ev, err := event.New("tick")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, timedOut, panicVal, gone := h.Dispatch(ctx, ev, simstate.SimState{})
	assert.False(t, timedOut)
	assert.False(t, gone)
	assert.Equal(t, "boom", panicVal)
}

func TestDispatchTimesOutOnSlowWorker(t *testing.T) {
	fn := func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
		<-ctx.Done()
		return effector.New(componenttree.ID(3), state.Now)
	}
	h := worker.Start(componenttree.ID(3), "bot", 1, fn)
	defer h.Stop()

	ev, err := event.New("tick")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, timedOut, _, _ := h.Dispatch(ctx, ev, simstate.SimState{})
	assert.True(t, timedOut)
}

func TestSeedIsDeterministicPerComponent(t *testing.T) {
	var gotA, gotB int64
	fn := func(capture *int64) worker.Func {
		return func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
			*capture = rng.Int63()
			return effector.New(componenttree.ID(0), state.Now)
		}
	}
	hA := worker.Start(componenttree.ID(7), "bot", 99, fn(&gotA))
	hB := worker.Start(componenttree.ID(7), "bot", 99, fn(&gotB))
	defer hA.Stop()
	defer hB.Stop()

	ev, err := event.New("tick")
	require.NoError(t, err)
	ctx := context.Background()
	_, _, _, _ = hA.Dispatch(ctx, ev, simstate.SimState{})
	_, _, _, _ = hB.Dispatch(ctx, ev, simstate.SimState{})

	assert.Equal(t, gotA, gotB)
}
