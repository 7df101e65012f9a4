package kernel_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/config"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/kernel"
	"github.com/discrete-sim/kernel/simstate"
)

func runCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestSingleComponentTimer: one active component schedules itself three
// times a second apart then exits, checking "no events" is never reached
// before the explicit exit.
func TestSingleComponentTimer(t *testing.T) {
	cfg := config.New(config.WithTimeUnits(1000), config.WithMaxSecs(100))
	k := kernel.New(cfg)

	ticks := 0
	_, err := k.RegisterActive("timer", componenttree.NoComponent, func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
		eff := effector.New(componenttree.ID(0), state.Now)
		if ev.Name == "tick" {
			ticks++
		}
		if ticks < 3 {
			next, _ := event.New("tick")
			eff.ScheduleAfterSeconds(next, componenttree.ID(0), 1, cfg.TimeUnits)
		} else {
			eff.Exit()
		}
		return eff
	})
	require.NoError(t, err)

	ctx := runCtx(t)
	_, err = k.Init(ctx)
	require.NoError(t, err)

	reason, err := k.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "effector.exit was called", reason)
}

// TestPingPongDeterministicFingerprint: two active components exchange a bounded number of
// events and then exit, and the final fingerprint is deterministic
// across two runs with the same seed.
func TestPingPongDeterministicFingerprint(t *testing.T) {
	buildAndRun := func() (string, uint64) {
		cfg := config.New(config.WithTimeUnits(1000), config.WithMaxSecs(100), config.WithSeed(42))
		k := kernel.New(cfg)

		var pingID, pongID componenttree.ID

		pingFn := func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
			eff := effector.New(pingID, state.Now)
			count, _ := event.PayloadRef[int](ev)
			if count < 5 {
				next, _ := event.WithPayload("pong", count+1)
				eff.ScheduleAfterSeconds(next, pongID, 1, cfg.TimeUnits)
			} else {
				eff.Exit()
			}
			return eff
		}
		pongFn := func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
			eff := effector.New(pongID, state.Now)
			count, _ := event.PayloadRef[int](ev)
			next, _ := event.WithPayload("ping", count+1)
			eff.ScheduleAfterSeconds(next, pingID, 1, cfg.TimeUnits)
			return eff
		}

		var err error
		pingID, err = k.RegisterActive("ping", componenttree.NoComponent, pingFn)
		require.NoError(t, err)
		pongID, err = k.RegisterActive("pong", pingID, pongFn)
		require.NoError(t, err)

		ctx := runCtx(t)
		_, err = k.Init(ctx)
		require.NoError(t, err)

		reason, err := k.Run(ctx)
		require.NoError(t, err)
		return reason, k.Fingerprint()
	}

	reason1, fp1 := buildAndRun()
	reason2, fp2 := buildAndRun()
	assert.Equal(t, reason1, reason2)
	assert.Equal(t, fp1, fp2)
}
