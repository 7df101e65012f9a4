package worker

import (
	"context"
	"math/rand"
	"strings"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/simerrors"
	"github.com/discrete-sim/kernel/simstate"
)

// Location is the payload carried by "set-location" and "offset-location".
type Location struct {
	X, Y float64
}

// Locatable returns a Func that maintains a 2D position in the reserved
// display-location-x/y store keys: "set-location" overwrites it,
// "offset-location" adds to the current value, and any "init " stage
// event is a no-op logged at Excessive. Any other event name is fatal.
func Locatable(id componenttree.ID) Func {
	return func(ctx context.Context, ev event.Event, state simstate.SimState, rng *rand.Rand) *effector.Effector {
		eff := effector.New(id, state.Now)
		path := state.Tree.FullPath(id)

		switch {
		case ev.Name == "set-location":
			loc, err := event.PayloadRef[Location](ev)
			if err != nil {
				eff.Logf(effector.LevelError, path, "set-location: %v", err)
				return eff
			}
			eff.SetFloat("display-location-x", loc.X)
			eff.SetFloat("display-location-y", loc.Y)

		case ev.Name == "offset-location":
			loc, err := event.PayloadRef[Location](ev)
			if err != nil {
				eff.Logf(effector.LevelError, path, "offset-location: %v", err)
				return eff
			}
			x, _ := state.Store.GetFloat(path + ".display-location-x")
			y, _ := state.Store.GetFloat(path + ".display-location-y")
			eff.SetFloat("display-location-x", x+loc.X)
			eff.SetFloat("display-location-y", y+loc.Y)

		case strings.HasPrefix(ev.Name, "init "):
			eff.Logf(effector.LevelExcessive, path, "ignoring %s", ev.Name)

		default:
			err := &simerrors.UnhandledEventError{Component: path, Event: ev.Name}
			eff.Log(effector.LevelError, path, err.Error())
			eff.Exit()
		}

		return eff
	}
}
