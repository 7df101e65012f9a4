package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/event"
	"github.com/discrete-sim/kernel/scheduler"
)

func mustEvent(t *testing.T, name string) event.Event {
	t.Helper()
	ev, err := event.New(name)
	require.NoError(t, err)
	return ev
}

func TestPopOrdersByTime(t *testing.T) {
	s := scheduler.New()
	s.Push(scheduler.Entry{At: 30, Target: 0, Event: mustEvent(t, "c")})
	s.Push(scheduler.Entry{At: 10, Target: 0, Event: mustEvent(t, "a")})
	s.Push(scheduler.Entry{At: 20, Target: 0, Event: mustEvent(t, "b")})

	var order []string
	for s.Len() > 0 {
		e, ok := s.Pop()
		require.True(t, ok)
		order = append(order, e.Event.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := scheduler.New()
	s.Push(scheduler.Entry{At: 5, Target: 0, Event: mustEvent(t, "x")})
	_, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestDrainAtCollectsOnlyMatchingTime(t *testing.T) {
	s := scheduler.New()
	s.Push(scheduler.Entry{At: 10, Target: 1, Event: mustEvent(t, "a")})
	s.Push(scheduler.Entry{At: 10, Target: 2, Event: mustEvent(t, "b")})
	s.Push(scheduler.Entry{At: 20, Target: 3, Event: mustEvent(t, "c")})

	batch := s.DrainAt(10)
	assert.Len(t, batch, 2)
	assert.Equal(t, 1, s.Len())

	next, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "c", next.Event.Name)
}

func TestPopOnEmptyReturnsFalse(t *testing.T) {
	s := scheduler.New()
	_, ok := s.Pop()
	assert.False(t, ok)
}
