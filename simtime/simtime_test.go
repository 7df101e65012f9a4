package simtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/discrete-sim/kernel/simtime"
)

func TestFromSeconds(t *testing.T) {
	cases := []struct {
		name  string
		secs  float64
		units float64
		want  simtime.Time
	}{
		{"zero is immediate", 0, 1_000_000, 0},
		{"negative is immediate", -1, 1_000_000, 0},
		{"tiny positive rounds up to one tick", 0.0000001, 1_000_000, 1},
		{"one second at default units", 1, 1_000_000, 1_000_000},
		{"half second", 0.5, 1_000_000, 500_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, simtime.FromSeconds(tc.secs, tc.units))
		})
	}
}

func TestToSeconds(t *testing.T) {
	assert.Equal(t, 1.0, simtime.ToSeconds(1_000_000, 1_000_000))
	assert.Equal(t, 0.0, simtime.ToSeconds(100, 0))
}

func TestAddAndBefore(t *testing.T) {
	a := simtime.Time(10)
	b := a.Add(5)
	assert.Equal(t, simtime.Time(15), b)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}
