package port_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discrete-sim/kernel/componenttree"
	"github.com/discrete-sim/kernel/effector"
	"github.com/discrete-sim/kernel/port"
)

func TestSendOnUnconnectedPortFails(t *testing.T) {
	out := port.NewOutPort[int]("sim.sender")
	eff := effector.New(componenttree.ID(0), 0)
	err := out.SendPayload(eff, "tick", 1)
	assert.Error(t, err)
}

func TestConnectThenSendSchedulesImmediately(t *testing.T) {
	out := port.NewOutPort[int]("sim.sender")
	in := port.NewInPort[int](componenttree.ID(5), "in")
	out.ConnectTo(in)
	assert.True(t, out.Connected())

	eff := effector.New(componenttree.ID(0), 42)
	require.NoError(t, out.SendPayload(eff, "tick", 7))
	require.Len(t, eff.Sends, 1)
	assert.Equal(t, componenttree.ID(5), eff.Sends[0].Target)
	assert.Equal(t, eff.Now+1, eff.Sends[0].At)
	assert.Equal(t, "in", eff.Sends[0].Event.PortTag)
}

func TestSendAfterSecondsDelays(t *testing.T) {
	out := port.NewOutPort[string]("sim.sender")
	in := port.NewInPort[string](componenttree.ID(2), "in")
	out.ConnectTo(in)

	eff := effector.New(componenttree.ID(0), 100)
	require.NoError(t, out.SendPayloadAfterSeconds(eff, "msg", "hi", 1, 1_000_000))
	require.Len(t, eff.Sends, 1)
	assert.Greater(t, eff.Sends[0].At, eff.Now)
}
