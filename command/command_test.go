package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/command"
	"github.com/xplm-go/xplm/xplmtest"
)

type countingHandler struct {
	begins    int
	continues int
	ends      int
	panicOn   string
}

func (h *countingHandler) CommandBegin(*command.Command) {
	h.begins++
	if h.panicOn == "begin" {
		panic("handler failure")
	}
}

func (h *countingHandler) CommandContinue(*command.Command) { h.continues++ }

func (h *countingHandler) CommandEnd(*command.Command) { h.ends++ }

func TestFind_MissReportsFalse(t *testing.T) {
	xplmtest.New(t)

	_, ok := command.Find("sim/not/a/command")
	assert.False(t, ok)
}

func TestFind_LocatesHostCommand(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddCommand("sim/lights/landing_lights_toggle", "Toggle landing lights")

	c, ok := command.Find("sim/lights/landing_lights_toggle")
	require.True(t, ok)
	assert.Equal(t, "sim/lights/landing_lights_toggle", c.Name())
}

func TestNew_CreateThenFind(t *testing.T) {
	xplmtest.New(t)

	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	found, ok := command.Find("fuelwatch/toggle_warning")
	require.True(t, ok)
	assert.Equal(t, c.Ref(), found.Ref())
}

func TestHandle_OncePerPhase(t *testing.T) {
	xplmtest.New(t)
	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	h := &countingHandler{}
	_, err = c.Handle(true, h)
	require.NoError(t, err)

	c.Once()
	assert.Equal(t, 1, h.begins)
	assert.Equal(t, 0, h.continues)
	assert.Equal(t, 1, h.ends)
}

func TestHandle_HeldCommandContinues(t *testing.T) {
	sim := xplmtest.New(t)
	c, err := command.New("fuelwatch/hold_to_dump", "Dump fuel while held")
	require.NoError(t, err)

	h := &countingHandler{}
	_, err = c.Handle(true, h)
	require.NoError(t, err)

	c.Begin()
	sim.AdvanceFrames(4, 0.05)
	c.End()

	assert.Equal(t, 1, h.begins)
	assert.Equal(t, 4, h.continues)
	assert.Equal(t, 1, h.ends)
}

func TestHandle_InhibitsDefaultProcessing(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddCommand("sim/autopilot/servos_toggle", "Toggle servos")

	c, ok := command.Find("sim/autopilot/servos_toggle")
	require.True(t, ok)
	_, err := c.Handle(true, &countingHandler{})
	require.NoError(t, err)

	c.Once()
	assert.Zero(t, sim.DefaultRuns("sim/autopilot/servos_toggle"))
}

func TestHandle_AfterHandlerObservesDefault(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddCommand("sim/autopilot/servos_toggle", "Toggle servos")

	c, ok := command.Find("sim/autopilot/servos_toggle")
	require.True(t, ok)
	h := &countingHandler{}
	_, err := c.Handle(false, h)
	require.NoError(t, err)

	c.Once()
	assert.Equal(t, 1, h.begins)
	assert.Equal(t, 1, sim.DefaultRuns("sim/autopilot/servos_toggle"))
}

func TestHandle_PanicFallsThroughToDefault(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddCommand("sim/autopilot/servos_toggle", "Toggle servos")

	c, ok := command.Find("sim/autopilot/servos_toggle")
	require.True(t, ok)
	_, err := c.Handle(true, &countingHandler{panicOn: "begin"})
	require.NoError(t, err)

	c.Once()

	// The begin phase panicked, so that phase fell through to the
	// simulator's own handling instead of being inhibited.
	assert.Equal(t, 1, sim.DefaultRuns("sim/autopilot/servos_toggle"))
	assert.Contains(t, sim.LogText(), "handler failure")
}

func TestRegistration_UnregisterIdempotent(t *testing.T) {
	sim := xplmtest.New(t)
	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	h := &countingHandler{}
	reg, err := c.Handle(true, h)
	require.NoError(t, err)

	c.Once()
	reg.Unregister()
	reg.Unregister()
	c.Once()

	assert.Equal(t, 1, h.begins)
	assert.Zero(t, sim.CommandHandlerCount())
}

func TestPressed_FiresOncePerPress(t *testing.T) {
	sim := xplmtest.New(t)
	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	presses := 0
	_, err = c.Handle(true, command.Pressed(func() { presses++ }))
	require.NoError(t, err)

	c.Once()
	c.Begin()
	sim.AdvanceFrames(3, 0.05)
	c.End()

	assert.Equal(t, 2, presses)
}

func TestHandlerFuncs_NilFieldsIgnored(t *testing.T) {
	xplmtest.New(t)
	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	ends := 0
	_, err = c.Handle(true, command.HandlerFuncs{End: func(*command.Command) { ends++ }})
	require.NoError(t, err)

	c.Once()
	assert.Equal(t, 1, ends)
}

func TestHandle_NilHandlerRejected(t *testing.T) {
	xplmtest.New(t)
	c, err := command.New("fuelwatch/toggle_warning", "Toggle the low-fuel warning")
	require.NoError(t, err)

	_, err = c.Handle(true, nil)
	assert.Error(t, err)
}
