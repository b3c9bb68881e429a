package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/command"
	"github.com/xplm-go/xplm/flightloop"
	"github.com/xplm-go/xplm/menu"
	"github.com/xplm-go/xplm/plugin"
	"github.com/xplm-go/xplm/xplmtest"
)

// resourceful creates one of everything the wrapper tracks and never
// cleans up, leaving the release to the stop path.
type resourceful struct {
	loopCalls int
}

func (h *resourceful) Start() (plugin.Info, error) {
	m, err := menu.New("Resourceful")
	if err != nil {
		return plugin.Info{}, err
	}
	if _, err := m.AddItem("Noop", func() {}); err != nil {
		return plugin.Info{}, err
	}
	if _, err := m.Submenu("More"); err != nil {
		return plugin.Info{}, err
	}

	c, err := command.New("resourceful/do", "Do the thing")
	if err != nil {
		return plugin.Info{}, err
	}
	if _, err := c.Handle(true, command.Pressed(func() {})); err != nil {
		return plugin.Info{}, err
	}

	loop, err := flightloop.New(flightloop.AfterFlightModel, func(flightloop.Timing) flightloop.Next {
		h.loopCalls++
		return flightloop.NextLoop()
	})
	if err != nil {
		return plugin.Info{}, err
	}
	if err := loop.Schedule(flightloop.Now()); err != nil {
		return plugin.Info{}, err
	}

	return plugin.Info{Name: "Resourceful", Signature: "com.example.resourceful"}, nil
}

func (h *resourceful) Enable() error { return nil }
func (h *resourceful) Disable()      {}
func (h *resourceful) Stop()         {}

func TestStop_ReleasesEverythingTheWrapperTracks(t *testing.T) {
	sim := xplmtest.New(t)
	h := &resourceful{}
	plugin.Register(h)

	require.True(t, sim.StartPlugin())
	require.True(t, sim.EnablePluginUnderTest())

	sim.AdvanceFrames(2, 0.1)
	require.Equal(t, 2, h.loopCalls)
	require.Equal(t, 2, sim.OpenMenus()) // menu plus submenu
	require.Equal(t, 1, sim.CommandHandlerCount())
	require.Equal(t, 1, sim.OpenFlightLoops())

	sim.DisablePluginUnderTest()
	sim.StopPlugin()

	assert.Zero(t, sim.OpenMenus())
	assert.Zero(t, sim.CommandHandlerCount())
	assert.Zero(t, sim.OpenFlightLoops())
	assert.Empty(t, sim.MenuItems(sim.PluginsMenu()))

	// The parked world stays quiet.
	sim.AdvanceFrames(2, 0.1)
	assert.Equal(t, 2, h.loopCalls)
}