package plugin_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/cleanup"
	"github.com/xplm-go/xplm/plugin"
	"github.com/xplm-go/xplm/xplmtest"
)

type testHandler struct {
	info      plugin.Info
	startErr  error
	enableErr error

	starts   int
	enables  int
	disables int
	stops    int

	panicIn string
	msgs    []plugin.Message
}

func (h *testHandler) Start() (plugin.Info, error) {
	h.starts++
	if h.panicIn == "Start" {
		panic("boom in Start")
	}
	return h.info, h.startErr
}

func (h *testHandler) Enable() error {
	h.enables++
	if h.panicIn == "Enable" {
		panic("boom in Enable")
	}
	return h.enableErr
}

func (h *testHandler) Disable() { h.disables++ }

func (h *testHandler) Stop() {
	h.stops++
	if h.panicIn == "Stop" {
		panic("boom in Stop")
	}
}

func (h *testHandler) ReceiveMessage(m plugin.Message) {
	if h.panicIn == "ReceiveMessage" {
		panic("boom in ReceiveMessage")
	}
	h.msgs = append(h.msgs, m)
}

// silentHandler implements only the required lifecycle surface.
type silentHandler struct{ started bool }

func (h *silentHandler) Start() (plugin.Info, error) {
	h.started = true
	return plugin.Info{Name: "Quiet", Signature: "com.example.quiet"}, nil
}
func (h *silentHandler) Enable() error { return nil }
func (h *silentHandler) Disable()      {}
func (h *silentHandler) Stop()         {}

func TestRegister_LifecycleOrder(t *testing.T) {
	sim := xplmtest.New(t)
	h := &testHandler{info: plugin.Info{
		Name:        "Fuel Watch",
		Signature:   "com.example.fuelwatch",
		Description: "Warns on low fuel",
	}}
	plugin.Register(h)

	require.True(t, sim.StartPlugin())
	require.True(t, sim.EnablePluginUnderTest())
	sim.DisablePluginUnderTest()
	sim.StopPlugin()

	assert.Equal(t, 1, h.starts)
	assert.Equal(t, 1, h.enables)
	assert.Equal(t, 1, h.disables)
	assert.Equal(t, 1, h.stops)
}

func TestRegister_StartReportsInfo(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{info: plugin.Info{
		Name:        "Fuel Watch",
		Signature:   "com.example.fuelwatch",
		Description: "Warns on low fuel",
	}})

	require.True(t, sim.StartPlugin())

	details, ok := plugin.Describe(plugin.Self())
	require.True(t, ok)
	assert.Equal(t, "Fuel Watch", details.Name)
	assert.Equal(t, "com.example.fuelwatch", details.Signature)
}

func TestRegister_LongInfoTruncatedAtHostBuffer(t *testing.T) {
	sim := xplmtest.New(t)
	long := strings.Repeat("x", 400)
	plugin.Register(&testHandler{info: plugin.Info{
		Name:      long,
		Signature: "com.example.long",
	}})

	require.True(t, sim.StartPlugin())

	details, ok := plugin.Describe(plugin.Self())
	require.True(t, ok)
	assert.Len(t, details.Name, 255)
	assert.Equal(t, long[:255], details.Name)
}

func TestRegister_StartErrorRefusesLoad(t *testing.T) {
	sim := xplmtest.New(t)
	h := &testHandler{startErr: errors.New("no aircraft config")}
	plugin.Register(h)

	assert.False(t, sim.StartPlugin())
	assert.Contains(t, sim.LogText(), "no aircraft config")
}

func TestRegister_PanicInStartContained(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{panicIn: "Start"})

	assert.False(t, sim.StartPlugin())
	assert.Contains(t, sim.LogText(), "boom in Start")
}

func TestRegister_EnableErrorReported(t *testing.T) {
	sim := xplmtest.New(t)
	h := &testHandler{enableErr: errors.New("device missing")}
	plugin.Register(h)

	require.True(t, sim.StartPlugin())
	assert.False(t, sim.EnablePluginUnderTest())
	assert.Contains(t, sim.LogText(), "device missing")
}

func TestRegister_PanicInEnableContained(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{panicIn: "Enable"})

	require.True(t, sim.StartPlugin())
	assert.False(t, sim.EnablePluginUnderTest())
	assert.Contains(t, sim.LogText(), "boom in Enable")
}

func TestRegister_StopDrainsTrackedResources(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{info: plugin.Info{Signature: "com.example.drain"}})
	require.True(t, sim.StartPlugin())

	released := false
	cleanup.Register(func() { released = true })

	sim.StopPlugin()
	assert.True(t, released)
}

func TestRegister_StopPanicStillDrains(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{panicIn: "Stop", info: plugin.Info{Signature: "com.example.drain"}})
	require.True(t, sim.StartPlugin())

	released := false
	cleanup.Register(func() { released = true })

	sim.StopPlugin()
	assert.True(t, released)
	assert.Contains(t, sim.LogText(), "boom in Stop")
}

func TestRegister_DuplicateIgnored(t *testing.T) {
	sim := xplmtest.New(t)
	first := &testHandler{info: plugin.Info{Signature: "com.example.first"}}
	second := &testHandler{info: plugin.Info{Signature: "com.example.second"}}
	plugin.Register(first)
	plugin.Register(second)

	require.True(t, sim.StartPlugin())

	assert.Equal(t, 1, first.starts)
	assert.Zero(t, second.starts)
	assert.Contains(t, sim.LogText(), "already registered")
}

func TestMessages_DeliveredToMessageHandler(t *testing.T) {
	sim := xplmtest.New(t)
	h := &testHandler{info: plugin.Info{Signature: "com.example.msg"}}
	plugin.Register(h)
	require.True(t, sim.StartPlugin())

	sim.Deliver(host.NoPlugin, plugin.MsgPlaneLoaded, 0)

	require.Len(t, h.msgs, 1)
	assert.Equal(t, plugin.NoPlugin, h.msgs[0].From)
	assert.Equal(t, plugin.MsgPlaneLoaded, h.msgs[0].ID)
}

func TestMessages_HandlerWithoutInterfaceSkipped(t *testing.T) {
	sim := xplmtest.New(t)
	h := &silentHandler{}
	plugin.Register(h)
	require.True(t, sim.StartPlugin())

	sim.Deliver(host.NoPlugin, plugin.MsgAirportLoaded, 0)
	// Nothing to assert beyond "did not blow up"; the handler has no
	// message hook to observe.
	assert.True(t, h.started)
}

func TestMessages_PanicInReceiveContained(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.Register(&testHandler{panicIn: "ReceiveMessage", info: plugin.Info{Signature: "com.example.msg"}})
	require.True(t, sim.StartPlugin())

	sim.Deliver(plugin.ID(3), 9001, 0)
	assert.Contains(t, sim.LogText(), "boom in ReceiveMessage")
}

func TestMessages_SendAndBroadcast(t *testing.T) {
	sim := xplmtest.New(t)

	other := sim.AddPlugin(host.PluginDetails{Signature: "com.example.other"}, true)
	plugin.Send(other, 9001, 42)
	plugin.Broadcast(9002, 0)

	msgs := sim.SentMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, other, msgs[0].To)
	assert.EqualValues(t, 9001, msgs[0].Msg)
	assert.EqualValues(t, 42, msgs[0].Param)
	assert.Equal(t, plugin.NoPlugin, msgs[1].To)
}

func TestDiscovery_FindAndDescribe(t *testing.T) {
	sim := xplmtest.New(t)
	id := sim.AddPlugin(host.PluginDetails{
		Name:      "Better Pushback",
		FilePath:  "/sim/Resources/plugins/bp/lin_x64/bp.xpl",
		Signature: "com.example.pushback",
	}, true)

	found, ok := plugin.FindBySignature("com.example.pushback")
	require.True(t, ok)
	assert.Equal(t, id, found)

	byPath, ok := plugin.FindByPath("/sim/Resources/plugins/bp/lin_x64/bp.xpl")
	require.True(t, ok)
	assert.Equal(t, id, byPath)

	_, ok = plugin.FindBySignature("com.example.absent")
	assert.False(t, ok)

	_, ok = plugin.Describe(plugin.ID(99))
	assert.False(t, ok)
}

func TestDiscovery_EnableDisable(t *testing.T) {
	sim := xplmtest.New(t)
	id := sim.AddPlugin(host.PluginDetails{Signature: "com.example.toggle"}, false)

	require.True(t, plugin.Enable(id))
	assert.True(t, plugin.IsEnabled(id))

	plugin.Disable(id)
	assert.False(t, plugin.IsEnabled(id))

	sim.RefuseEnable(id)
	assert.False(t, plugin.Enable(id))
}

func TestDiscovery_CountAndNth(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddPlugin(host.PluginDetails{Signature: "com.example.a"}, true)
	sim.AddPlugin(host.PluginDetails{Signature: "com.example.b"}, true)

	assert.Equal(t, 3, plugin.Count()) // the plugin under test plus two

	id, ok := plugin.Nth(2)
	require.True(t, ok)
	assert.Equal(t, plugin.ID(2), id)

	_, ok = plugin.Nth(3)
	assert.False(t, ok)
}

func TestFeatures_ProbeAndEnable(t *testing.T) {
	xplmtest.New(t)

	require.True(t, plugin.HasFeature(plugin.FeatureUseNativePaths))
	assert.False(t, plugin.FeatureEnabled(plugin.FeatureUseNativePaths))

	plugin.EnableFeature(plugin.FeatureUseNativePaths, true)
	assert.True(t, plugin.FeatureEnabled(plugin.FeatureUseNativePaths))

	assert.False(t, plugin.HasFeature(plugin.Feature("XPLM_NOT_A_FEATURE")))
}

func TestReloadAll_Requested(t *testing.T) {
	sim := xplmtest.New(t)
	plugin.ReloadAll()
	assert.Equal(t, 1, sim.PluginReloads())
}
