package xplmtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/host"
)

func TestSim_New_InstallsAndRestoresHost(t *testing.T) {
	before := host.Active()
	t.Run("inner", func(t *testing.T) {
		s := New(t)
		assert.Same(t, host.Host(s), host.Active())
	})
	assert.Equal(t, before, host.Active())
}

func TestSim_DataRefs_ScalarRoundTrip(t *testing.T) {
	s := NewDetached()
	ref := s.AddIntDataRef("sim/cockpit/electrical/landing_lights_on", true, 0)

	require.Equal(t, ref, s.FindDataRef("sim/cockpit/electrical/landing_lights_on"))
	assert.EqualValues(t, 0, s.GetDatai(ref))

	s.SetDatai(ref, 1)
	assert.EqualValues(t, 1, s.GetDatai(ref))
}

func TestSim_DataRefs_ReadOnlyWritesDropped(t *testing.T) {
	s := NewDetached()
	ref := s.AddFloatDataRef("sim/flightmodel/position/indicated_airspeed", false, 120)

	s.SetDataf(ref, 250)

	assert.EqualValues(t, 120, s.GetDataf(ref))
	assert.False(t, s.CanWriteDataRef(ref))
}

func TestSim_DataRefs_FloatDoubleCoupled(t *testing.T) {
	s := NewDetached()
	ref := s.AddDoubleDataRef("sim/flightmodel/position/latitude", true, 47.5)

	s.SetDatad(ref, 48.25)

	assert.EqualValues(t, 48.25, s.GetDatad(ref))
	assert.EqualValues(t, float32(48.25), s.GetDataf(ref))
}

func TestSim_DataRefs_ArrayLengthProbe(t *testing.T) {
	s := NewDetached()
	ref := s.AddFloatArrayDataRef("sim/flightmodel/engine/ENGN_thro", true, []float32{0.1, 0.2, 0.3, 0.4})

	assert.Equal(t, 4, s.GetDatavf(ref, nil, 0))

	dst := make([]float32, 2)
	n := s.GetDatavf(ref, dst, 1)
	require.Equal(t, 2, n)
	assert.Equal(t, []float32{0.2, 0.3}, dst)
}

func TestSim_DataRefs_MissReturnsZeroHandle(t *testing.T) {
	s := NewDetached()
	assert.EqualValues(t, 0, s.FindDataRef("sim/does/not/exist"))
	assert.False(t, s.IsDataRefGood(0))
}

func TestSim_Commands_CreateFindsExisting(t *testing.T) {
	s := NewDetached()
	a := s.CreateCommand("sim/lights/landing_lights_toggle", "Toggle landing lights")
	b := s.CreateCommand("sim/lights/landing_lights_toggle", "different description")
	assert.Equal(t, a, b)
}

func TestSim_Commands_BeforeHandlerInhibitsDefault(t *testing.T) {
	s := NewDetached()
	ref := s.AddCommand("sim/autopilot/servos_toggle", "Toggle servos")

	var phases []host.CommandPhase
	s.RegisterCommandHandler(ref, true, func(p host.CommandPhase) int {
		phases = append(phases, p)
		return 0
	})

	s.CommandOnce(ref)

	assert.Equal(t, []host.CommandPhase{host.CommandBegin, host.CommandEnd}, phases)
	assert.Zero(t, s.DefaultRuns("sim/autopilot/servos_toggle"))
}

func TestSim_Commands_PassThroughReachesDefault(t *testing.T) {
	s := NewDetached()
	ref := s.AddCommand("sim/autopilot/servos_toggle", "Toggle servos")

	s.RegisterCommandHandler(ref, true, func(host.CommandPhase) int { return 1 })
	s.CommandOnce(ref)

	assert.Equal(t, 1, s.DefaultRuns("sim/autopilot/servos_toggle"))
}

func TestSim_Commands_HeldCommandContinuesEachFrame(t *testing.T) {
	s := NewDetached()
	ref := s.AddCommand("sim/engines/starter_1", "Engage starter 1")

	var continues int
	s.RegisterCommandHandler(ref, true, func(p host.CommandPhase) int {
		if p == host.CommandContinue {
			continues++
		}
		return 1
	})

	s.CommandBegin(ref)
	s.AdvanceFrames(3, 0.05)
	s.CommandEnd(ref)
	s.Advance(0.05)

	assert.Equal(t, 3, continues)
}

func TestSim_Commands_UnregisterStopsDispatch(t *testing.T) {
	s := NewDetached()
	ref := s.AddCommand("sim/view/forward_with_hud", "Forward with HUD")

	calls := 0
	token := s.RegisterCommandHandler(ref, true, func(host.CommandPhase) int {
		calls++
		return 1
	})
	s.CommandOnce(ref)
	s.UnregisterCommandHandler(token)
	s.CommandOnce(ref)

	assert.Equal(t, 2, calls) // begin+end from the first trigger only
	assert.Zero(t, s.CommandHandlerCount())
}

func TestSim_Menus_RemoveRenumbers(t *testing.T) {
	s := NewDetached()
	id := s.CreateMenu("My Plugin", 0, 0, nil)
	require.NotZero(t, id)

	s.AppendMenuItem(id, "First", 0)
	s.AppendMenuItem(id, "Second", 1)
	s.AppendMenuItem(id, "Third", 2)

	s.RemoveMenuItem(id, 0)

	assert.Equal(t, []string{"Second", "Third"}, s.MenuItems(id))
}

func TestSim_Menus_ChooseItemFiresCallbackWithToken(t *testing.T) {
	s := NewDetached()
	var picked []uintptr
	id := s.CreateMenu("My Plugin", 0, 0, func(item uintptr) {
		picked = append(picked, item)
	})
	s.AppendMenuItem(id, "Show", 7)
	s.AppendMenuItem(id, "Hide", 9)

	s.ChooseMenuItem(id, 1)

	assert.Equal(t, []uintptr{9}, picked)
}

func TestSim_Menus_CommandItemTriggersCommand(t *testing.T) {
	s := NewDetached()
	cmd := s.AddCommand("sim/map/show_toggle", "Toggle map")
	id := s.CreateMenu("My Plugin", 0, 0, nil)
	require.GreaterOrEqual(t, s.AppendMenuItemWithCommand(id, "Map", cmd), 0)

	s.ChooseMenuItem(id, 0)

	assert.Equal(t, 1, s.DefaultRuns("sim/map/show_toggle"))
}

func TestSim_Menus_DestroyedMenuRejectsItems(t *testing.T) {
	s := NewDetached()
	id := s.CreateMenu("My Plugin", 0, 0, nil)
	s.DestroyMenu(id)

	assert.Equal(t, -1, s.AppendMenuItem(id, "late", 0))
	assert.Zero(t, s.OpenMenus())
}

func TestSim_FlightLoops_IntervalSchedule(t *testing.T) {
	s := NewDetached()
	var calls int
	id := s.CreateFlightLoop(host.AfterFlightModel, func(sinceCall, sinceLoop float32, counter int32) float32 {
		calls++
		return 1.0
	})
	s.ScheduleFlightLoop(id, 1.0, true)

	s.AdvanceFrames(9, 0.25) // t=2.25: due at 1.0 and 2.0
	assert.Equal(t, 2, calls)
}

func TestSim_FlightLoops_CycleSchedule(t *testing.T) {
	s := NewDetached()
	var calls int
	id := s.CreateFlightLoop(host.BeforeFlightModel, func(_, _ float32, _ int32) float32 {
		calls++
		return -2 // every second frame
	})
	s.ScheduleFlightLoop(id, -1, true)

	s.AdvanceFrames(5, 0.1)
	assert.Equal(t, 3, calls) // frames 1, 3, 5
}

func TestSim_FlightLoops_ZeroReturnParks(t *testing.T) {
	s := NewDetached()
	var calls int
	id := s.CreateFlightLoop(host.AfterFlightModel, func(_, _ float32, _ int32) float32 {
		calls++
		return 0
	})
	s.ScheduleFlightLoop(id, 0.1, true)

	s.AdvanceFrames(5, 0.1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.OpenFlightLoops()) // parked, not destroyed
}

func TestSim_FlightLoops_TimingArguments(t *testing.T) {
	s := NewDetached()
	var sinceCalls []float32
	id := s.CreateFlightLoop(host.AfterFlightModel, func(sinceCall, _ float32, _ int32) float32 {
		sinceCalls = append(sinceCalls, sinceCall)
		return 0.5
	})
	s.ScheduleFlightLoop(id, 0.5, true)

	s.AdvanceFrames(4, 0.25)

	require.Len(t, sinceCalls, 2)
	assert.InDelta(t, 0.5, sinceCalls[0], 1e-6)
	assert.InDelta(t, 0.5, sinceCalls[1], 1e-6)
}

func TestSim_FlightLoops_RescheduleDuringCallbackTakesNextFrame(t *testing.T) {
	s := NewDetached()
	outer := 0
	inner := 0
	var innerID host.FlightLoopID
	id := s.CreateFlightLoop(host.AfterFlightModel, func(_, _ float32, _ int32) float32 {
		outer++
		if innerID == 0 {
			innerID = s.CreateFlightLoop(host.AfterFlightModel, func(_, _ float32, _ int32) float32 {
				inner++
				return -1
			})
			s.ScheduleFlightLoop(innerID, -1, true)
		}
		return -1
	})
	s.ScheduleFlightLoop(id, -1, true)

	s.Advance(0.1)
	assert.Equal(t, 1, outer)
	assert.Zero(t, inner) // created mid-frame, runs from the next one

	s.Advance(0.1)
	assert.Equal(t, 2, outer)
	assert.Equal(t, 1, inner)
}

func TestSim_Discovery_FindBySignature(t *testing.T) {
	s := NewDetached()
	id := s.AddPlugin(host.PluginDetails{
		Name:      "Better Pushback",
		FilePath:  "/sim/Resources/plugins/bp/lin_x64/bp.xpl",
		Signature: "com.example.pushback",
	}, true)

	found := s.FindPluginBySignature("com.example.pushback")
	assert.Equal(t, id, found)
	assert.True(t, s.IsPluginEnabled(found))

	assert.Equal(t, host.NoPlugin, s.FindPluginBySignature("com.example.absent"))
}

func TestSim_Features_UnknownIgnored(t *testing.T) {
	s := NewDetached()

	assert.True(t, s.HasFeature("XPLM_USE_NATIVE_PATHS"))
	s.EnableFeature("XPLM_USE_NATIVE_PATHS", true)
	assert.True(t, s.IsFeatureEnabled("XPLM_USE_NATIVE_PATHS"))

	assert.False(t, s.HasFeature("XPLM_FANCY_FUTURE_FEATURE"))
	s.EnableFeature("XPLM_FANCY_FUTURE_FEATURE", true)
	assert.False(t, s.IsFeatureEnabled("XPLM_FANCY_FUTURE_FEATURE"))
}

func TestSim_Paths_TwoCallProtocol(t *testing.T) {
	s := NewDetached()
	s.SetPaths("/opt/X-Plane 12/", "/opt/X-Plane 12/Output/preferences/")

	n := s.PathLength(host.PathSystem)
	buf := make([]byte, n)
	require.Equal(t, n, s.ReadPath(host.PathSystem, buf))
	assert.Equal(t, "/opt/X-Plane 12/", string(buf))
}

func TestSim_Log_CapturesDebugOutput(t *testing.T) {
	s := NewDetached()
	s.DebugString("line one\n")
	s.DebugString("line two\n")

	assert.Equal(t, []string{"line one", "line two"}, s.LogLines())
}
