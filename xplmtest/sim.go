// Package xplmtest provides a simulated host for testing plugin code
// without the simulator.
//
// New installs a fresh Sim as the active host for the duration of a test.
// Plugin code under test then talks to the Sim through the same seam it
// would use in production, and the test drives time, commands, menus, and
// lifecycle from the outside:
//
//	func TestFuelWarning(t *testing.T) {
//		sim := xplmtest.New(t)
//		sim.AddFloatDataRef("sim/flightmodel/weight/m_fuel_total", true, 40)
//		...
//		sim.Advance(1)
//	}
//
// A Sim replays the host's documented quirks deterministically: lookups
// miss, menu indices renumber on removal, flight loops reschedule from
// their return values, unhandled commands fall through to default
// processing. The active host is process-global, so tests using a Sim must
// not run in parallel.
package xplmtest

import (
	"strings"
	"testing"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/lifecycle"
)

// Sim is an in-memory host. The zero value is not usable; construct with
// New or NewDetached.
type Sim struct {
	t testing.TB

	plugins  []*simPlugin
	sent     []SentMessage
	features map[string]bool
	reloads  int

	menus      []*simMenu
	nextMenuID uintptr

	commands  []*simCommand
	nextToken uintptr

	datarefs []*simDataRef

	loops      []*simFlightLoop
	nextLoopID uintptr
	elapsed    float32
	cycle      int32
	lastBatch  float32

	systemPath string
	prefsPath  string
	separator  string

	log     strings.Builder
	spoken  []string
	version host.Versions
	lang    host.Language

	dataFileOK   bool
	dataFileOps  []DataFileOp
	sceneryLoads int
	errFn        host.ErrorFunc
}

// SentMessage records one SendMessage call, broadcast or directed.
type SentMessage struct {
	To    host.PluginID
	Msg   int32
	Param uintptr
}

// DataFileOp records one LoadDataFile or SaveDataFile call.
type DataFileOp struct {
	Save bool
	Kind host.DataFileKind
	Path string
}

// New builds a Sim, installs it as the active host, and undoes both the
// installation and any plugin registration when the test finishes.
func New(t testing.TB) *Sim {
	t.Helper()
	s := NewDetached()
	s.t = t
	host.Set(s)
	t.Cleanup(func() {
		host.Set(nil)
		lifecycle.Reset()
	})
	return s
}

// NewDetached builds a Sim without installing it, for callers that manage
// host.Set themselves.
func NewDetached() *Sim {
	s := &Sim{
		features: map[string]bool{
			"XPLM_WANTS_REFLECTIONS":           false,
			"XPLM_USE_NATIVE_PATHS":            false,
			"XPLM_USE_NATIVE_WIDGET_WINDOWS":   false,
			"XPLM_WANTS_DATAREF_NOTIFICATIONS": false,
		},
		systemPath: "/home/user/X-Plane 12/",
		prefsPath:  "/home/user/X-Plane 12/Output/preferences/Set X-Plane.prf",
		separator:  "/",
		version:    host.Versions{XPlane: 12110, XPLM: 411, HostID: host.HostXPlane},
		lang:       host.LangEnglish,
		dataFileOK: true,
	}
	// ID 0 is the plugin under test; its details are filled in by
	// StartPlugin from whatever the registered handler reports.
	s.plugins = append(s.plugins, &simPlugin{
		details: host.PluginDetails{
			Name:      "Plugin Under Test",
			FilePath:  "/home/user/X-Plane 12/Resources/plugins/test/lin_x64/test.xpl",
			Signature: "com.example.under-test",
		},
	})
	s.menus = []*simMenu{
		{id: host.MenuID(1), name: "Plugins", builtin: true},
		{id: host.MenuID(2), name: "Aircraft", builtin: true},
	}
	s.nextMenuID = 3
	return s
}

// Host buffer size for plugin info strings, including the terminator.
const infoBufferLen = 256

func clipInfo(s string) string {
	if len(s) >= infoBufferLen {
		return s[:infoBufferLen-1]
	}
	return s
}

// StartPlugin drives the registered handler's Start callback the way the
// simulator does at load, capturing the reported info with the same
// 256-byte truncation the native buffers apply. It reports whether the
// plugin accepted the load.
func (s *Sim) StartPlugin() bool {
	cb := lifecycle.Installed()
	if cb == nil {
		s.fatalf("StartPlugin: no handler registered")
		return false
	}
	name, signature, description, ok := cb.Start()
	self := s.plugins[0]
	self.details.Name = clipInfo(name)
	self.details.Signature = clipInfo(signature)
	self.details.Description = clipInfo(description)
	return ok
}

// StopPlugin drives the registered handler's Stop callback.
func (s *Sim) StopPlugin() {
	if cb := lifecycle.Installed(); cb != nil {
		cb.Stop()
	}
}

// EnablePluginUnderTest drives the Enable callback and reports whether
// the plugin accepted.
func (s *Sim) EnablePluginUnderTest() bool {
	cb := lifecycle.Installed()
	if cb == nil {
		s.fatalf("EnablePluginUnderTest: no handler registered")
		return false
	}
	ok := cb.Enable()
	s.plugins[0].enabled = ok
	return ok
}

// DisablePluginUnderTest drives the Disable callback.
func (s *Sim) DisablePluginUnderTest() {
	if cb := lifecycle.Installed(); cb != nil {
		cb.Disable()
	}
	s.plugins[0].enabled = false
}

// Deliver hands an interplugin message to the registered handler, as the
// simulator would. Use host.NoPlugin as from for simulator-originated
// messages.
func (s *Sim) Deliver(from host.PluginID, msg int32, param uintptr) {
	if cb := lifecycle.Installed(); cb != nil {
		cb.ReceiveMessage(int32(from), msg, param)
	}
}

func (s *Sim) fatalf(format string, args ...any) {
	if s.t != nil {
		s.t.Helper()
		s.t.Fatalf(format, args...)
		return
	}
	panic("xplmtest: " + format)
}

// SetPaths overrides the system and preferences paths reported to the
// plugin. The defaults mimic a Linux install.
func (s *Sim) SetPaths(system, prefs string) {
	s.systemPath = system
	s.prefsPath = prefs
}

// SetVersions overrides the version record reported to the plugin.
func (s *Sim) SetVersions(v host.Versions) { s.version = v }

// SetLanguage overrides the simulator language reported to the plugin.
func (s *Sim) SetLanguage(l host.Language) { s.lang = l }

// FailDataFiles makes subsequent LoadDataFile and SaveDataFile calls
// report failure.
func (s *Sim) FailDataFiles() { s.dataFileOK = false }

// PathLength implements host.UtilityAPI.
func (s *Sim) PathLength(kind host.PathKind) int {
	return len(s.pathFor(kind))
}

// ReadPath implements host.UtilityAPI.
func (s *Sim) ReadPath(kind host.PathKind, buf []byte) int {
	return copy(buf, s.pathFor(kind))
}

func (s *Sim) pathFor(kind host.PathKind) string {
	if kind == host.PathPrefs {
		return s.prefsPath
	}
	return s.systemPath
}

// DirectorySeparator implements host.UtilityAPI.
func (s *Sim) DirectorySeparator() string { return s.separator }

// DebugString implements host.UtilityAPI, capturing the text for LogText.
func (s *Sim) DebugString(str string) {
	s.log.WriteString(str)
}

// LogText returns everything written to the simulated Log.txt so far.
func (s *Sim) LogText() string { return s.log.String() }

// LogLines returns the completed lines of the simulated Log.txt.
func (s *Sim) LogLines() []string {
	text := strings.TrimSuffix(s.log.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// SpeakString implements host.UtilityAPI, capturing the text for Spoken.
func (s *Sim) SpeakString(str string) {
	s.spoken = append(s.spoken, str)
}

// Spoken returns every string passed to SpeakString.
func (s *Sim) Spoken() []string { return s.spoken }

// Versions implements host.UtilityAPI.
func (s *Sim) Versions() host.Versions { return s.version }

// Language implements host.UtilityAPI.
func (s *Sim) Language() host.Language { return s.lang }

// LoadDataFile implements host.UtilityAPI, recording the request.
func (s *Sim) LoadDataFile(kind host.DataFileKind, path string) bool {
	s.dataFileOps = append(s.dataFileOps, DataFileOp{Kind: kind, Path: path})
	return s.dataFileOK
}

// SaveDataFile implements host.UtilityAPI, recording the request.
func (s *Sim) SaveDataFile(kind host.DataFileKind, path string) bool {
	s.dataFileOps = append(s.dataFileOps, DataFileOp{Save: true, Kind: kind, Path: path})
	return s.dataFileOK
}

// DataFileOps returns every load and save request in order.
func (s *Sim) DataFileOps() []DataFileOp { return s.dataFileOps }

// ReloadScenery implements host.UtilityAPI.
func (s *Sim) ReloadScenery() { s.sceneryLoads++ }

// SceneryReloads returns how many times ReloadScenery was called.
func (s *Sim) SceneryReloads() int { return s.sceneryLoads }

// SetErrorCallback implements host.UtilityAPI.
func (s *Sim) SetErrorCallback(fn host.ErrorFunc) { s.errFn = fn }

// RaiseError invokes the installed error callback, if any, as the
// simulator does when a plugin misuses the API.
func (s *Sim) RaiseError(msg string) {
	if s.errFn != nil {
		s.errFn(msg)
	}
}

// VirtualKeyDescription implements host.UtilityAPI.
func (s *Sim) VirtualKeyDescription(key byte) string {
	return virtualKeys[key]
}

var virtualKeys = map[byte]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0D: "Enter",
	0x1B: "Escape",
	0x20: "Space",
	0x25: "Left",
	0x26: "Up",
	0x27: "Right",
	0x28: "Down",
	0x30: "0",
	0x41: "A",
	0x42: "B",
	0x70: "F1",
	0x71: "F2",
}
