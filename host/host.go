// Package host defines the seam between the safety wrapper and the
// simulator process that loads the plugin.
//
// Host is a faithful, Go-typed rendition of the native plugin ABI: opaque
// handles stay opaque, lookups can miss, string results come back through
// the same length-then-fetch protocol the C side uses. Exactly one Host is
// active at a time. Inside the simulator that is the cgo bridge (build tag
// "xplm"); in tests it is the simulated host from package xplmtest. The
// packages one level up (plugin, menu, command, dataref, flightloop,
// utilities) add the checked types and lifetimes on top of this seam and
// are what plugin code is meant to import.
package host

import "sync"

// PluginAPI covers plugin discovery, state, and interplugin messaging.
type PluginAPI interface {
	// MyID returns the caller's own plugin ID.
	MyID() PluginID
	CountPlugins() int
	NthPlugin(i int) PluginID
	FindPluginByPath(path string) PluginID
	FindPluginBySignature(signature string) PluginID
	// PluginDetails reports the host's descriptive record for id. The
	// second result is false when the host does not know the ID.
	PluginDetails(id PluginID) (PluginDetails, bool)
	IsPluginEnabled(id PluginID) bool
	// EnablePlugin asks the host to enable id. The result is false when
	// the plugin refused to enable.
	EnablePlugin(id PluginID) bool
	DisablePlugin(id PluginID)
	// ReloadPlugins asks the host to restart the whole plugin system once
	// control returns to it.
	ReloadPlugins()
	// SendMessage delivers (msg, param) to id, or to every enabled plugin
	// when id is NoPlugin. Delivery is whatever the host provides.
	SendMessage(id PluginID, msg int32, param uintptr)
	HasFeature(name string) bool
	IsFeatureEnabled(name string) bool
	EnableFeature(name string, on bool)
}

// MenuAPI covers menu and menu-item management.
type MenuAPI interface {
	// PluginsMenu returns the host-owned menu plugins attach to.
	PluginsMenu() MenuID
	// AircraftMenu returns the menu of the loaded aircraft, or zero when
	// the caller is not allowed to touch it.
	AircraftMenu() MenuID
	// CreateMenu makes a new menu. For a top-level menu parentMenu is
	// zero and parentItem is ignored. fn receives the item token of the
	// picked item and may be nil for menus without selectable items.
	CreateMenu(name string, parentMenu MenuID, parentItem int, fn MenuFunc) MenuID
	DestroyMenu(menu MenuID)
	ClearAllMenuItems(menu MenuID)
	// AppendMenuItem adds an item and returns its index within the menu,
	// or a negative value on failure. item is handed back to the menu's
	// MenuFunc on selection.
	AppendMenuItem(menu MenuID, text string, item uintptr) int
	AppendMenuItemWithCommand(menu MenuID, text string, cmd CommandRef) int
	AppendMenuSeparator(menu MenuID)
	SetMenuItemName(menu MenuID, index int, text string)
	CheckMenuItem(menu MenuID, index int, check MenuCheck)
	MenuItemCheckState(menu MenuID, index int) MenuCheck
	EnableMenuItem(menu MenuID, index int, enabled bool)
	// RemoveMenuItem removes one item; the host renumbers every item
	// after it.
	RemoveMenuItem(menu MenuID, index int)
}

// CommandAPI covers named-command lookup, creation, triggering, and
// handler registration.
type CommandAPI interface {
	// FindCommand returns zero when no command has that name.
	FindCommand(name string) CommandRef
	CreateCommand(name, description string) CommandRef
	CommandOnce(cmd CommandRef)
	CommandBegin(cmd CommandRef)
	CommandEnd(cmd CommandRef)
	// RegisterCommandHandler attaches fn to cmd, before or after the
	// simulator's own handling.
	RegisterCommandHandler(cmd CommandRef, before bool, fn CommandFunc) HandlerToken
	UnregisterCommandHandler(token HandlerToken)
}

// DataAPI covers reading and writing published data accessors. Array reads
// with a nil destination report the host-side element count.
type DataAPI interface {
	// FindDataRef returns zero when no accessor has that name.
	FindDataRef(name string) DataRef
	IsDataRefGood(ref DataRef) bool
	CanWriteDataRef(ref DataRef) bool
	DataRefTypes(ref DataRef) DataTypeFlags
	GetDatai(ref DataRef) int32
	SetDatai(ref DataRef, v int32)
	GetDataf(ref DataRef) float32
	SetDataf(ref DataRef, v float32)
	GetDatad(ref DataRef) float64
	SetDatad(ref DataRef, v float64)
	// GetDatavi copies at most len(dst) elements starting at off into dst
	// and returns the number copied; with dst nil it returns the array's
	// total length.
	GetDatavi(ref DataRef, dst []int32, off int) int
	SetDatavi(ref DataRef, src []int32, off int)
	GetDatavf(ref DataRef, dst []float32, off int) int
	SetDatavf(ref DataRef, src []float32, off int)
	GetDatab(ref DataRef, dst []byte, off int) int
	SetDatab(ref DataRef, src []byte, off int)
	CountDataRefs() int
	DataRefsByIndex(from, count int) []DataRef
	// DataRefMeta reports the descriptive record for ref; false when the
	// host does not recognize the handle.
	DataRefMeta(ref DataRef) (DataRefMeta, bool)
}

// ProcessingAPI covers flight-loop callbacks and the host clock.
type ProcessingAPI interface {
	// CreateFlightLoop registers fn unscheduled and returns its handle,
	// or zero on failure.
	CreateFlightLoop(phase FlightLoopPhase, fn FlightLoopFunc) FlightLoopID
	DestroyFlightLoop(id FlightLoopID)
	// ScheduleFlightLoop arms id: interval > 0 is seconds, < 0 a loop
	// count, 0 deactivates. relativeToNow counts the interval from the
	// call instead of from the last callback time.
	ScheduleFlightLoop(id FlightLoopID, interval float32, relativeToNow bool)
	// ElapsedTime is the wall-clock seconds since the simulator started.
	// It keeps counting while paused.
	ElapsedTime() float32
	CycleNumber() int32
}

// UtilityAPI covers paths, the debug log, speech, versions, localization,
// data files, and error diagnostics.
type UtilityAPI interface {
	// PathLength reports the byte length of the named path so the caller
	// can size a buffer before fetching it with ReadPath.
	PathLength(kind PathKind) int
	// ReadPath copies the named path into buf and returns the number of
	// bytes written, at most len(buf).
	ReadPath(kind PathKind, buf []byte) int
	DirectorySeparator() string
	// DebugString appends s to the host's log file. The host flushes
	// immediately, so this is not free.
	DebugString(s string)
	SpeakString(s string)
	Versions() Versions
	Language() Language
	// LoadDataFile loads a situation or replay; an empty path clears the
	// current replay. The result reports whether the host accepted it.
	LoadDataFile(kind DataFileKind, path string) bool
	SaveDataFile(kind DataFileKind, path string) bool
	ReloadScenery()
	// SetErrorCallback installs a diagnostics callback for plugin API
	// misuse. Development aid only; it slows the host down.
	SetErrorCallback(fn ErrorFunc)
	VirtualKeyDescription(key byte) string
}

// Host is the complete native surface the wrapper builds on.
type Host interface {
	PluginAPI
	MenuAPI
	CommandAPI
	DataAPI
	ProcessingAPI
	UtilityAPI
}

var (
	mu     sync.RWMutex
	active Host = nullHost{}
)

// Set installs h as the active host. Passing nil restores the null host,
// against which lookups miss and creations fail. The bridge installs
// itself when the simulator starts the plugin; test hosts install
// themselves for the duration of a test.
func Set(h Host) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		active = nullHost{}
		return
	}
	active = h
}

// Active returns the currently installed host. It never returns nil.
func Active() Host {
	mu.RLock()
	defer mu.RUnlock()
	return active
}
