//go:build xplm

// The cgo bridge: the Host implementation backed by the real simulator.
// Building it needs the plugin SDK headers on the include path, e.g.
//
//	CGO_CFLAGS="-I/path/to/SDK/CHeaders/XPLM" \
//	go build -tags xplm -buildmode=c-shared -o lin_x64/plugin.xpl ./...
//
// Without the xplm tag the module compiles against the null host instead,
// which is what tests and tooling use.

package host

/*
#cgo linux CFLAGS: -DLIN=1
#cgo darwin CFLAGS: -DAPL=1
#cgo windows CFLAGS: -DIBM=1
#cgo CFLAGS: -DXPLM200=1 -DXPLM210=1 -DXPLM300=1 -DXPLM301=1 -DXPLM303=1 -DXPLM400=1
#cgo darwin LDFLAGS: -F/System/Library/Frameworks -framework XPLM
#cgo windows LDFLAGS: -lXPLM_64

#include <stdlib.h>
#include <string.h>
#include <XPLMDefs.h>
#include <XPLMPlugin.h>
#include <XPLMMenus.h>
#include <XPLMUtilities.h>
#include <XPLMDataAccess.h>
#include <XPLMProcessing.h>

extern void goMenuHandler(void *menuRef, void *itemRef);
extern int goCommandHandler(void *cmd, int phase, void *refcon);
extern float goFlightLoop(float sinceCall, float sinceLoop, int counter, void *refcon);
extern void goErrorCallback(const char *msg);

static XPLMMenuID bridgeCreateMenu(const char *name, XPLMMenuID parent, int parentItem, void *menuRef) {
	return XPLMCreateMenu(name, parent, parentItem, (XPLMMenuHandler_f)goMenuHandler, menuRef);
}

static void bridgeRegisterCommandHandler(XPLMCommandRef cmd, int before, void *refcon) {
	XPLMRegisterCommandHandler(cmd, (XPLMCommandCallback_f)goCommandHandler, before, refcon);
}

static void bridgeUnregisterCommandHandler(XPLMCommandRef cmd, int before, void *refcon) {
	XPLMUnregisterCommandHandler(cmd, (XPLMCommandCallback_f)goCommandHandler, before, refcon);
}

static XPLMFlightLoopID bridgeCreateFlightLoop(XPLMFlightLoopPhaseType phase, void *refcon) {
	XPLMCreateFlightLoop_t params;
	params.structSize = sizeof(params);
	params.phase = phase;
	params.callbackFunc = (XPLMFlightLoop_f)goFlightLoop;
	params.refcon = refcon;
	return XPLMCreateFlightLoop(&params);
}

static void bridgeSetErrorCallback(void) {
	XPLMSetErrorCallback((XPLMError_f)goErrorCallback);
}

static void bridgeDataRefInfo(XPLMDataRef ref, XPLMDataRefInfo_t *out) {
	out->structSize = sizeof(*out);
	XPLMGetDataRefInfo(ref, out);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/xplm-go/xplm/internal/handles"
)

// commandEntry remembers enough to unregister: the native API keys a
// handler by the (command, callback, before, refcon) quadruple.
type commandEntry struct {
	cmd    CommandRef
	before bool
	fn     CommandFunc
}

var (
	menuFuncs       = handles.NewRegistry[MenuFunc]()
	commandHandlers = handles.NewRegistry[commandEntry]()
	loopFuncs       = handles.NewRegistry[FlightLoopFunc]()

	// menuTokens and loopTokens tie host handles back to their refcon
	// tokens so destroy releases the registry entry too.
	tokenMu    sync.Mutex
	menuTokens = map[MenuID]uintptr{}
	loopTokens = map[FlightLoopID]uintptr{}

	errorMu        sync.Mutex
	errorFn        ErrorFunc
	errorInstalled bool
)

// bridge is the Host backed by the simulator that loaded this library.
type bridge struct{}

func init() {
	Set(bridge{})
}

func cstr(s string) *C.char { return C.CString(s) }

func freestr(p *C.char) { C.free(unsafe.Pointer(p)) }

func cMenu(m MenuID) C.XPLMMenuID { return C.XPLMMenuID(unsafe.Pointer(m)) }

func cCommand(c CommandRef) C.XPLMCommandRef { return C.XPLMCommandRef(unsafe.Pointer(c)) }

func cData(d DataRef) C.XPLMDataRef { return C.XPLMDataRef(unsafe.Pointer(d)) }

func cLoop(l FlightLoopID) C.XPLMFlightLoopID { return C.XPLMFlightLoopID(unsafe.Pointer(l)) }

const pluginInfoLen = 256

// MyID implements PluginAPI.
func (bridge) MyID() PluginID { return PluginID(C.XPLMGetMyID()) }

// CountPlugins implements PluginAPI.
func (bridge) CountPlugins() int { return int(C.XPLMCountPlugins()) }

// NthPlugin implements PluginAPI.
func (bridge) NthPlugin(i int) PluginID { return PluginID(C.XPLMGetNthPlugin(C.int(i))) }

// FindPluginByPath implements PluginAPI.
func (bridge) FindPluginByPath(path string) PluginID {
	cs := cstr(path)
	defer freestr(cs)
	return PluginID(C.XPLMFindPluginByPath(cs))
}

// FindPluginBySignature implements PluginAPI.
func (bridge) FindPluginBySignature(signature string) PluginID {
	cs := cstr(signature)
	defer freestr(cs)
	return PluginID(C.XPLMFindPluginBySignature(cs))
}

// PluginDetails implements PluginAPI.
func (bridge) PluginDetails(id PluginID) (PluginDetails, bool) {
	if !id.Valid() || id >= PluginID(C.XPLMCountPlugins()) {
		return PluginDetails{}, false
	}
	var name, path, sig, desc [pluginInfoLen]C.char
	C.XPLMGetPluginInfo(C.XPLMPluginID(id), &name[0], &path[0], &sig[0], &desc[0])
	return PluginDetails{
		Name:        C.GoString(&name[0]),
		FilePath:    C.GoString(&path[0]),
		Signature:   C.GoString(&sig[0]),
		Description: C.GoString(&desc[0]),
	}, true
}

// IsPluginEnabled implements PluginAPI.
func (bridge) IsPluginEnabled(id PluginID) bool {
	return C.XPLMIsPluginEnabled(C.XPLMPluginID(id)) != 0
}

// EnablePlugin implements PluginAPI.
func (bridge) EnablePlugin(id PluginID) bool {
	return C.XPLMEnablePlugin(C.XPLMPluginID(id)) != 0
}

// DisablePlugin implements PluginAPI.
func (bridge) DisablePlugin(id PluginID) { C.XPLMDisablePlugin(C.XPLMPluginID(id)) }

// ReloadPlugins implements PluginAPI.
func (bridge) ReloadPlugins() { C.XPLMReloadPlugins() }

// SendMessage implements PluginAPI.
func (bridge) SendMessage(id PluginID, msg int32, param uintptr) {
	C.XPLMSendMessageToPlugin(C.XPLMPluginID(id), C.int(msg), unsafe.Pointer(param))
}

// HasFeature implements PluginAPI.
func (bridge) HasFeature(name string) bool {
	cs := cstr(name)
	defer freestr(cs)
	return C.XPLMHasFeature(cs) != 0
}

// IsFeatureEnabled implements PluginAPI.
func (bridge) IsFeatureEnabled(name string) bool {
	cs := cstr(name)
	defer freestr(cs)
	return C.XPLMIsFeatureEnabled(cs) != 0
}

// EnableFeature implements PluginAPI.
func (bridge) EnableFeature(name string, on bool) {
	cs := cstr(name)
	defer freestr(cs)
	v := C.int(0)
	if on {
		v = 1
	}
	C.XPLMEnableFeature(cs, v)
}

// PluginsMenu implements MenuAPI.
func (bridge) PluginsMenu() MenuID {
	return MenuID(uintptr(unsafe.Pointer(C.XPLMFindPluginsMenu())))
}

// AircraftMenu implements MenuAPI.
func (bridge) AircraftMenu() MenuID {
	return MenuID(uintptr(unsafe.Pointer(C.XPLMFindAircraftMenu())))
}

// CreateMenu implements MenuAPI.
func (bridge) CreateMenu(name string, parentMenu MenuID, parentItem int, fn MenuFunc) MenuID {
	cs := cstr(name)
	defer freestr(cs)
	var token uintptr
	if fn != nil {
		token = menuFuncs.Put(fn)
	}
	id := C.bridgeCreateMenu(cs, cMenu(parentMenu), C.int(parentItem), unsafe.Pointer(token))
	menu := MenuID(uintptr(unsafe.Pointer(id)))
	if menu == 0 {
		menuFuncs.Delete(token)
		return 0
	}
	if token != 0 {
		tokenMu.Lock()
		menuTokens[menu] = token
		tokenMu.Unlock()
	}
	return menu
}

// DestroyMenu implements MenuAPI.
func (bridge) DestroyMenu(menu MenuID) {
	C.XPLMDestroyMenu(cMenu(menu))
	tokenMu.Lock()
	token := menuTokens[menu]
	delete(menuTokens, menu)
	tokenMu.Unlock()
	menuFuncs.Delete(token)
}

// ClearAllMenuItems implements MenuAPI.
func (bridge) ClearAllMenuItems(menu MenuID) { C.XPLMClearAllMenuItems(cMenu(menu)) }

// AppendMenuItem implements MenuAPI.
func (bridge) AppendMenuItem(menu MenuID, text string, item uintptr) int {
	cs := cstr(text)
	defer freestr(cs)
	return int(C.XPLMAppendMenuItem(cMenu(menu), cs, unsafe.Pointer(item), 0))
}

// AppendMenuItemWithCommand implements MenuAPI.
func (bridge) AppendMenuItemWithCommand(menu MenuID, text string, cmd CommandRef) int {
	cs := cstr(text)
	defer freestr(cs)
	return int(C.XPLMAppendMenuItemWithCommand(cMenu(menu), cs, cCommand(cmd)))
}

// AppendMenuSeparator implements MenuAPI.
func (bridge) AppendMenuSeparator(menu MenuID) { C.XPLMAppendMenuSeparator(cMenu(menu)) }

// SetMenuItemName implements MenuAPI.
func (bridge) SetMenuItemName(menu MenuID, index int, text string) {
	cs := cstr(text)
	defer freestr(cs)
	C.XPLMSetMenuItemName(cMenu(menu), C.int(index), cs, 0)
}

// CheckMenuItem implements MenuAPI.
func (bridge) CheckMenuItem(menu MenuID, index int, check MenuCheck) {
	C.XPLMCheckMenuItem(cMenu(menu), C.int(index), C.XPLMMenuCheck(check))
}

// MenuItemCheckState implements MenuAPI.
func (bridge) MenuItemCheckState(menu MenuID, index int) MenuCheck {
	var out C.XPLMMenuCheck
	C.XPLMCheckMenuItemState(cMenu(menu), C.int(index), &out)
	return MenuCheck(out)
}

// EnableMenuItem implements MenuAPI.
func (bridge) EnableMenuItem(menu MenuID, index int, enabled bool) {
	v := C.int(0)
	if enabled {
		v = 1
	}
	C.XPLMEnableMenuItem(cMenu(menu), C.int(index), v)
}

// RemoveMenuItem implements MenuAPI.
func (bridge) RemoveMenuItem(menu MenuID, index int) {
	C.XPLMRemoveMenuItem(cMenu(menu), C.int(index))
}

// FindCommand implements CommandAPI.
func (bridge) FindCommand(name string) CommandRef {
	cs := cstr(name)
	defer freestr(cs)
	return CommandRef(uintptr(unsafe.Pointer(C.XPLMFindCommand(cs))))
}

// CreateCommand implements CommandAPI.
func (bridge) CreateCommand(name, description string) CommandRef {
	cn := cstr(name)
	defer freestr(cn)
	cd := cstr(description)
	defer freestr(cd)
	return CommandRef(uintptr(unsafe.Pointer(C.XPLMCreateCommand(cn, cd))))
}

// CommandOnce implements CommandAPI.
func (bridge) CommandOnce(cmd CommandRef) { C.XPLMCommandOnce(cCommand(cmd)) }

// CommandBegin implements CommandAPI.
func (bridge) CommandBegin(cmd CommandRef) { C.XPLMCommandBegin(cCommand(cmd)) }

// CommandEnd implements CommandAPI.
func (bridge) CommandEnd(cmd CommandRef) { C.XPLMCommandEnd(cCommand(cmd)) }

// RegisterCommandHandler implements CommandAPI.
func (bridge) RegisterCommandHandler(cmd CommandRef, before bool, fn CommandFunc) HandlerToken {
	if fn == nil {
		return 0
	}
	token := commandHandlers.Put(commandEntry{cmd: cmd, before: before, fn: fn})
	b := C.int(0)
	if before {
		b = 1
	}
	C.bridgeRegisterCommandHandler(cCommand(cmd), b, unsafe.Pointer(token))
	return HandlerToken(token)
}

// UnregisterCommandHandler implements CommandAPI.
func (bridge) UnregisterCommandHandler(token HandlerToken) {
	entry, ok := commandHandlers.Get(uintptr(token))
	if !ok {
		return
	}
	b := C.int(0)
	if entry.before {
		b = 1
	}
	C.bridgeUnregisterCommandHandler(cCommand(entry.cmd), b, unsafe.Pointer(uintptr(token)))
	commandHandlers.Delete(uintptr(token))
}

// FindDataRef implements DataAPI.
func (bridge) FindDataRef(name string) DataRef {
	cs := cstr(name)
	defer freestr(cs)
	return DataRef(uintptr(unsafe.Pointer(C.XPLMFindDataRef(cs))))
}

// IsDataRefGood implements DataAPI.
func (bridge) IsDataRefGood(ref DataRef) bool { return C.XPLMIsDataRefGood(cData(ref)) != 0 }

// CanWriteDataRef implements DataAPI.
func (bridge) CanWriteDataRef(ref DataRef) bool { return C.XPLMCanWriteDataRef(cData(ref)) != 0 }

// DataRefTypes implements DataAPI.
func (bridge) DataRefTypes(ref DataRef) DataTypeFlags {
	return DataTypeFlags(C.XPLMGetDataRefTypes(cData(ref)))
}

// GetDatai implements DataAPI.
func (bridge) GetDatai(ref DataRef) int32 { return int32(C.XPLMGetDatai(cData(ref))) }

// SetDatai implements DataAPI.
func (bridge) SetDatai(ref DataRef, v int32) { C.XPLMSetDatai(cData(ref), C.int(v)) }

// GetDataf implements DataAPI.
func (bridge) GetDataf(ref DataRef) float32 { return float32(C.XPLMGetDataf(cData(ref))) }

// SetDataf implements DataAPI.
func (bridge) SetDataf(ref DataRef, v float32) { C.XPLMSetDataf(cData(ref), C.float(v)) }

// GetDatad implements DataAPI.
func (bridge) GetDatad(ref DataRef) float64 { return float64(C.XPLMGetDatad(cData(ref))) }

// SetDatad implements DataAPI.
func (bridge) SetDatad(ref DataRef, v float64) { C.XPLMSetDatad(cData(ref), C.double(v)) }

// GetDatavi implements DataAPI.
func (bridge) GetDatavi(ref DataRef, dst []int32, off int) int {
	if dst == nil {
		return int(C.XPLMGetDatavi(cData(ref), nil, 0, 0))
	}
	if len(dst) == 0 {
		return 0
	}
	return int(C.XPLMGetDatavi(cData(ref), (*C.int)(unsafe.Pointer(&dst[0])), C.int(off), C.int(len(dst))))
}

// SetDatavi implements DataAPI.
func (bridge) SetDatavi(ref DataRef, src []int32, off int) {
	if len(src) == 0 {
		return
	}
	C.XPLMSetDatavi(cData(ref), (*C.int)(unsafe.Pointer(&src[0])), C.int(off), C.int(len(src)))
}

// GetDatavf implements DataAPI.
func (bridge) GetDatavf(ref DataRef, dst []float32, off int) int {
	if dst == nil {
		return int(C.XPLMGetDatavf(cData(ref), nil, 0, 0))
	}
	if len(dst) == 0 {
		return 0
	}
	return int(C.XPLMGetDatavf(cData(ref), (*C.float)(unsafe.Pointer(&dst[0])), C.int(off), C.int(len(dst))))
}

// SetDatavf implements DataAPI.
func (bridge) SetDatavf(ref DataRef, src []float32, off int) {
	if len(src) == 0 {
		return
	}
	C.XPLMSetDatavf(cData(ref), (*C.float)(unsafe.Pointer(&src[0])), C.int(off), C.int(len(src)))
}

// GetDatab implements DataAPI.
func (bridge) GetDatab(ref DataRef, dst []byte, off int) int {
	if dst == nil {
		return int(C.XPLMGetDatab(cData(ref), nil, 0, 0))
	}
	if len(dst) == 0 {
		return 0
	}
	return int(C.XPLMGetDatab(cData(ref), unsafe.Pointer(&dst[0]), C.int(off), C.int(len(dst))))
}

// SetDatab implements DataAPI.
func (bridge) SetDatab(ref DataRef, src []byte, off int) {
	if len(src) == 0 {
		return
	}
	C.XPLMSetDatab(cData(ref), unsafe.Pointer(&src[0]), C.int(off), C.int(len(src)))
}

// CountDataRefs implements DataAPI.
func (bridge) CountDataRefs() int { return int(C.XPLMCountDataRefs()) }

// DataRefsByIndex implements DataAPI.
func (bridge) DataRefsByIndex(from, count int) []DataRef {
	if count <= 0 {
		return nil
	}
	refs := make([]C.XPLMDataRef, count)
	C.XPLMGetDataRefsByIndex(C.int(from), C.int(count), &refs[0])
	out := make([]DataRef, 0, count)
	for _, r := range refs {
		if r != nil {
			out = append(out, DataRef(uintptr(unsafe.Pointer(r))))
		}
	}
	return out
}

// DataRefMeta implements DataAPI.
func (bridge) DataRefMeta(ref DataRef) (DataRefMeta, bool) {
	if ref == 0 {
		return DataRefMeta{}, false
	}
	var info C.XPLMDataRefInfo_t
	C.bridgeDataRefInfo(cData(ref), &info)
	return DataRefMeta{
		Name:     C.GoString(info.name),
		Types:    DataTypeFlags(info._type),
		Writable: info.writable != 0,
		Owner:    PluginID(info.owner),
	}, true
}

// CreateFlightLoop implements ProcessingAPI.
func (bridge) CreateFlightLoop(phase FlightLoopPhase, fn FlightLoopFunc) FlightLoopID {
	if fn == nil {
		return 0
	}
	token := loopFuncs.Put(fn)
	id := C.bridgeCreateFlightLoop(C.XPLMFlightLoopPhaseType(phase), unsafe.Pointer(token))
	loop := FlightLoopID(uintptr(unsafe.Pointer(id)))
	if loop == 0 {
		loopFuncs.Delete(token)
		return 0
	}
	tokenMu.Lock()
	loopTokens[loop] = token
	tokenMu.Unlock()
	return loop
}

// DestroyFlightLoop implements ProcessingAPI.
func (bridge) DestroyFlightLoop(id FlightLoopID) {
	C.XPLMDestroyFlightLoop(cLoop(id))
	tokenMu.Lock()
	token := loopTokens[id]
	delete(loopTokens, id)
	tokenMu.Unlock()
	loopFuncs.Delete(token)
}

// ScheduleFlightLoop implements ProcessingAPI.
func (bridge) ScheduleFlightLoop(id FlightLoopID, interval float32, relativeToNow bool) {
	rel := C.int(0)
	if relativeToNow {
		rel = 1
	}
	C.XPLMScheduleFlightLoop(cLoop(id), C.float(interval), rel)
}

// ElapsedTime implements ProcessingAPI.
func (bridge) ElapsedTime() float32 { return float32(C.XPLMGetElapsedTime()) }

// CycleNumber implements ProcessingAPI.
func (bridge) CycleNumber() int32 { return int32(C.XPLMGetCycleNumber()) }

// The SDK writes paths into a caller buffer with no length query; 512 is
// its documented maximum.
const pathBufferLen = 512

func fetchPath(kind PathKind) string {
	var buf [pathBufferLen]C.char
	switch kind {
	case PathPrefs:
		C.XPLMGetPrefsPath(&buf[0])
	default:
		C.XPLMGetSystemPath(&buf[0])
	}
	return C.GoString(&buf[0])
}

// PathLength implements UtilityAPI.
func (bridge) PathLength(kind PathKind) int { return len(fetchPath(kind)) }

// ReadPath implements UtilityAPI.
func (bridge) ReadPath(kind PathKind, buf []byte) int {
	return copy(buf, fetchPath(kind))
}

// DirectorySeparator implements UtilityAPI.
func (bridge) DirectorySeparator() string {
	return C.GoString(C.XPLMGetDirectorySeparator())
}

// DebugString implements UtilityAPI.
func (bridge) DebugString(s string) {
	cs := cstr(s)
	defer freestr(cs)
	C.XPLMDebugString(cs)
}

// SpeakString implements UtilityAPI.
func (bridge) SpeakString(s string) {
	cs := cstr(s)
	defer freestr(cs)
	C.XPLMSpeakString(cs)
}

// Versions implements UtilityAPI.
func (bridge) Versions() Versions {
	var xplane, xplm C.int
	var hostID C.XPLMHostApplicationID
	C.XPLMGetVersions(&xplane, &xplm, &hostID)
	return Versions{XPlane: int32(xplane), XPLM: int32(xplm), HostID: HostApp(hostID)}
}

// Language implements UtilityAPI.
func (bridge) Language() Language { return Language(C.XPLMGetLanguage()) }

// LoadDataFile implements UtilityAPI.
func (bridge) LoadDataFile(kind DataFileKind, path string) bool {
	if path == "" {
		return C.XPLMLoadDataFile(C.XPLMDataFileType(kind), nil) != 0
	}
	cs := cstr(path)
	defer freestr(cs)
	return C.XPLMLoadDataFile(C.XPLMDataFileType(kind), cs) != 0
}

// SaveDataFile implements UtilityAPI.
func (bridge) SaveDataFile(kind DataFileKind, path string) bool {
	cs := cstr(path)
	defer freestr(cs)
	return C.XPLMSaveDataFile(C.XPLMDataFileType(kind), cs) != 0
}

// ReloadScenery implements UtilityAPI.
func (bridge) ReloadScenery() { C.XPLMReloadScenery() }

// SetErrorCallback implements UtilityAPI. The native callback cannot be
// removed once set, so the bridge installs its trampoline once and gates
// delivery on the stored function.
func (bridge) SetErrorCallback(fn ErrorFunc) {
	errorMu.Lock()
	errorFn = fn
	install := fn != nil && !errorInstalled
	if install {
		errorInstalled = true
	}
	errorMu.Unlock()
	if install {
		C.bridgeSetErrorCallback()
	}
}

// VirtualKeyDescription implements UtilityAPI.
func (bridge) VirtualKeyDescription(key byte) string {
	return C.GoString(C.XPLMGetVirtualKeyDescription(C.char(key)))
}
