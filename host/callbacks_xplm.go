//go:build xplm

package host

import "C"

import "unsafe"

// The exported functions below are the only C-callable symbols the
// bridge hands to the simulator. They run on the simulator's main
// thread and fan out through the refcon registries in bridge_xplm.go.
// Signatures use plain C types so this file needs no SDK headers; the
// bridge casts them to the SDK's callback typedefs at registration.

//export goMenuHandler
func goMenuHandler(menuRef, itemRef unsafe.Pointer) {
	if fn, ok := menuFuncs.Get(uintptr(menuRef)); ok && fn != nil {
		fn(uintptr(itemRef))
	}
}

//export goCommandHandler
func goCommandHandler(cmd unsafe.Pointer, phase C.int, refcon unsafe.Pointer) C.int {
	h, ok := commandHandlers.Get(uintptr(refcon))
	if !ok || h.fn == nil {
		return 1
	}
	return C.int(h.fn(CommandPhase(phase)))
}

//export goFlightLoop
func goFlightLoop(sinceCall, sinceLoop C.float, counter C.int, refcon unsafe.Pointer) C.float {
	fn, ok := loopFuncs.Get(uintptr(refcon))
	if !ok || fn == nil {
		return 0
	}
	return C.float(fn(float32(sinceCall), float32(sinceLoop), int32(counter)))
}

//export goErrorCallback
func goErrorCallback(msg *C.char) {
	errorMu.Lock()
	fn := errorFn
	errorMu.Unlock()
	if fn != nil {
		fn(C.GoString(msg))
	}
}
