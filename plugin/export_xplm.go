//go:build xplm

package plugin

import "C"

import (
	"unsafe"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/lifecycle"
)

// The simulator hands each XPluginStart out-parameter as a 256-byte
// buffer including the terminator.
const infoBufferLen = 256

func fillInfoBuffer(dst *C.char, s string) {
	if dst == nil {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(dst)), infoBufferLen)
	n := copy(buf[:infoBufferLen-1], s)
	buf[n] = 0
}

//export XPluginStart
func XPluginStart(outName, outSignature, outDescription *C.char) C.int {
	cb := lifecycle.Installed()
	if cb == nil {
		host.Active().DebugString("xplm: no handler registered, call plugin.Register from an init function")
		fillInfoBuffer(outName, "")
		fillInfoBuffer(outSignature, "")
		fillInfoBuffer(outDescription, "")
		return 0
	}
	name, signature, description, ok := cb.Start()
	fillInfoBuffer(outName, name)
	fillInfoBuffer(outSignature, signature)
	fillInfoBuffer(outDescription, description)
	if !ok {
		return 0
	}
	return 1
}

//export XPluginStop
func XPluginStop() {
	if cb := lifecycle.Installed(); cb != nil {
		cb.Stop()
	}
}

//export XPluginEnable
func XPluginEnable() C.int {
	cb := lifecycle.Installed()
	if cb == nil || !cb.Enable() {
		return 0
	}
	return 1
}

//export XPluginDisable
func XPluginDisable() {
	if cb := lifecycle.Installed(); cb != nil {
		cb.Disable()
	}
}

//export XPluginReceiveMessage
func XPluginReceiveMessage(from C.int, msg C.int, param unsafe.Pointer) {
	if cb := lifecycle.Installed(); cb != nil {
		cb.ReceiveMessage(int32(from), int32(msg), uintptr(param))
	}
}
