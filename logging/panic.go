package logging

import "runtime/debug"

// Panicked records a panic recovered at a host→plugin callback boundary.
// A panic must never unwind across the plugin ABI into the simulator, so
// every callback the host invokes recovers and reports here before
// returning its safe default:
//
//	func onLoop(...) (next float32) {
//		defer func() {
//			if r := recover(); r != nil {
//				logging.Panicked(log, "flight loop", r)
//				next = 0
//			}
//		}()
//		...
//	}
func Panicked(l *Logger, callback string, r any) {
	if l == nil {
		l = Default()
	}
	l.Error().
		Str("callback", callback).
		Interface("panic", r).
		Bytes("stack", debug.Stack()).
		Msg("recovered panic in host callback")
}

// Catch is the deferrable form of Panicked for callbacks with no return
// value to repair:
//
//	defer logging.Catch(log, "menu callback")
func Catch(l *Logger, callback string) {
	if r := recover(); r != nil {
		Panicked(l, callback, r)
	}
}
