// Package plugin is the entry point for building an X-Plane plugin in Go.
//
// A plugin implements Handler and registers it from an init function so the
// registration exists by the time the simulator loads the shared library and
// calls the exported entry points:
//
//	func init() {
//		plugin.Register(&fuelWatch{})
//	}
//
//	func main() {} // required for c-shared builds, never called
//
// The simulator drives the Handler strictly in the lifecycle order
// Start, Enable, Disable, Stop, with Enable/Disable possibly repeating.
// Every callback runs on the simulator's main thread; a panic in any of
// them is caught, logged to Log.txt, and reported to the simulator as a
// failure rather than being allowed to cross the ABI boundary.
package plugin

import (
	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/cleanup"
	"github.com/xplm-go/xplm/internal/lifecycle"
	"github.com/xplm-go/xplm/logging"
)

// ID identifies a loaded plugin within the running simulator. IDs are not
// stable across simulator restarts.
type ID = host.PluginID

// NoPlugin is returned by discovery lookups that miss and identifies the
// simulator itself as the sender of simulator-originated messages.
const NoPlugin = host.NoPlugin

// Info describes a plugin to the simulator and to other plugins. The
// simulator stores each field in a fixed 256-byte buffer; longer values are
// truncated at the boundary.
type Info struct {
	// Name is the human-readable plugin name shown in the plugin manager.
	Name string
	// Signature uniquely identifies the plugin, conventionally in reverse
	// domain form such as "com.example.fuelwatch". Other plugins locate
	// this plugin by its signature.
	Signature string
	// Description is a one-line summary of what the plugin does.
	Description string
}

// Handler receives the plugin lifecycle callbacks.
//
// Start must perform all one-time setup and report the plugin's identity.
// Returning an error refuses the load; the plugin then receives no further
// callbacks. Enable is called after Start and again each time the user
// re-enables the plugin; returning an error leaves the plugin disabled.
// Disable reverses Enable. Stop reverses Start; after Stop returns, every
// host resource the wrapper tracks (menus, flight loops, command handlers)
// is released automatically.
type Handler interface {
	Start() (Info, error)
	Enable() error
	Disable()
	Stop()
}

// MessageHandler is implemented by Handlers that want interplugin messages.
// Handlers without it simply receive none.
type MessageHandler interface {
	ReceiveMessage(Message)
}

// Register installs h as the plugin driven by the simulator's entry points.
// Call it from an init function. Only the first registration takes effect;
// later calls are logged and ignored.
func Register(h Handler) {
	cb := &lifecycle.Callbacks{
		Start:          func() (string, string, string, bool) { return dispatchStart(h) },
		Stop:           func() { dispatchStop(h) },
		Enable:         func() bool { return dispatchEnable(h) },
		Disable:        func() { dispatchDisable(h) },
		ReceiveMessage: func(from, msg int32, param uintptr) { dispatchMessage(h, from, msg, param) },
	}
	if !lifecycle.Install(cb) {
		logging.Default().Warn().Msg("plugin already registered, ignoring duplicate registration")
	}
}

func dispatchStart(h Handler) (name, signature, description string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Panicked(logging.Default(), "Start", r)
			ok = false
		}
	}()
	info, err := h.Start()
	if err != nil {
		logging.Default().Error().Err(err).Msg("plugin start failed")
		return "", "", "", false
	}
	if info.Signature != "" {
		logging.SetDefault(logging.NewHost(info.Signature, "info"))
	}
	return info.Name, info.Signature, info.Description, true
}

func dispatchStop(h Handler) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Panicked(logging.Default(), "Stop", r)
			}
		}()
		h.Stop()
	}()
	// Host resources outlive a forgotten reference, so release everything
	// the wrapper handed out even when the handler panicked.
	cleanup.Drain()
}

func dispatchEnable(h Handler) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Panicked(logging.Default(), "Enable", r)
			ok = false
		}
	}()
	if err := h.Enable(); err != nil {
		logging.Default().Error().Err(err).Msg("plugin enable failed")
		return false
	}
	return true
}

func dispatchDisable(h Handler) {
	defer func() {
		if r := recover(); r != nil {
			logging.Panicked(logging.Default(), "Disable", r)
		}
	}()
	h.Disable()
}

func dispatchMessage(h Handler, from, msg int32, param uintptr) {
	mh, wants := h.(MessageHandler)
	if !wants {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Panicked(logging.Default(), "ReceiveMessage", r)
		}
	}()
	mh.ReceiveMessage(Message{From: ID(from), ID: msg, Param: param})
}
