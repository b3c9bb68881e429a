// Package lifecycle carries the registered plugin's lifecycle callbacks
// from plugin.Register to whichever host driver invokes them: the exported
// ABI entry points inside the simulator, or a simulated host in tests.
// The callbacks installed here are already panic-guarded; drivers may call
// them without further protection.
package lifecycle

import "sync"

// Callbacks is the guarded lifecycle surface of the registered plugin.
type Callbacks struct {
	// Start initializes the plugin and reports its metadata. ok is false
	// when the plugin refuses to load.
	Start func() (name, signature, description string, ok bool)
	// Stop shuts the plugin down and releases every wrapper-tracked host
	// resource.
	Stop func()
	// Enable reports false when the plugin refuses to enable.
	Enable func() bool
	// Disable always succeeds.
	Disable func()
	// ReceiveMessage delivers an interplugin message.
	ReceiveMessage func(from int32, msg int32, param uintptr)
}

var (
	mu        sync.Mutex
	installed *Callbacks
)

// Install stores the plugin's callbacks. The first registration wins;
// Install reports whether it took effect so the caller can log duplicate
// registrations.
func Install(c *Callbacks) bool {
	mu.Lock()
	defer mu.Unlock()
	if installed != nil {
		return false
	}
	installed = c
	return true
}

// Installed returns the registered callbacks, or nil before registration.
func Installed() *Callbacks {
	mu.Lock()
	defer mu.Unlock()
	return installed
}

// Reset clears the registration. Only test harnesses use this; inside the
// simulator a plugin registers once for the lifetime of the library.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	installed = nil
}
