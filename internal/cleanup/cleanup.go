// Package cleanup tracks host resources the wrapper has created so they
// can all be released when the host stops the plugin. Menus, flight loops,
// and command-handler registrations enroll themselves on creation and
// withdraw on explicit destruction; whatever is left is drained, newest
// first, during plugin stop so no dangling host-side reference survives
// the plugin.
package cleanup

import "sync"

// Token identifies one enrolled resource.
type Token uint64

type entry struct {
	token Token
	fn    func()
}

var (
	mu      sync.Mutex
	next    Token = 1
	entries []entry
)

// Register enrolls fn to run at drain time and returns a token for
// Forget. fn must be safe to call exactly once.
func Register(fn func()) Token {
	mu.Lock()
	defer mu.Unlock()
	t := next
	next++
	entries = append(entries, entry{token: t, fn: fn})
	return t
}

// Forget withdraws a previously registered token. Resources released
// explicitly call this so drain does not release them a second time.
func Forget(t Token) {
	mu.Lock()
	defer mu.Unlock()
	for i, e := range entries {
		if e.token == t {
			entries = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Drain runs every outstanding cleanup in reverse registration order and
// empties the registry. The snapshot is taken up front so cleanups that
// deregister other resources (a menu destroying its items) stay safe.
func Drain() {
	mu.Lock()
	drained := entries
	entries = nil
	mu.Unlock()

	for i := len(drained) - 1; i >= 0; i-- {
		drained[i].fn()
	}
}

// Len reports how many resources are currently enrolled.
func Len() int {
	mu.Lock()
	defer mu.Unlock()
	return len(entries)
}
