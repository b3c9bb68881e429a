// Package handles maps Go values to opaque integer tokens that can cross
// the C boundary as refcons and come back later. Passing a Go pointer
// through C directly would hide it from the garbage collector and violate
// the cgo pointer rules; a token survives any round trip.
package handles

import "sync"

// Registry issues tokens for values of one type. Token zero is never
// issued, so callers can use it as "no value".
type Registry[T any] struct {
	mu   sync.Mutex
	next uintptr
	vals map[uintptr]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{vals: make(map[uintptr]T)}
}

// Put stores v and returns its token.
func (r *Registry[T]) Put(v T) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.vals[r.next] = v
	return r.next
}

// Get returns the value for a token issued by Put.
func (r *Registry[T]) Get(token uintptr) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vals[token]
	return v, ok
}

// Delete releases a token. Unknown tokens are ignored.
func (r *Registry[T]) Delete(token uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vals, token)
}

// Len reports how many tokens are live.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vals)
}
