// Package dataref reads and writes the simulator's published data
// accessors with compile-time types and bind-time checks.
//
// An accessor is located once by its well-known name and bound to the Go
// type the caller wants to see it as; the bind fails immediately when the
// accessor does not publish that type, instead of yielding garbage on
// every later read:
//
//	fuel, err := dataref.Float("sim/flightmodel/weight/m_fuel_total")
//	if err != nil { ... }
//	kg := fuel.Read()
//
// Reads never fail after a successful bind. Writing requires an explicit
// upgrade via Writable, which fails with ErrReadOnly for accessors the
// simulator publishes read-only.
//
// Binds talk to the running simulator, so they belong in Enable or later,
// not in package init: accessors published by other plugins may not exist
// yet while plugins are still loading.
package dataref

import (
	"errors"
	"fmt"

	"github.com/xplm-go/xplm/host"
)

var (
	// ErrNotFound reports that no accessor with the requested name is
	// published.
	ErrNotFound = errors.New("dataref not found")
	// ErrTypeMismatch reports that the accessor does not publish the
	// requested type.
	ErrTypeMismatch = errors.New("dataref type mismatch")
	// ErrReadOnly reports a write upgrade on a read-only accessor.
	ErrReadOnly = errors.New("dataref is read-only")
)

// Meta is the simulator's descriptive record for an accessor.
type Meta = host.DataRefMeta

// DataRef is an untyped handle to a published accessor. Most callers skip
// it and bind a typed view directly with Int, Float, and friends; the
// untyped form exists for inspection and enumeration.
type DataRef struct {
	ref  host.DataRef
	name string
}

// Find locates a published accessor by name. The miss is ErrNotFound.
//
// Finding is a string lookup in the simulator and not free; bind once and
// keep the result instead of finding per frame.
func Find(name string) (*DataRef, error) {
	ref := host.Active().FindDataRef(name)
	if ref == 0 {
		return nil, fmt.Errorf("dataref %q: %w", name, ErrNotFound)
	}
	return &DataRef{ref: ref, name: name}, nil
}

// Name returns the well-known name the accessor was found under.
func (d *DataRef) Name() string { return d.name }

// Types returns the set of types the accessor publishes.
func (d *DataRef) Types() host.DataTypeFlags {
	return host.Active().DataRefTypes(d.ref)
}

// Writable reports whether the accessor accepts writes at all.
func (d *DataRef) Writable() bool {
	return host.Active().CanWriteDataRef(d.ref)
}

// IsGood re-validates the handle against the simulator. Handles go bad
// when the publishing plugin is unloaded; this check is slow and meant
// for recovery paths, not per-frame use.
func (d *DataRef) IsGood() bool {
	return host.Active().IsDataRefGood(d.ref)
}

// Info returns the simulator's descriptive record for the accessor,
// false when the handle is no longer known.
func (d *DataRef) Info() (Meta, bool) {
	return host.Active().DataRefMeta(d.ref)
}

// Count returns the total number of published accessors, from every
// plugin and the simulator itself.
func Count() int { return host.Active().CountDataRefs() }

// ByIndex returns up to count accessors starting at index from, in the
// simulator's enumeration order. Use with Info to browse what is
// published at runtime.
func ByIndex(from, count int) []*DataRef {
	refs := host.Active().DataRefsByIndex(from, count)
	out := make([]*DataRef, 0, len(refs))
	for _, ref := range refs {
		d := &DataRef{ref: ref}
		if meta, ok := d.Info(); ok {
			d.name = meta.Name
		}
		out = append(out, d)
	}
	return out
}

// typeCheck validates one published type bit for a bind.
func typeCheck(name string, have, want host.DataTypeFlags) error {
	if have.Has(want) {
		return nil
	}
	return fmt.Errorf("dataref %q publishes %s, not %s: %w", name, have, want, ErrTypeMismatch)
}

// writeCheck validates a Writable upgrade.
func writeCheck(name string, d host.DataRef) error {
	if host.Active().CanWriteDataRef(d) {
		return nil
	}
	return fmt.Errorf("dataref %q: %w", name, ErrReadOnly)
}
