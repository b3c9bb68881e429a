package dataref

import (
	"bytes"
	"fmt"
)

// StringRef reads a byte-block accessor as text. The simulator's string
// accessors are fixed-capacity byte blocks, zero-padded; Read stops at
// the first zero byte.
type StringRef struct {
	b BytesRef
}

// String finds name and binds it as text.
func String(name string) (StringRef, error) {
	d, err := Find(name)
	if err != nil {
		return StringRef{}, err
	}
	return d.String()
}

// String binds an already-found accessor as text.
func (d *DataRef) String() (StringRef, error) {
	b, err := d.Bytes()
	if err != nil {
		return StringRef{}, err
	}
	return StringRef{b: b}, nil
}

// Read returns the text up to the first zero byte.
func (r StringRef) Read() string {
	raw := r.b.Values()
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}

// Capacity returns the block size, the longest text the accessor can
// hold plus the terminator.
func (r StringRef) Capacity() int { return r.b.Len() }

// Name returns the accessor's well-known name.
func (r StringRef) Name() string { return r.b.Name() }

// Writable upgrades the bind for writing.
func (r StringRef) Writable() (StringVar, error) {
	bv, err := r.b.Writable()
	if err != nil {
		return StringVar{}, err
	}
	return StringVar{bv: bv}, nil
}

// StringVar is a read-write text bind.
type StringVar struct {
	bv BytesVar
}

// Read returns the text up to the first zero byte.
func (v StringVar) Read() string { return StringRef{b: v.bv.BytesRef}.Read() }

// Write replaces the text. s plus its terminator must fit the block;
// the remainder is zero-filled so earlier longer values do not bleed
// through.
func (v StringVar) Write(s string) error {
	capacity := v.bv.Len()
	if len(s)+1 > capacity {
		return fmt.Errorf("dataref %q: text of %d bytes exceeds capacity %d", v.bv.Name(), len(s), capacity)
	}
	buf := make([]byte, capacity)
	copy(buf, s)
	return v.bv.Write(buf, 0)
}
