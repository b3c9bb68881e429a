package dataref

import (
	"fmt"

	"github.com/xplm-go/xplm/host"
)

func rangeCheck(name string, off, n, capacity int) error {
	if off < 0 || off+n > capacity {
		return fmt.Errorf("dataref %q: write [%d:%d) outside capacity %d", name, off, off+n, capacity)
	}
	return nil
}

// IntArrayRef is a read-only bind of an integer-array accessor.
type IntArrayRef struct {
	ref  host.DataRef
	name string
}

// IntArray finds name and binds it as an integer array.
func IntArray(name string) (IntArrayRef, error) {
	d, err := Find(name)
	if err != nil {
		return IntArrayRef{}, err
	}
	return d.IntArray()
}

// IntArray binds an already-found accessor as an integer array.
func (d *DataRef) IntArray() (IntArrayRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeIntArray); err != nil {
		return IntArrayRef{}, err
	}
	return IntArrayRef{ref: d.ref, name: d.name}, nil
}

// Len returns the element count the simulator reports for the array.
// Some arrays grow with the installation (one slot per engine, per
// battery), so callers should size from Len rather than hard-code.
func (r IntArrayRef) Len() int { return host.Active().GetDatavi(r.ref, nil, 0) }

// Read copies elements starting at off into dst and returns how many it
// copied. It never writes past len(dst).
func (r IntArrayRef) Read(dst []int32, off int) int {
	return host.Active().GetDatavi(r.ref, dst, off)
}

// Values reads the whole array.
func (r IntArrayRef) Values() []int32 {
	out := make([]int32, r.Len())
	r.Read(out, 0)
	return out
}

// Name returns the accessor's well-known name.
func (r IntArrayRef) Name() string { return r.name }

// Writable upgrades the bind for writing.
func (r IntArrayRef) Writable() (IntArrayVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return IntArrayVar{}, err
	}
	return IntArrayVar{r}, nil
}

// IntArrayVar is a read-write bind of an integer-array accessor.
type IntArrayVar struct{ IntArrayRef }

// Write stores src at offset off. The write must fit inside the
// simulator-reported capacity.
func (v IntArrayVar) Write(src []int32, off int) error {
	if err := rangeCheck(v.name, off, len(src), v.Len()); err != nil {
		return err
	}
	host.Active().SetDatavi(v.ref, src, off)
	return nil
}

// FloatArrayRef is a read-only bind of a float-array accessor.
type FloatArrayRef struct {
	ref  host.DataRef
	name string
}

// FloatArray finds name and binds it as a float array.
func FloatArray(name string) (FloatArrayRef, error) {
	d, err := Find(name)
	if err != nil {
		return FloatArrayRef{}, err
	}
	return d.FloatArray()
}

// FloatArray binds an already-found accessor as a float array.
func (d *DataRef) FloatArray() (FloatArrayRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeFloatArray); err != nil {
		return FloatArrayRef{}, err
	}
	return FloatArrayRef{ref: d.ref, name: d.name}, nil
}

// Len returns the element count the simulator reports for the array.
func (r FloatArrayRef) Len() int { return host.Active().GetDatavf(r.ref, nil, 0) }

// Read copies elements starting at off into dst and returns how many it
// copied. It never writes past len(dst).
func (r FloatArrayRef) Read(dst []float32, off int) int {
	return host.Active().GetDatavf(r.ref, dst, off)
}

// Values reads the whole array.
func (r FloatArrayRef) Values() []float32 {
	out := make([]float32, r.Len())
	r.Read(out, 0)
	return out
}

// Name returns the accessor's well-known name.
func (r FloatArrayRef) Name() string { return r.name }

// Writable upgrades the bind for writing.
func (r FloatArrayRef) Writable() (FloatArrayVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return FloatArrayVar{}, err
	}
	return FloatArrayVar{r}, nil
}

// FloatArrayVar is a read-write bind of a float-array accessor.
type FloatArrayVar struct{ FloatArrayRef }

// Write stores src at offset off. The write must fit inside the
// simulator-reported capacity.
func (v FloatArrayVar) Write(src []float32, off int) error {
	if err := rangeCheck(v.name, off, len(src), v.Len()); err != nil {
		return err
	}
	host.Active().SetDatavf(v.ref, src, off)
	return nil
}

// BytesRef is a read-only bind of a raw byte-block accessor.
type BytesRef struct {
	ref  host.DataRef
	name string
}

// Bytes finds name and binds it as a byte block.
func Bytes(name string) (BytesRef, error) {
	d, err := Find(name)
	if err != nil {
		return BytesRef{}, err
	}
	return d.Bytes()
}

// Bytes binds an already-found accessor as a byte block.
func (d *DataRef) Bytes() (BytesRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeData); err != nil {
		return BytesRef{}, err
	}
	return BytesRef{ref: d.ref, name: d.name}, nil
}

// Len returns the byte count the simulator reports for the block.
func (r BytesRef) Len() int { return host.Active().GetDatab(r.ref, nil, 0) }

// Read copies bytes starting at off into dst and returns how many it
// copied. It never writes past len(dst).
func (r BytesRef) Read(dst []byte, off int) int {
	return host.Active().GetDatab(r.ref, dst, off)
}

// Values reads the whole block.
func (r BytesRef) Values() []byte {
	out := make([]byte, r.Len())
	r.Read(out, 0)
	return out
}

// Name returns the accessor's well-known name.
func (r BytesRef) Name() string { return r.name }

// Writable upgrades the bind for writing.
func (r BytesRef) Writable() (BytesVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return BytesVar{}, err
	}
	return BytesVar{r}, nil
}

// BytesVar is a read-write bind of a byte-block accessor.
type BytesVar struct{ BytesRef }

// Write stores src at offset off. The write must fit inside the
// simulator-reported capacity.
func (v BytesVar) Write(src []byte, off int) error {
	if err := rangeCheck(v.name, off, len(src), v.Len()); err != nil {
		return err
	}
	host.Active().SetDatab(v.ref, src, off)
	return nil
}
