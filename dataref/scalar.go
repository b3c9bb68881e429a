package dataref

import "github.com/xplm-go/xplm/host"

// IntRef is a read-only bind of an integer accessor.
type IntRef struct {
	ref  host.DataRef
	name string
}

// Int finds name and binds it as an integer.
func Int(name string) (IntRef, error) {
	d, err := Find(name)
	if err != nil {
		return IntRef{}, err
	}
	return d.Int()
}

// Int binds an already-found accessor as an integer.
func (d *DataRef) Int() (IntRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeInt); err != nil {
		return IntRef{}, err
	}
	return IntRef{ref: d.ref, name: d.name}, nil
}

// Read returns the current value.
func (r IntRef) Read() int32 { return host.Active().GetDatai(r.ref) }

// Name returns the accessor's well-known name.
func (r IntRef) Name() string { return r.name }

// Writable upgrades the bind for writing, failing with ErrReadOnly when
// the simulator publishes the accessor read-only.
func (r IntRef) Writable() (IntVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return IntVar{}, err
	}
	return IntVar{r}, nil
}

// IntVar is a read-write bind of an integer accessor.
type IntVar struct{ IntRef }

// Write stores a new value.
func (v IntVar) Write(x int32) { host.Active().SetDatai(v.ref, x) }

// FloatRef is a read-only bind of a float accessor.
type FloatRef struct {
	ref  host.DataRef
	name string
}

// Float finds name and binds it as a float.
func Float(name string) (FloatRef, error) {
	d, err := Find(name)
	if err != nil {
		return FloatRef{}, err
	}
	return d.Float()
}

// Float binds an already-found accessor as a float.
func (d *DataRef) Float() (FloatRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeFloat); err != nil {
		return FloatRef{}, err
	}
	return FloatRef{ref: d.ref, name: d.name}, nil
}

// Read returns the current value.
func (r FloatRef) Read() float32 { return host.Active().GetDataf(r.ref) }

// Name returns the accessor's well-known name.
func (r FloatRef) Name() string { return r.name }

// Writable upgrades the bind for writing.
func (r FloatRef) Writable() (FloatVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return FloatVar{}, err
	}
	return FloatVar{r}, nil
}

// FloatVar is a read-write bind of a float accessor.
type FloatVar struct{ FloatRef }

// Write stores a new value.
func (v FloatVar) Write(x float32) { host.Active().SetDataf(v.ref, x) }

// DoubleRef is a read-only bind of a double accessor.
type DoubleRef struct {
	ref  host.DataRef
	name string
}

// Double finds name and binds it as a double.
func Double(name string) (DoubleRef, error) {
	d, err := Find(name)
	if err != nil {
		return DoubleRef{}, err
	}
	return d.Double()
}

// Double binds an already-found accessor as a double.
func (d *DataRef) Double() (DoubleRef, error) {
	if err := typeCheck(d.name, d.Types(), host.TypeDouble); err != nil {
		return DoubleRef{}, err
	}
	return DoubleRef{ref: d.ref, name: d.name}, nil
}

// Read returns the current value.
func (r DoubleRef) Read() float64 { return host.Active().GetDatad(r.ref) }

// Name returns the accessor's well-known name.
func (r DoubleRef) Name() string { return r.name }

// Writable upgrades the bind for writing.
func (r DoubleRef) Writable() (DoubleVar, error) {
	if err := writeCheck(r.name, r.ref); err != nil {
		return DoubleVar{}, err
	}
	return DoubleVar{r}, nil
}

// DoubleVar is a read-write bind of a double accessor.
type DoubleVar struct{ DoubleRef }

// Write stores a new value.
func (v DoubleVar) Write(x float64) { host.Active().SetDatad(v.ref, x) }
