package xplmtest

import "github.com/xplm-go/xplm/host"

type simDataRef struct {
	meta host.DataRefMeta

	i int32
	f float32
	d float64

	iv []int32
	fv []float32
	b  []byte
}

func (s *Sim) addDataRef(name string, types host.DataTypeFlags, writable bool) (*simDataRef, host.DataRef) {
	d := &simDataRef{meta: host.DataRefMeta{
		Name:     name,
		Types:    types,
		Writable: writable,
		Owner:    host.NoPlugin,
	}}
	s.datarefs = append(s.datarefs, d)
	return d, host.DataRef(len(s.datarefs))
}

// AddIntDataRef publishes an integer accessor and returns its handle.
func (s *Sim) AddIntDataRef(name string, writable bool, v int32) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeInt, writable)
	d.i = v
	return ref
}

// AddFloatDataRef publishes a float accessor. Real hosts publish most
// floats as Float|Double; the Sim does the same.
func (s *Sim) AddFloatDataRef(name string, writable bool, v float32) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeFloat|host.TypeDouble, writable)
	d.f = v
	d.d = float64(v)
	return ref
}

// AddDoubleDataRef publishes a double accessor, readable as float too.
func (s *Sim) AddDoubleDataRef(name string, writable bool, v float64) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeFloat|host.TypeDouble, writable)
	d.d = v
	d.f = float32(v)
	return ref
}

// AddIntArrayDataRef publishes an integer-array accessor. The Sim copies v.
func (s *Sim) AddIntArrayDataRef(name string, writable bool, v []int32) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeIntArray, writable)
	d.iv = append([]int32(nil), v...)
	return ref
}

// AddFloatArrayDataRef publishes a float-array accessor. The Sim copies v.
func (s *Sim) AddFloatArrayDataRef(name string, writable bool, v []float32) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeFloatArray, writable)
	d.fv = append([]float32(nil), v...)
	return ref
}

// AddByteDataRef publishes a byte-block accessor. The Sim copies v.
func (s *Sim) AddByteDataRef(name string, writable bool, v []byte) host.DataRef {
	d, ref := s.addDataRef(name, host.TypeData, writable)
	d.b = append([]byte(nil), v...)
	return ref
}

func (s *Sim) dataRefByHandle(ref host.DataRef) *simDataRef {
	i := int(ref) - 1
	if i < 0 || i >= len(s.datarefs) {
		return nil
	}
	return s.datarefs[i]
}

// FindDataRef implements host.DataAPI.
func (s *Sim) FindDataRef(name string) host.DataRef {
	for i, d := range s.datarefs {
		if d.meta.Name == name {
			return host.DataRef(i + 1)
		}
	}
	return 0
}

// IsDataRefGood implements host.DataAPI.
func (s *Sim) IsDataRefGood(ref host.DataRef) bool {
	return s.dataRefByHandle(ref) != nil
}

// CanWriteDataRef implements host.DataAPI.
func (s *Sim) CanWriteDataRef(ref host.DataRef) bool {
	d := s.dataRefByHandle(ref)
	return d != nil && d.meta.Writable
}

// DataRefTypes implements host.DataAPI.
func (s *Sim) DataRefTypes(ref host.DataRef) host.DataTypeFlags {
	d := s.dataRefByHandle(ref)
	if d == nil {
		return host.TypeUnknown
	}
	return d.meta.Types
}

// GetDatai implements host.DataAPI. Like the real host, reading a type an
// accessor does not publish yields zero rather than an error.
func (s *Sim) GetDatai(ref host.DataRef) int32 {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeInt) {
		return 0
	}
	return d.i
}

// SetDatai implements host.DataAPI. Writes to read-only accessors are
// dropped, as the real host drops them.
func (s *Sim) SetDatai(ref host.DataRef, v int32) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeInt) {
		return
	}
	d.i = v
}

// GetDataf implements host.DataAPI.
func (s *Sim) GetDataf(ref host.DataRef) float32 {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeFloat) {
		return 0
	}
	return d.f
}

// SetDataf implements host.DataAPI.
func (s *Sim) SetDataf(ref host.DataRef, v float32) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeFloat) {
		return
	}
	d.f = v
	d.d = float64(v)
}

// GetDatad implements host.DataAPI.
func (s *Sim) GetDatad(ref host.DataRef) float64 {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeDouble) {
		return 0
	}
	return d.d
}

// SetDatad implements host.DataAPI.
func (s *Sim) SetDatad(ref host.DataRef, v float64) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeDouble) {
		return
	}
	d.d = v
	d.f = float32(v)
}

// GetDatavi implements host.DataAPI.
func (s *Sim) GetDatavi(ref host.DataRef, dst []int32, off int) int {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeIntArray) {
		return 0
	}
	if dst == nil {
		return len(d.iv)
	}
	if off < 0 || off >= len(d.iv) {
		return 0
	}
	return copy(dst, d.iv[off:])
}

// SetDatavi implements host.DataAPI.
func (s *Sim) SetDatavi(ref host.DataRef, src []int32, off int) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeIntArray) {
		return
	}
	if off < 0 || off >= len(d.iv) {
		return
	}
	copy(d.iv[off:], src)
}

// GetDatavf implements host.DataAPI.
func (s *Sim) GetDatavf(ref host.DataRef, dst []float32, off int) int {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeFloatArray) {
		return 0
	}
	if dst == nil {
		return len(d.fv)
	}
	if off < 0 || off >= len(d.fv) {
		return 0
	}
	return copy(dst, d.fv[off:])
}

// SetDatavf implements host.DataAPI.
func (s *Sim) SetDatavf(ref host.DataRef, src []float32, off int) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeFloatArray) {
		return
	}
	if off < 0 || off >= len(d.fv) {
		return
	}
	copy(d.fv[off:], src)
}

// GetDatab implements host.DataAPI.
func (s *Sim) GetDatab(ref host.DataRef, dst []byte, off int) int {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Types.Has(host.TypeData) {
		return 0
	}
	if dst == nil {
		return len(d.b)
	}
	if off < 0 || off >= len(d.b) {
		return 0
	}
	return copy(dst, d.b[off:])
}

// SetDatab implements host.DataAPI.
func (s *Sim) SetDatab(ref host.DataRef, src []byte, off int) {
	d := s.dataRefByHandle(ref)
	if d == nil || !d.meta.Writable || !d.meta.Types.Has(host.TypeData) {
		return
	}
	if off < 0 || off >= len(d.b) {
		return
	}
	copy(d.b[off:], src)
}

// CountDataRefs implements host.DataAPI.
func (s *Sim) CountDataRefs() int { return len(s.datarefs) }

// DataRefsByIndex implements host.DataAPI.
func (s *Sim) DataRefsByIndex(from, count int) []host.DataRef {
	if from < 0 || from >= len(s.datarefs) || count <= 0 {
		return nil
	}
	if from+count > len(s.datarefs) {
		count = len(s.datarefs) - from
	}
	out := make([]host.DataRef, 0, count)
	for i := from; i < from+count; i++ {
		out = append(out, host.DataRef(i+1))
	}
	return out
}

// DataRefMeta implements host.DataAPI.
func (s *Sim) DataRefMeta(ref host.DataRef) (host.DataRefMeta, bool) {
	d := s.dataRefByHandle(ref)
	if d == nil {
		return host.DataRefMeta{}, false
	}
	return d.meta, true
}
