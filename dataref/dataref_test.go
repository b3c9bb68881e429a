package dataref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/dataref"
	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/xplmtest"
)

func TestFind_MissIsErrNotFound(t *testing.T) {
	xplmtest.New(t)

	_, err := dataref.Find("sim/does/not/exist")
	require.ErrorIs(t, err, dataref.ErrNotFound)
	assert.Contains(t, err.Error(), "sim/does/not/exist")
}

func TestInt_RoundTrip(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddIntDataRef("sim/cockpit/electrical/landing_lights_on", true, 0)

	r, err := dataref.Int("sim/cockpit/electrical/landing_lights_on")
	require.NoError(t, err)
	assert.EqualValues(t, 0, r.Read())

	w, err := r.Writable()
	require.NoError(t, err)
	w.Write(1)
	assert.EqualValues(t, 1, r.Read())
	assert.EqualValues(t, 1, w.Read())
}

func TestInt_BindRejectsWrongType(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddFloatDataRef("sim/flightmodel/weight/m_fuel_total", true, 1500)

	_, err := dataref.Int("sim/flightmodel/weight/m_fuel_total")
	require.ErrorIs(t, err, dataref.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "float")
}

func TestFloat_ReadOnlyUpgradeFails(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddFloatDataRef("sim/flightmodel/position/indicated_airspeed", false, 120)

	r, err := dataref.Float("sim/flightmodel/position/indicated_airspeed")
	require.NoError(t, err)
	assert.EqualValues(t, 120, r.Read())

	_, err = r.Writable()
	assert.ErrorIs(t, err, dataref.ErrReadOnly)
}

func TestDouble_RoundTrip(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddDoubleDataRef("sim/flightmodel/position/latitude", true, 47.5)

	r, err := dataref.Double("sim/flightmodel/position/latitude")
	require.NoError(t, err)

	w, err := r.Writable()
	require.NoError(t, err)
	w.Write(48.25)
	assert.EqualValues(t, 48.25, r.Read())

	// Float view of the same accessor sees the same value.
	f, err := dataref.Float("sim/flightmodel/position/latitude")
	require.NoError(t, err)
	assert.EqualValues(t, float32(48.25), f.Read())
}

func TestFloatArray_ReadBoundedByDst(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddFloatArrayDataRef("sim/flightmodel/engine/ENGN_thro", true, []float32{0.1, 0.2, 0.3, 0.4})

	r, err := dataref.FloatArray("sim/flightmodel/engine/ENGN_thro")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())

	dst := make([]float32, 2)
	n := r.Read(dst, 1)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{0.2, 0.3}, dst)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, r.Values())
}

func TestFloatArray_WriteBoundedByCapacity(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddFloatArrayDataRef("sim/flightmodel/engine/ENGN_thro", true, make([]float32, 4))

	r, err := dataref.FloatArray("sim/flightmodel/engine/ENGN_thro")
	require.NoError(t, err)
	w, err := r.Writable()
	require.NoError(t, err)

	require.NoError(t, w.Write([]float32{0.5, 0.6}, 2))
	assert.Equal(t, []float32{0, 0, 0.5, 0.6}, r.Values())

	err = w.Write([]float32{1, 1, 1}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside capacity")
}

func TestIntArray_RoundTrip(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddIntArrayDataRef("sim/aircraft/overflow/generator_on", true, []int32{1, 0})

	r, err := dataref.IntArray("sim/aircraft/overflow/generator_on")
	require.NoError(t, err)
	w, err := r.Writable()
	require.NoError(t, err)

	require.NoError(t, w.Write([]int32{0, 1}, 0))
	assert.Equal(t, []int32{0, 1}, r.Values())
}

func TestString_ReadStopsAtTerminator(t *testing.T) {
	sim := xplmtest.New(t)
	block := make([]byte, 16)
	copy(block, "N12345")
	sim.AddByteDataRef("sim/aircraft/view/acf_tailnum", true, block)

	r, err := dataref.String("sim/aircraft/view/acf_tailnum")
	require.NoError(t, err)
	assert.Equal(t, "N12345", r.Read())
	assert.Equal(t, 16, r.Capacity())
}

func TestString_WriteZeroFillsRemainder(t *testing.T) {
	sim := xplmtest.New(t)
	block := make([]byte, 8)
	copy(block, "OLDLONG")
	sim.AddByteDataRef("sim/aircraft/view/acf_tailnum", true, block)

	r, err := dataref.String("sim/aircraft/view/acf_tailnum")
	require.NoError(t, err)
	w, err := r.Writable()
	require.NoError(t, err)

	require.NoError(t, w.Write("AB"))
	assert.Equal(t, "AB", w.Read())

	err = w.Write("WAY TOO LONG FOR 8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
}

func TestBytes_RoundTrip(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddByteDataRef("sim/custom/blob", true, []byte{1, 2, 3, 4})

	r, err := dataref.Bytes("sim/custom/blob")
	require.NoError(t, err)
	w, err := r.Writable()
	require.NoError(t, err)

	require.NoError(t, w.Write([]byte{9, 9}, 1))
	assert.Equal(t, []byte{1, 9, 9, 4}, r.Values())
}

func TestDataRef_InspectionSurface(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddFloatDataRef("sim/flightmodel/weight/m_fuel_total", true, 900)

	d, err := dataref.Find("sim/flightmodel/weight/m_fuel_total")
	require.NoError(t, err)
	assert.Equal(t, "sim/flightmodel/weight/m_fuel_total", d.Name())
	assert.True(t, d.Writable())
	assert.True(t, d.IsGood())
	assert.True(t, d.Types().Has(host.TypeFloat))

	meta, ok := d.Info()
	require.True(t, ok)
	assert.Equal(t, "sim/flightmodel/weight/m_fuel_total", meta.Name)
	assert.True(t, meta.Writable)
}

func TestEnumeration_CountAndByIndex(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddIntDataRef("sim/one", false, 1)
	sim.AddIntDataRef("sim/two", false, 2)
	sim.AddIntDataRef("sim/three", false, 3)

	assert.Equal(t, 3, dataref.Count())

	refs := dataref.ByIndex(1, 5)
	require.Len(t, refs, 2)
	assert.Equal(t, "sim/two", refs[0].Name())
	assert.Equal(t, "sim/three", refs[1].Name())
}
