package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/dataref"
	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/xplmtest"
)

const sampleInventory = "2\n" +
	"1200 version - build 12100 sdk descriptor\n" +
	"\n" +
	"sim/flightmodel/position/elevation\tdouble\tn\tmeters\tThe elevation above MSL of the aircraft\n" +
	"sim/flightmodel/position/groundspeed\tfloat\tn\tmeters/sec\tThe ground speed of the aircraft\n" +
	"sim/cockpit2/fuel/fuel_quantity\tfloat[9]\ty\tkilograms\tFuel quantity per tank\n" +
	"sim/aircraft/view/acf_ICAO\tbyte[40]\ty\tstring\tICAO of the aircraft\n" +
	"sim/cockpit/electrical/landing_lights_on\tint\ty\tboolean\tLanding light switch\n" +
	"sim/aircraft/engine/acf_num_engines\tint\ty\tcount\n"

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleInventory))
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	e, ok := c.Find("sim/flightmodel/position/elevation")
	require.True(t, ok)
	assert.Equal(t, "double", e.Type)
	assert.False(t, e.Writable)
	assert.Equal(t, "meters", e.Units)
	assert.Equal(t, "The elevation above MSL of the aircraft", e.Description)
	assert.Equal(t, host.TypeDouble, e.Flags())

	_, ok = c.Find("sim/does/not/exist")
	assert.False(t, ok)
}

func TestParseArrayTypes(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleInventory))
	require.NoError(t, err)

	fuel, ok := c.Find("sim/cockpit2/fuel/fuel_quantity")
	require.True(t, ok)
	assert.Equal(t, host.TypeFloatArray, fuel.Flags())
	assert.Equal(t, 9, fuel.ArrayLen())
	assert.True(t, fuel.Writable)

	icao, ok := c.Find("sim/aircraft/view/acf_ICAO")
	require.True(t, ok)
	assert.Equal(t, host.TypeData, icao.Flags())
	assert.Equal(t, 40, icao.ArrayLen())
}

func TestParseRowWithoutDescription(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleInventory))
	require.NoError(t, err)

	e, ok := c.Find("sim/aircraft/engine/acf_num_engines")
	require.True(t, ok)
	assert.Equal(t, "count", e.Units)
	assert.Empty(t, e.Description)
}

func TestSearch(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleInventory))
	require.NoError(t, err)

	hits := c.Search("FUEL")
	require.Len(t, hits, 1)
	assert.Equal(t, "sim/cockpit2/fuel/fuel_quantity", hits[0].Name)

	assert.Len(t, c.Search("sim/"), 6)
	assert.Empty(t, c.Search("weather"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DataRefs.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleInventory), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	sim := xplmtest.New(t)

	c, err := Parse(strings.NewReader(sampleInventory))
	require.NoError(t, err)
	assert.Equal(t, 6, c.Seed(sim))

	elev, err := dataref.Double("sim/flightmodel/position/elevation")
	require.NoError(t, err)
	assert.Equal(t, float64(0), elev.Read())

	fuel, err := dataref.FloatArray("sim/cockpit2/fuel/fuel_quantity")
	require.NoError(t, err)
	assert.Equal(t, 9, fuel.Len())

	lights, err := dataref.Int("sim/cockpit/electrical/landing_lights_on")
	require.NoError(t, err)
	w, err := lights.Writable()
	require.NoError(t, err)
	w.Write(1)
	assert.Equal(t, int32(1), lights.Read())
}
