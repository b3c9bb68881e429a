package fdr

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplm-go/xplm/config"
	"github.com/xplm-go/xplm/logging"
	"github.com/xplm-go/xplm/xplmtest"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	log := logging.New(nil, "silent")
	db, err := Open(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// --- DB/Migration tests ---

func TestOpen_InMemory(t *testing.T) {
	db := testDB(t)
	assert.NotNil(t, db)
	assert.NotNil(t, db.SQL())
}

func TestMigrations_Applied(t *testing.T) {
	db := testDB(t)

	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestMigrations_Idempotent(t *testing.T) {
	db := testDB(t)

	// Running migrate again should be a no-op
	err := db.migrate()
	require.NoError(t, err)

	var count int
	err = db.sql.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)
}

func TestSchema_TablesExist(t *testing.T) {
	db := testDB(t)

	tables := []string{"recordings", "samples"}
	for _, table := range tables {
		var name string
		err := db.sql.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

// --- Recorder tests ---

func recorderSettings() config.RecorderSettings {
	return config.RecorderSettings{
		Enabled:  true,
		SampleHz: 2,
		DataRefs: []string{
			"sim/flightmodel/position/elevation",
			"sim/flightmodel/position/groundspeed",
			"sim/does/not/exist",
		},
	}
}

func TestRecorder_RecordsSamples(t *testing.T) {
	sim := xplmtest.New(t)
	elev := sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 0)
	sim.AddFloatDataRef("sim/flightmodel/position/groundspeed", true, 55)

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	require.NoError(t, rec.Start())
	assert.NotEmpty(t, rec.Recording())

	for i := 0; i < 5; i++ {
		sim.SetDatad(elev, float64(100+10*i))
		sim.Advance(0.5)
	}
	require.NoError(t, rec.Stop())
	assert.Empty(t, rec.Recording())

	var count int
	require.NoError(t, db.SQL().QueryRow("SELECT COUNT(*) FROM samples").Scan(&count))
	assert.Equal(t, 5, count)

	var first string
	require.NoError(t, db.SQL().QueryRow(
		"SELECT readings FROM samples ORDER BY id LIMIT 1").Scan(&first))
	assert.JSONEq(t, "[100, 55]", first)

	recs, err := Recordings(db)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{
		"sim/flightmodel/position/elevation",
		"sim/flightmodel/position/groundspeed",
	}, recs[0].Channels, "unresolvable accessor should be dropped from the channel list")
	assert.Equal(t, 5, recs[0].Samples)
	assert.False(t, recs[0].StoppedAt.IsZero())
}

func TestRecorder_FlushMidRecording(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 10)
	sim.AddFloatDataRef("sim/flightmodel/position/groundspeed", true, 20)

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	require.NoError(t, rec.Start())
	sim.AdvanceFrames(3, 0.5)
	rec.Flush()
	sim.AdvanceFrames(2, 0.5)
	require.NoError(t, rec.Stop())

	var count int
	require.NoError(t, db.SQL().QueryRow("SELECT COUNT(*) FROM samples").Scan(&count))
	assert.Equal(t, 5, count)
}

func TestRecorder_StartTwice(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 0)
	sim.AddFloatDataRef("sim/flightmodel/position/groundspeed", true, 0)

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	require.NoError(t, rec.Start())
	err := rec.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already recording")
	require.NoError(t, rec.Stop())
}

func TestRecorder_StopWhileIdle(t *testing.T) {
	xplmtest.New(t)
	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	err := rec.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not recording")
}

func TestRecorder_NothingResolvable(t *testing.T) {
	xplmtest.New(t) // no accessors registered

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	err := rec.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recordable accessors")
}

func TestRecorder_RejectsBadSampleRate(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 0)

	settings := recorderSettings()
	settings.SampleHz = 0

	db := testDB(t)
	rec := New(db, settings, logging.New(nil, "silent"))
	require.Error(t, rec.Start())
}

func TestRecorder_ReleasesLoopOnStop(t *testing.T) {
	sim := xplmtest.New(t)
	sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 0)
	sim.AddFloatDataRef("sim/flightmodel/position/groundspeed", true, 0)

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	require.NoError(t, rec.Start())
	assert.Equal(t, 1, sim.OpenFlightLoops())
	sim.Advance(0.5)
	require.NoError(t, rec.Stop())
	assert.Zero(t, sim.OpenFlightLoops())

	// A stopped recorder can start a fresh recording.
	require.NoError(t, rec.Start())
	sim.Advance(0.5)
	require.NoError(t, rec.Stop())

	recs, err := Recordings(db)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// --- Export tests ---

func TestExportCSV(t *testing.T) {
	sim := xplmtest.New(t)
	elev := sim.AddDoubleDataRef("sim/flightmodel/position/elevation", true, 0)
	sim.AddFloatDataRef("sim/flightmodel/position/groundspeed", true, 120)

	db := testDB(t)
	rec := New(db, recorderSettings(), logging.New(nil, "silent"))

	require.NoError(t, rec.Start())
	for i := 0; i < 3; i++ {
		sim.SetDatad(elev, float64(500+i))
		sim.Advance(0.5)
	}
	require.NoError(t, rec.Stop())

	recs, err := Recordings(db)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(db, recs[0].ID, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"sim_time",
		"sim/flightmodel/position/elevation",
		"sim/flightmodel/position/groundspeed",
	}, rows[0])
	assert.Equal(t, "0.5", rows[1][0])
	assert.Equal(t, "500", rows[1][1])
	assert.Equal(t, "120", rows[1][2])
	assert.Equal(t, "502", rows[3][1])
}

func TestExportCSV_UnknownRecording(t *testing.T) {
	db := testDB(t)
	err := ExportCSV(db, "no-such-id", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
