// Package fdr is a flight data recorder: it samples a configured set of
// data accessors on a flight loop and persists the readings to SQLite,
// one recording per Start/Stop pair. The developer CLI lists and exports
// recordings from the same database.
//
// Threading follows the house rule for everything in this module:
// accessor reads happen only inside the flight-loop callback, and the
// database writer runs on its own goroutine so a frame never waits on
// disk. The two sides meet at a buffered batch channel.
package fdr

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xplm-go/xplm/config"
	"github.com/xplm-go/xplm/dataref"
	"github.com/xplm-go/xplm/flightloop"
	"github.com/xplm-go/xplm/logging"
)

// batchSize is how many samples accumulate before the loop callback
// hands them to the writer.
const batchSize = 64

// sample is one tick of readings, timed on the simulator clock.
type sample struct {
	simTime  float32
	readings []float64
}

// channel binds one configured accessor name to a numeric read.
type channel struct {
	name string
	read func() float64
}

// Recorder samples data accessors while a recording is active.
type Recorder struct {
	db       *DB
	log      *logging.Logger
	settings config.RecorderSettings

	mu       sync.Mutex
	loop     *flightloop.Loop
	id       string
	channels []channel
	pending  []sample
	batches  chan []sample
	done     chan struct{}
}

// New creates a recorder over an opened database. Nothing happens until
// Start.
func New(db *DB, settings config.RecorderSettings, log *logging.Logger) *Recorder {
	return &Recorder{db: db, settings: settings, log: log.Sub("fdr")}
}

// Recording returns the active recording's ID, or "" when idle.
func (r *Recorder) Recording() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}

// Start resolves the configured accessors, opens a recording row, and
// arms the sampling loop. Accessors that cannot be resolved are skipped;
// Start fails only when nothing at all is recordable.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loop != nil {
		return errors.New("fdr: already recording")
	}
	if r.settings.SampleHz <= 0 {
		return fmt.Errorf("fdr: sample rate %g is not positive", r.settings.SampleHz)
	}

	channels := resolveChannels(r.settings.DataRefs, r.log)
	if len(channels) == 0 {
		return errors.New("fdr: no recordable accessors resolved")
	}

	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = c.name
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	if _, err := r.db.sql.Exec(
		"INSERT INTO recordings (id, channels) VALUES (?, ?)", id, string(encoded),
	); err != nil {
		return fmt.Errorf("fdr: creating recording: %w", err)
	}

	loop, err := flightloop.New(flightloop.AfterFlightModel, r.tick)
	if err != nil {
		return err
	}
	if err := loop.Schedule(flightloop.Now()); err != nil {
		loop.Destroy()
		return err
	}

	r.id = id
	r.channels = channels
	r.loop = loop
	r.batches = make(chan []sample, 4)
	r.done = make(chan struct{})
	go r.drain(id, r.batches, r.done)

	r.log.Info().Str("recording", id).Int("channels", len(channels)).Msg("recording started")
	return nil
}

// Stop parks the loop, pushes buffered samples to the writer, and closes
// out the recording row. It blocks until everything has been committed.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if r.loop == nil {
		r.mu.Unlock()
		return errors.New("fdr: not recording")
	}
	loop, id := r.loop, r.id
	r.loop = nil
	loop.Destroy()

	// The final batch goes out whole. Blocking is fine here: Stop runs on
	// the plugin's own initiative, not once per frame.
	if len(r.pending) > 0 {
		r.batches <- r.pending
		r.pending = nil
	}
	close(r.batches)
	done := r.done
	r.batches, r.done, r.channels, r.id = nil, nil, nil, ""
	r.mu.Unlock()

	<-done

	if _, err := r.db.sql.Exec(
		"UPDATE recordings SET stopped_at = datetime('now') WHERE id = ?", id,
	); err != nil {
		return fmt.Errorf("fdr: closing recording: %w", err)
	}
	r.log.Info().Str("recording", id).Msg("recording stopped")
	return nil
}

// Flush hands any buffered samples to the writer without stopping.
func (r *Recorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

// tick runs on the flight loop: read every channel, buffer the sample,
// ask to be called again one sample period from now.
func (r *Recorder) tick(flightloop.Timing) flightloop.Next {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loop == nil {
		return flightloop.Stop()
	}

	readings := make([]float64, len(r.channels))
	for i, c := range r.channels {
		readings[i] = c.read()
	}
	r.pending = append(r.pending, sample{simTime: flightloop.ElapsedTime(), readings: readings})
	if len(r.pending) >= batchSize {
		r.flushLocked()
	}
	return flightloop.After(float32(1 / r.settings.SampleHz))
}

// flushLocked hands the pending batch to the writer. If the writer is
// behind, the batch stays pending and is retried next tick; a frame must
// never wait on the database.
func (r *Recorder) flushLocked() {
	if len(r.pending) == 0 || r.batches == nil {
		return
	}
	select {
	case r.batches <- r.pending:
		r.pending = nil
	default:
		r.log.Warn().Int("pending", len(r.pending)).Msg("sample writer behind, batch deferred")
	}
}

// drain commits batches until the channel closes. It never touches the
// host: everything it needs arrives through the channel.
func (r *Recorder) drain(id string, batches <-chan []sample, done chan<- struct{}) {
	defer close(done)
	for batch := range batches {
		if err := r.insertBatch(id, batch); err != nil {
			r.log.Error().Err(err).Int("samples", len(batch)).Msg("sample batch lost")
		}
	}
}

func (r *Recorder) insertBatch(id string, batch []sample) error {
	tx, err := r.db.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO samples (recording_id, sim_time, readings) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, s := range batch {
		encoded, err := json.Marshal(s.readings)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(id, s.simTime, string(encoded)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// resolveChannels binds each configured name to a numeric read. Misses
// and non-numeric accessors are logged and skipped; recording what can
// be recorded beats refusing to start.
func resolveChannels(names []string, log *logging.Logger) []channel {
	var out []channel
	for _, name := range names {
		d, err := dataref.Find(name)
		if err != nil {
			log.Warn().Str("dataref", name).Msg("accessor not found, channel skipped")
			continue
		}
		read, ok := numericRead(d)
		if !ok {
			log.Warn().Str("dataref", name).Str("types", d.Types().String()).
				Msg("accessor not numeric, channel skipped")
			continue
		}
		out = append(out, channel{name: name, read: read})
	}
	return out
}

// numericRead picks the widest numeric view the accessor publishes.
func numericRead(d *dataref.DataRef) (func() float64, bool) {
	if r, err := d.Double(); err == nil {
		return func() float64 { return r.Read() }, true
	}
	if r, err := d.Float(); err == nil {
		return func() float64 { return float64(r.Read()) }, true
	}
	if r, err := d.Int(); err == nil {
		return func() float64 { return float64(r.Read()) }, true
	}
	return nil, false
}
