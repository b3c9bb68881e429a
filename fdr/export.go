package fdr

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Recording summarizes one stored recording.
type Recording struct {
	ID        string
	StartedAt time.Time
	StoppedAt time.Time // zero while still recording
	Channels  []string
	Samples   int
}

// Recordings lists stored recordings, newest first.
func Recordings(db *DB) ([]Recording, error) {
	rows, err := db.sql.Query(`
		SELECT r.id, r.started_at, COALESCE(r.stopped_at, ''), r.channels,
		       (SELECT COUNT(*) FROM samples s WHERE s.recording_id = r.id)
		FROM recordings r
		ORDER BY r.started_at DESC, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recording
	for rows.Next() {
		var rec Recording
		var started, stopped, channels string
		if err := rows.Scan(&rec.ID, &started, &stopped, &channels, &rec.Samples); err != nil {
			return nil, err
		}
		rec.StartedAt, _ = time.Parse(time.DateTime, started)
		if stopped != "" {
			rec.StoppedAt, _ = time.Parse(time.DateTime, stopped)
		}
		if err := json.Unmarshal([]byte(channels), &rec.Channels); err != nil {
			return nil, fmt.Errorf("fdr: recording %q channel list: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ExportCSV writes one recording as CSV: a header of sim_time plus the
// channel names, then one row per sample in capture order.
func ExportCSV(db *DB, recordingID string, w io.Writer) error {
	var encoded string
	err := db.sql.QueryRow(
		"SELECT channels FROM recordings WHERE id = ?", recordingID,
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("fdr: recording %q not found", recordingID)
	}
	if err != nil {
		return err
	}
	var channels []string
	if err := json.Unmarshal([]byte(encoded), &channels); err != nil {
		return fmt.Errorf("fdr: recording %q channel list: %w", recordingID, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"sim_time"}, channels...)); err != nil {
		return err
	}

	rows, err := db.sql.Query(
		"SELECT sim_time, readings FROM samples WHERE recording_id = ? ORDER BY id", recordingID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	record := make([]string, len(channels)+1)
	for rows.Next() {
		var simTime float64
		var readingsJSON string
		if err := rows.Scan(&simTime, &readingsJSON); err != nil {
			return err
		}
		var readings []float64
		if err := json.Unmarshal([]byte(readingsJSON), &readings); err != nil {
			return err
		}
		record[0] = strconv.FormatFloat(simTime, 'f', -1, 32)
		for i := range channels {
			v := 0.0
			if i < len(readings) {
				v = readings[i]
			}
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
