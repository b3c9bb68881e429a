package fdr

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create recordings and samples",
		SQL: `
			CREATE TABLE recordings (
				id          TEXT PRIMARY KEY,
				started_at  TEXT NOT NULL DEFAULT (datetime('now')),
				stopped_at  TEXT,
				channels    TEXT NOT NULL
			);

			CREATE INDEX idx_recordings_started ON recordings (started_at);

			CREATE TABLE samples (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				recording_id TEXT NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
				sim_time     REAL NOT NULL,
				readings     TEXT NOT NULL,
				FOREIGN KEY (recording_id) REFERENCES recordings(id) ON DELETE CASCADE
			);

			CREATE INDEX idx_samples_recording ON samples (recording_id, id);
		`,
	},
}
