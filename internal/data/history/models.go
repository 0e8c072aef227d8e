package history

import "time"

const SchemaVersion = 1

// Run is one recorded conversion of one library.
type Run struct {
	RunID         string        `json:"run_id"`
	Library       string        `json:"library"`
	SchemaVersion int           `json:"schema_version"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration_ns"`
	FileCount     int           `json:"file_count"`
	WarningCount  int           `json:"warning_count"`
	Failed        bool          `json:"failed"`
}

// PassTiming is the per-pass breakdown of a run.
type PassTiming struct {
	RunID    string        `json:"run_id"`
	Pass     string        `json:"pass"`
	Ordinal  int           `json:"ordinal"`
	Duration time.Duration `json:"duration_ns"`
	Changed  bool          `json:"changed"`
}
