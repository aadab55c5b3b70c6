package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardResult is the outcome of scraping a single board within an
// ingestion run.
type BoardResult struct {
	Board    string `json:"board"`
	Source   string `json:"source"`
	Fetched  int    `json:"fetched"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

// IngestResult summarizes one ingestion run across all boards. A run
// with failed boards still reports OK results for the boards that
// succeeded; the caller decides nothing from it beyond health.
type IngestResult struct {
	RunID     uuid.UUID     `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Boards    []BoardResult `json:"boards"`
	Imported  int           `json:"imported"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
}

// SweepFailure records one follow-up the dispatcher could not notify.
type SweepFailure struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// SweepResult is the tally of one dispatcher sweep. Processed counts
// every due follow-up the sweep attempted; a failure never aborts the
// rest of the sweep.
type SweepResult struct {
	SweepID   uuid.UUID      `json:"sweep_id"`
	StartedAt time.Time      `json:"started_at"`
	Processed int            `json:"processed"`
	Sent      int            `json:"sent"`
	Failed    int            `json:"failed"`
	Failures  []SweepFailure `json:"failures,omitempty"`
}
