// Package runlog defines the append-only audit trail of report battery
// runs.
//
// Every transition of a run (started, one row per finished report,
// completed or failed) is a row carrying the OpenTelemetry trace and span
// ids that were active, so a slow or failing report can be traced from
// the database straight to the span.
package runlog

import (
	"errors"
	"time"
)

// ErrNoRuns is returned when the log holds no runs yet.
var ErrNoRuns = errors.New("runlog: no runs recorded")

// Status is the lifecycle state recorded by a log entry.
type Status string

const (
	StatusStarted    Status = "STARTED"
	StatusReportDone Status = "REPORT_DONE"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Entry is a single row in the report_runs table.
type Entry struct {
	// RunID groups every entry written by one battery execution.
	RunID string `json:"run_id"`

	Status Status `json:"status"`

	// Report is the name of the report that just finished or failed.
	// Empty on STARTED and COMPLETED rows.
	Report string `json:"report,omitempty"`

	// Rows is the number of result rows the report produced.
	Rows int `json:"rows"`

	// Error is the failure message on FAILED rows.
	Error string `json:"error,omitempty"`

	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`

	// Elapsed is how long the report took. Zero on run-level rows.
	Elapsed time.Duration `json:"elapsed_ns"`

	UpdatedAt time.Time `json:"updated_at"`
}
