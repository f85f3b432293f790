// Package history defines the audit-ledger record type for host command
// invocations; the database package persists and lists it
// (database.RecordJob, database.ListJobHistory). No api handler calls
// RecordJob, so rows are written only by callers that invoke it directly.
package history

import "time"

// Record is one host command invocation, logged regardless of outcome so
// a reviewer can reconstruct what a recovery session actually did.
type Record struct {
	ID         string
	Kind       string
	Command    string
	Detail     string
	Succeeded  bool
	ErrorMsg   string
	StartedAt  time.Time
	FinishedAt time.Time
}
