package database

import (
	"github.com/google/uuid"

	"cachesalvage/history"
)

// RecordJob appends a job history entry, assigning an ID if the caller
// left one unset.
func (db *DB) RecordJob(r history.Record) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := db.Exec(`
		INSERT INTO job_history (id, kind, command, detail, succeeded, error_msg, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.Kind, r.Command, r.Detail, r.Succeeded, r.ErrorMsg, r.StartedAt, r.FinishedAt)
	return err
}

// ListJobHistory returns the most recent limit entries, newest first.
func (db *DB) ListJobHistory(limit int) ([]history.Record, error) {
	rows, err := db.Query(`
		SELECT id, kind, command, detail, succeeded, error_msg, started_at, finished_at
		FROM job_history
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []history.Record
	for rows.Next() {
		var r history.Record
		if err := rows.Scan(&r.ID, &r.Kind, &r.Command, &r.Detail, &r.Succeeded, &r.ErrorMsg, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
