package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	scanRunning, recoveryRunning := s.jobs.Status()
	writeJSON(w, http.StatusOK, map[string]bool{
		"scan_running":     scanRunning,
		"recovery_running": recoveryRunning,
	})
}

func (s *Server) handleJobHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.db.ListJobHistory(limit)
	if err != nil {
		writeReadError(w, "job_history", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
