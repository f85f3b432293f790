package api

import (
	"net/http"
	"os"

	"cachesalvage/jobs"
	"cachesalvage/mp4"
	"cachesalvage/reconstruct"
)

type reconstructMp4Request struct {
	HeaderPath string   `json:"header_path"`
	ChunkPaths []string `json:"chunk_paths"`
	Output     string   `json:"output"`
}

func (s *Server) handleReconstructMp4(w http.ResponseWriter, r *http.Request) {
	var req reconstructMp4Request
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	release, ok := s.jobs.Begin(jobs.KindRecovery)
	if !ok {
		http.Error(w, "a recovery job is already running", http.StatusConflict)
		return
	}
	defer release()

	s.jobs.Publish(jobs.Event{Kind: jobs.KindRecovery, Stage: "reconstructing", Percent: 10})
	written, err := reconstruct.Reconstruct(req.HeaderPath, req.ChunkPaths, req.Output)
	if err != nil {
		s.jobs.Publish(jobs.Event{Kind: jobs.KindRecovery, Stage: "failed", Err: err.Error(), Done: true})
		writeReadError(w, "reconstruct_mp4", err)
		return
	}

	s.jobs.Publish(jobs.Event{Kind: jobs.KindRecovery, Stage: "complete", Percent: 100})
	writeJSON(w, http.StatusOK, map[string]uint64{"bytes_written": written})
}

type dedupMoovRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleDedupMoov(w http.ResponseWriter, r *http.Request) {
	var req dedupMoovRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		writeReadError(w, "dedup_moov", err)
		return
	}

	count, deduped := mp4.DedupMoov(data)
	if deduped != nil {
		if err := os.WriteFile(req.Path, deduped, 0o644); err != nil {
			writeReadError(w, "dedup_moov", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"moov_count": count})
}
