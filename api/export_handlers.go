package api

import (
	"net/http"

	"cachesalvage/export"
	"cachesalvage/jobs"
)

type exportToS3Request struct {
	LocalPath   string `json:"local_path"`
	Destination string `json:"destination"`
}

func (s *Server) handleExportToS3(w http.ResponseWriter, r *http.Request) {
	var req exportToS3Request
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uploader, err := export.NewUploader(s.s3Bucket)
	if err != nil {
		writeReadError(w, "export_to_s3", err)
		return
	}

	s.jobs.Publish(jobs.Event{Kind: jobs.KindRecovery, Stage: "uploading", Percent: 50})
	url, err := uploader.UploadFile(req.LocalPath, req.Destination)
	if err != nil {
		writeReadError(w, "export_to_s3", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
