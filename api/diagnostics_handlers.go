package api

import (
	"net/http"

	"cachesalvage/diagnostics"
	"cachesalvage/sidecar"
)

func (s *Server) handleProbePermission(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diagnostics.ProbeFullDiskAccess())
}

func (s *Server) handleTestRead(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, diagnostics.TestPathAccess(path))
}

func (s *Server) handleGetAppBinaryPath(w http.ResponseWriter, r *http.Request) {
	p, err := diagnostics.GetAppBinaryPath()
	if err != nil {
		writeReadError(w, "get_app_binary_path", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"binary_path": p})
}

func (s *Server) handleDiagnoseFileRead(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, diagnostics.DiagnoseFileRead(path))
}

func (s *Server) handleOpenFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := sidecar.OpenFolder(req.Path); err != nil {
		writeReadError(w, "open_folder", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleFixSidecars(w http.ResponseWriter, r *http.Request) {
	result, err := sidecar.FixSidecarPermissions()
	if err != nil {
		writeReadError(w, "fix_sidecar_permissions", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
