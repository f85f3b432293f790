// Package api exposes the cache-recovery toolchain as an HTTP surface
// under /api/v1, mirroring the gorilla/mux subrouter layout and CORS
// setup this codebase's main.go has always used, with the Tauri command
// surface it was ported from re-expressed as REST endpoints.
package api

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"cachesalvage/database"
	"cachesalvage/jobs"
	"cachesalvage/operator"
)

// Server holds every dependency the handler methods need.
type Server struct {
	db       *database.DB
	jobs     *jobs.Manager
	sessions *operator.Store
	s3Bucket string
}

// NewServer wires a Server from its dependencies.
func NewServer(db *database.DB, jm *jobs.Manager, sessions *operator.Store, s3Bucket string) *Server {
	return &Server{db: db, jobs: jm, sessions: sessions, s3Bucket: s3Bucket}
}

// Handler builds the full mux.Router, CORS-wrapped, ready to pass to
// http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/paths/default", s.handleEnumerateDefaultPaths).Methods("GET")
	v1.HandleFunc("/paths/validate", s.handleValidatePath).Methods("GET")
	v1.HandleFunc("/files", s.handleListCacheFiles).Methods("GET")
	v1.HandleFunc("/files/header", s.handleReadHeader).Methods("GET")
	v1.HandleFunc("/files/body", s.handleReadBody).Methods("GET")
	v1.HandleFunc("/files/content-type", s.handleReadContentType).Methods("GET")
	v1.HandleFunc("/files/sparse", s.handleReadSparse).Methods("GET")
	v1.HandleFunc("/files/sparse/prefix", s.handleSparsePrefix).Methods("GET")
	v1.HandleFunc("/files/sparse/size", s.handleSparseTotalSize).Methods("GET")

	v1.Handle("/files/copy", s.requireOperator(s.handleCopyEntry)).Methods("POST")
	v1.Handle("/files/concat", s.requireOperator(s.handleConcatEntries)).Methods("POST")
	v1.Handle("/mp4/reconstruct", s.requireOperator(s.handleReconstructMp4)).Methods("POST")
	v1.Handle("/mp4/dedup", s.requireOperator(s.handleDedupMoov)).Methods("POST")

	v1.HandleFunc("/diagnostics/permission", s.handleProbePermission).Methods("GET")
	v1.HandleFunc("/diagnostics/test-read", s.handleTestRead).Methods("GET")
	v1.HandleFunc("/diagnostics/binary-path", s.handleGetAppBinaryPath).Methods("GET")
	v1.HandleFunc("/diagnostics/diagnose", s.handleDiagnoseFileRead).Methods("GET")

	v1.Handle("/system/open-folder", s.requireOperator(s.handleOpenFolder)).Methods("POST")
	v1.Handle("/system/fix-sidecars", s.requireOperator(s.handleFixSidecars)).Methods("POST")

	v1.HandleFunc("/jobs/status", s.handleGetStatus).Methods("GET")
	v1.Handle("/jobs/history", s.requireOperator(s.handleJobHistory)).Methods("GET")

	v1.Handle("/export/s3", s.requireOperator(s.handleExportToS3)).Methods("POST")

	v1.HandleFunc("/ws/watch", s.handleWatch).Methods("GET")

	v1.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	v1.HandleFunc("/auth/whoami", s.handleWhoami).Methods("GET")

	allowedOrigins := gorillaHandlers.AllowedOrigins([]string{"http://localhost:5173", "http://127.0.0.1:5173"})
	allowedMethods := gorillaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})
	allowedHeaders := gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"})
	allowedCredentials := gorillaHandlers.AllowCredentials()

	return gorillaHandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders, allowedCredentials)(router)
}
