package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cachesalvage/cache"
)

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}

// writeReadError maps a cache.ReadError to an HTTP status and logs it the
// way this codebase's handlers always log a failed operation before
// responding to the client.
func writeReadError(w http.ResponseWriter, op string, err error) {
	log.Printf("[api] %s failed: %v", op, err)

	var readErr *cache.ReadError
	if errors.As(err, &readErr) {
		switch readErr.Kind {
		case cache.IoDenied:
			http.Error(w, readErr.Error(), http.StatusForbidden)
		case cache.IoLocked:
			w.Header().Set("Retry-After", "1")
			http.Error(w, readErr.Error(), http.StatusServiceUnavailable)
		case cache.IoMissing:
			http.Error(w, readErr.Error(), http.StatusNotFound)
		default:
			http.Error(w, readErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
