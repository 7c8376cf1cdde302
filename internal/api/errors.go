package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/joestump/noticeboard/internal/metrics"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeStoreError logs a persistence failure and answers with a generic 500.
// Driver messages are never sent to the client.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	log.Printf("api: %s: %v", op, err)
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
	writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

// decodeJSON reads a JSON request body into v, capped at maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

const maxBodyBytes = 1 << 20
