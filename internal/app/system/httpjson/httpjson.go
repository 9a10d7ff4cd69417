// Package httpjson holds the small JSON request/response helpers shared by
// every feature handler.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. The largest legitimate payloads
// here are banner reorders and review bodies; 1 MiB is generous.
const maxBodyBytes = 1 << 20

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK encodes v as JSON with status 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Error writes the standard error envelope {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body into v, limiting size and rejecting
// unknown fields so typos surface instead of silently dropping data.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
