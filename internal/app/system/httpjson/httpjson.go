// Package httpjson holds the small JSON response helpers shared by the
// API feature handlers.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body. Used for mutations whose only
// payload is caller-facing copy ("You joined the faction.").
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error writes an {"error": ...} body. The message must be short and
// human-readable; internals (stack traces, document IDs, driver errors)
// never go through here.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body into dst. Unknown fields are rejected
// so typos in action discriminators fail loudly instead of silently
// doing nothing.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
