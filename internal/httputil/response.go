// Package httputil carries the JSON response envelope shared by every
// endpoint: {success, message, data?, errors?, error?}.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope returned by all handlers
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondError sends a failure envelope with a message only
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Response{Success: false, Message: message})
}

// RespondValidation sends a 422 with per-field errors
func RespondValidation(w http.ResponseWriter, errors map[string]string) {
	RespondJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Invalid input",
		Errors:  errors,
	})
}
