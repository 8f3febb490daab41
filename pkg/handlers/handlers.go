// Package handlers provides HTTP response utilities for JSON endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
)

// Status is the body of health and readiness responses.
type Status struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// RespondJSON writes data as JSON with the given status code. Encoding
// happens before the header is written so a failure still yields a 500.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
