// Package web contains the HTTP plumbing shared by all handlers: response
// writing and the request-scoped middleware stack.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON marshals the payload and writes it with the given status code.
// A nil payload writes the status code only.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}
