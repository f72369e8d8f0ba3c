// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/jobboard/pkg/apperr"
)

// ErrorResponse is the uniform body written for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError normalizes err, logs it, and writes the uniform error body
// with the status code of its kind.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	e := apperr.Normalize(err)
	status := e.Status()

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "kind", e.Kind, "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "kind", e.Kind, "status", status, "error", err)
	}

	RespondJSON(w, status, ErrorResponse{
		Success: false,
		Message: e.Message,
	})
}
