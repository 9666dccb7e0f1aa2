// Package handlers implements the HTTP handlers for job roles and
// applications. Handlers parse request parameters, delegate to the services
// and translate error kinds to status codes.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/blockedby/hiretrack/internal/errs"
)

// envelope is the JSON response wrapper used by all endpoints.
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// statusForKind maps the error taxonomy to HTTP status codes. The switch is
// exhaustive over errs.Kind; anything unclassified is a 500.
func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindBusinessLogic:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	status := statusForKind(kind)

	msg := err.Error()
	if kind == errs.KindInternal {
		// internal detail stays in the logs
		msg = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   msg,
		Fields:  errs.FieldsOf(err),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}
