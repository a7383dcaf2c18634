package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hugo-lorenzo-mato/docgate/internal/core"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a domain error onto an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch domErr.Category {
	case core.ErrCatValidation, core.ErrCatParse:
		status = http.StatusBadRequest
	case core.ErrCatNotFound:
		status = http.StatusNotFound
	case core.ErrCatState, core.ErrCatStorage:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, errorResponse{
		Error:    domErr.Message,
		Code:     domErr.Code,
		Category: string(domErr.Category),
	})
}

// badRequest writes a plain validation failure.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:    message,
		Category: string(core.ErrCatValidation),
	})
}
