package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notebank/notebank/pkg/session"
	"github.com/notebank/notebank/pkg/validator"
)

// envelope is the standard JSON response structure.
type envelope struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

// errorDetail contains error information.
type errorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, code string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: code, Data: data})
}

// writeError maps domain errors onto HTTP statuses. Validation problems
// carry per-field details; everything else is collapsed to a code so that
// internals never leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	detail := &errorDetail{Message: http.StatusText(status)}
	var details map[string][]string

	switch {
	case validator.IsValidationError(err),
		errors.Is(err, session.ErrMissingUserID),
		errors.Is(err, session.ErrMissingSessionID),
		errors.Is(err, session.ErrMissingSessionToken),
		errors.Is(err, session.ErrInvalidRecord):
		status = http.StatusUnprocessableEntity
		code = "validation_error"
		detail.Message = "request failed validation"
		if verrs := validator.ExtractValidationErrors(err); !verrs.IsEmpty() {
			details = make(map[string][]string, len(verrs.Fields()))
			for _, field := range verrs.Fields() {
				details[field] = verrs.Get(field)
			}
		}

	case errors.Is(err, session.ErrNotFound):
		status = http.StatusUnauthorized
		code = "unauthorized"
		detail.Message = http.StatusText(status)

	case errors.Is(err, session.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		code = "store_unavailable"
		detail.Message = http.StatusText(status)

	case errors.Is(err, session.ErrCipherFailed):
		status = http.StatusInternalServerError
		code = "internal_error"
		detail.Message = http.StatusText(status)
	}

	detail.Code = code
	detail.Details = details

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: code, Error: detail})
}
