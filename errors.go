package main

import (
	"encoding/json"
	"net/http"
)

// Stable machine-readable error codes, paired with HTTP statuses at the API
// boundary so clients do not have to pattern-match on message text.
const (
	CodeValidation = "validation"
	CodeAuth       = "auth"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func validationError(msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

func authError(msg string) *apiError {
	return &apiError{Status: http.StatusUnauthorized, Code: CodeAuth, Message: msg}
}

func notFoundError(msg string) *apiError {
	return &apiError{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func conflictError(msg string) *apiError {
	return &apiError{Status: http.StatusConflict, Code: CodeConflict, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps any failure onto the error taxonomy. Unrecognized errors are
// logged and surfaced as opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apiError); ok {
		writeJSON(w, apiErr.Status, apiErr)
		return
	}
	LogEvent("internal_error", "", map[string]interface{}{"error": err.Error()})
	writeJSON(w, http.StatusInternalServerError, &apiError{
		Code:    CodeInternal,
		Message: "Something went wrong",
	})
}
