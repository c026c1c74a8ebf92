// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts core errors to JSON error responses with matching status codes

package handlers

import (
	"encoding/json"
	"net/http"

	"feedmedia/core/errors"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps core errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsParse(err):
		return http.StatusUnprocessableEntity
	case errors.IsStatus(err), errors.IsTransport(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// writeErr writes err with the status code its kind maps to
func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}
