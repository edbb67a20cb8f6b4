package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform API response shape
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single field-level validation violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON sends a response envelope
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// OK sends a 200 response with a message and data
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response with a message only
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{
		Success: false,
		Message: message,
	})
}

// Unauthorized sends a 401 response
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

// BadRequest sends a 400 response
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// ValidationFailed sends a 400 response carrying field violations
func ValidationFailed(w http.ResponseWriter, violations []FieldError) {
	JSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed.",
		Errors:  violations,
	})
}

// InternalError sends a 500 response
func InternalError(w http.ResponseWriter, message string) {
	Fail(w, http.StatusInternalServerError, message)
}
