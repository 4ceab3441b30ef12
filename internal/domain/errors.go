package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationPhase tags whether a payload failed its schema before
// transmission or after the response was received
type ValidationPhase string

const (
	PhaseRequest  ValidationPhase = "request"
	PhaseResponse ValidationPhase = "response"
)

// FieldError maps a field path to its validation error message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is raised when a request or response body fails its schema
// contract. It is distinguishable from transport errors by the Phase tag and
// is never retried.
type ValidationError struct {
	Phase  ValidationPhase `json:"phase"`
	Fields []FieldError    `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s payload failed validation", e.Phase)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s payload failed validation: %s", e.Phase, strings.Join(parts, "; "))
}

// APIError represents a non-2xx backend response mapped to a user-facing
// message
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// IsSessionExpired reports whether the error should force a re-login
func (e *APIError) IsSessionExpired() bool {
	return e.Status == http.StatusUnauthorized
}

// statusMessages maps HTTP status codes to user-facing messages
var statusMessages = map[int]string{
	http.StatusBadRequest:   "Please check the required fields",
	http.StatusUnauthorized: "Your session has expired, please log in again",
	http.StatusForbidden:    "You do not have permission for this action",
	http.StatusNotFound:     "The requested resource was not found",
	http.StatusConflict:     "Conflict, the record may already exist",
}

const genericServerMessage = "The server could not process the request, please try again later"

// MessageForStatus returns the user-facing message for an HTTP status code
func MessageForStatus(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return genericServerMessage
}

// NewAPIError builds an APIError for a status code with optional backend detail
func NewAPIError(status int, detail string) *APIError {
	return &APIError{
		Status:  status,
		Message: MessageForStatus(status),
		Detail:  detail,
	}
}

// AsValidationError unwraps err as a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsAPIError unwraps err as an *APIError if it is one
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
