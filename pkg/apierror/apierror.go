package apierror

import (
	"fmt"
	"net/http"
)

// APIError is an error that carries its own client-facing code and status.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// BadRequest reports an invalid request field; field goes into Details.
func BadRequest(message string, field string) *APIError {
	return New("BAD_REQUEST", message, field, http.StatusBadRequest)
}

func Conflict(message string, field string) *APIError {
	return New("ALREADY_EXISTS", message, field, http.StatusConflict)
}
