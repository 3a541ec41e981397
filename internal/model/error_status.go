package model

import (
	"errors"
	"net/http"
)

// ErrorResponse is the HTTP status and client code a sentinel error maps to.
type ErrorResponse struct {
	Status  int
	Code    string
	Message string
}

// Order matters: a store failure wrapped together with another sentinel
// reports as unavailable.
var errorResponses = []struct {
	err  error
	resp ErrorResponse
}{
	{ErrStoreUnavailable, ErrorResponse{http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store unavailable"}},
	{ErrMissingCredential, ErrorResponse{http.StatusUnauthorized, "MISSING_CREDENTIAL", "Token not provided"}},
	{ErrInvalidCredential, ErrorResponse{http.StatusUnauthorized, "INVALID_CREDENTIAL", "Failed to authenticate token"}},
	{ErrSessionRevoked, ErrorResponse{http.StatusUnauthorized, "SESSION_REVOKED", "Session is no longer active"}},
	{ErrForbidden, ErrorResponse{http.StatusForbidden, "FORBIDDEN", "Insufficient permissions"}},
	{ErrUserNotFound, ErrorResponse{http.StatusNotFound, "NOT_FOUND", "User not found"}},
	{ErrInvalidCredentials, ErrorResponse{http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials"}},
	{ErrUserAlreadyExists, ErrorResponse{http.StatusConflict, "ALREADY_EXISTS", "User already exists"}},
	{ErrPropertyNotFound, ErrorResponse{http.StatusNotFound, "NOT_FOUND", "Property not found"}},
	{ErrInvalidInput, ErrorResponse{http.StatusBadRequest, "BAD_REQUEST", "Invalid input"}},
}

// LookupErrorResponse reports the response for the first sentinel err wraps.
func LookupErrorResponse(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}
	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			return e.resp, true
		}
	}
	return ErrorResponse{}, false
}
