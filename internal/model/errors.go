package model

import "errors"

var (
	// Credential and session errors
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrSessionRevoked    = errors.New("session revoked")
	ErrForbidden         = errors.New("forbidden")

	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token store errors
	ErrTokenNotFound    = errors.New("token not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Property related errors
	ErrPropertyNotFound = errors.New("property not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)

// Error kinds reported by AuthErrorKind.
const (
	KindMissingCredential  = "MissingCredential"
	KindInvalidCredential  = "InvalidCredential"
	KindSessionRevoked     = "SessionRevoked"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindInvalidCredentials = "InvalidCredentials"
	KindStoreUnavailable   = "StoreUnavailable"
)

var authErrorKinds = []struct {
	err  error
	kind string
}{
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrMissingCredential, KindMissingCredential},
	{ErrInvalidCredential, KindInvalidCredential},
	{ErrSessionRevoked, KindSessionRevoked},
	{ErrForbidden, KindForbidden},
	{ErrUserNotFound, KindNotFound},
	{ErrInvalidCredentials, KindInvalidCredentials},
}

// AuthErrorKind returns the auth error kind carried by err, or "" when err
// is not one of the auth errors. Store failures win over any other kind
// wrapped alongside them.
func AuthErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range authErrorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}
