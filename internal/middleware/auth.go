package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-rentify/internal/model"
)

type sessionVerifier interface {
	Verify(ctx context.Context, raw string, opts model.VerifyOptions) (model.Principal, error)
}

type contextKey string

const principalContextKey contextKey = "auth_principal"

// AuthMiddleware runs session verification in front of protected routes.
// Nothing is cached: every request is checked against the token store.
type AuthMiddleware struct {
	verifier sessionVerifier
}

func NewAuthMiddleware(verifier sessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.require("", "")(next)
}

// RequireRole admits callers whose role matches role, ignoring case.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return m.require(role, "")
}

// RequireOwner admits callers with the given role whose user id equals the
// ownerParam URL parameter.
func (m *AuthMiddleware) RequireOwner(role string, ownerParam string) func(http.Handler) http.Handler {
	return m.require(role, ownerParam)
}

func (m *AuthMiddleware) require(role string, ownerParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			opts := model.VerifyOptions{Role: role}
			if ownerParam != "" {
				opts.OwnerID = chi.URLParam(r, ownerParam)
			}

			principal, err := m.verifier.Verify(r.Context(), credentialFromRequest(r), opts)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			// An owner route without its parameter matches no caller.
			if ownerParam != "" && opts.OwnerID == "" {
				writeAuthError(w, model.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(model.Principal)
	return principal, ok
}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// credentialFromRequest reads the raw authorization header. A "Bearer "
// prefix is accepted and stripped.
func credentialFromRequest(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected server error"}

	if resp, ok := model.LookupErrorResponse(err); ok {
		status = resp.Status
		body.Code = resp.Code
		body.Message = resp.Message
	} else {
		slog.Error("unexpected session verification error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{Success: false, Error: body})
}

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}
