package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rentify/internal/model"
)

type stubVerifier struct {
	raw  string
	opts model.VerifyOptions
	err  error
}

func (s *stubVerifier) Verify(_ context.Context, raw string, opts model.VerifyOptions) (model.Principal, error) {
	s.raw = raw
	s.opts = opts
	if raw == "" {
		return model.Principal{}, model.ErrMissingCredential
	}
	if s.err != nil {
		return model.Principal{}, s.err
	}
	return model.Principal{UserID: "seller-1", Role: model.RoleSeller, TokenID: "tok-1"}, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *model.APIError {
	t.Helper()

	var resp model.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func principalEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(principal.UserID))
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("missing header is unauthorized", func(t *testing.T) {
		stub := &stubVerifier{}
		handler := NewAuthMiddleware(stub).RequireAuth(principalEcho(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "MISSING_CREDENTIAL", decodeError(t, rec).Code)
	})

	t.Run("raw header is passed through and principal reaches the handler", func(t *testing.T) {
		stub := &stubVerifier{}
		handler := NewAuthMiddleware(stub).RequireAuth(principalEcho(t))

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("authorization", "raw.jwt.value")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "seller-1", rec.Body.String())
		require.Equal(t, "raw.jwt.value", stub.raw)
		require.Equal(t, model.VerifyOptions{}, stub.opts)
	})

	t.Run("bearer prefix is stripped", func(t *testing.T) {
		stub := &stubVerifier{}
		handler := NewAuthMiddleware(stub).RequireAuth(principalEcho(t))

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer raw.jwt.value")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "raw.jwt.value", stub.raw)
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credential", model.ErrInvalidCredential, http.StatusUnauthorized, "INVALID_CREDENTIAL"},
		{"revoked session", model.ErrSessionRevoked, http.StatusUnauthorized, "SESSION_REVOKED"},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"store unavailable", model.ErrStoreUnavailable, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubVerifier{err: tc.err}
			handler := NewAuthMiddleware(stub).RequireAuth(principalEcho(t))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			req.Header.Set("Authorization", "token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.code, decodeError(t, rec).Code)
		})
	}
}

func TestRequireOwner(t *testing.T) {
	t.Parallel()

	stub := &stubVerifier{}
	auth := NewAuthMiddleware(stub)

	r := chi.NewRouter()
	r.With(auth.RequireOwner("seller", "sellerId")).Post("/property/{sellerId}", principalEcho(t).ServeHTTP)

	req := httptest.NewRequest(http.MethodPost, "/property/seller-1", nil)
	req.Header.Set("Authorization", "token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.VerifyOptions{Role: "seller", OwnerID: "seller-1"}, stub.opts)
}

func TestRequireOwnerWithoutParam(t *testing.T) {
	t.Parallel()

	stub := &stubVerifier{}
	r := chi.NewRouter()
	r.With(NewAuthMiddleware(stub).RequireOwner("seller", "sellerId")).Post("/property", principalEcho(t).ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/property", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "MISSING_CREDENTIAL", decodeError(t, rec).Code)

	req := httptest.NewRequest(http.MethodPost, "/property", nil)
	req.Header.Set("Authorization", "token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "FORBIDDEN", decodeError(t, rec).Code)
	require.Equal(t, model.VerifyOptions{Role: "seller"}, stub.opts)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	stub := &stubVerifier{}
	handler := NewAuthMiddleware(stub).RequireRole("seller")(principalEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, model.VerifyOptions{Role: "seller"}, stub.opts)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	Recovery(false)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, decodeError(t, rec).Details)

	rec = httptest.NewRecorder()
	Recovery(true)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "boom", decodeError(t, rec).Details)
}

func TestLoggingSetsRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := Logging(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "fixed-id", rec.Header().Get(requestIDHeader))
}
