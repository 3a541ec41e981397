//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"go-rentify/internal/config"
	"go-rentify/internal/database"
	"go-rentify/internal/handler"
	"go-rentify/internal/middleware"
	"go-rentify/internal/repository"
	"go-rentify/internal/router"
	"go-rentify/internal/service"
)

const testSecret = "integration-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func openDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.New(ctx, url, 4, 0)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(ctx))
	t.Cleanup(db.Close)

	return db
}

func newServer(t *testing.T) (*httptest.Server, *repository.TokenRepository) {
	t.Helper()

	db := openDB(t)
	tokens := repository.NewTokenRepository(db.Pool, 5*time.Second)
	users := repository.NewUserRepository(db.Pool, 5*time.Second)
	properties := repository.NewPropertyRepository(db.Pool, 5*time.Second)

	issuer := service.NewTokenIssuer(tokens, testSecret, time.Hour)
	verifier := service.NewSessionVerifier(tokens, testSecret)
	authService := service.NewAuthService(users, tokens, issuer)

	cfg := &config.Config{
		AppEnv:         config.EnvDevelopment,
		RequestTimeout: 30 * time.Second,
		CORSOrigins:    []string{"*"},
	}

	server := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(verifier), router.Handlers{
		Auth:     handler.NewAuthHandler(authService, true),
		Property: handler.NewPropertyHandler(service.NewPropertyService(properties), true),
	}, db.Health))
	t.Cleanup(server.Close)

	return server, tokens
}

func uniqueEmail() string {
	return "it-" + uuid.NewString()[:8] + "@example.com"
}

func postJSON(t *testing.T, url string, payload any, token string) (*http.Response, envelope) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return doRequest(t, http.MethodPost, url, body, token)
}

func doRequest(t *testing.T, method string, url string, body []byte, token string) (*http.Response, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

// registerAndLogin creates a user of the given role and returns its id and
// a signed credential.
func registerAndLogin(t *testing.T, baseURL string, role string) (string, string) {
	t.Helper()

	email := uniqueEmail()
	resp, env := postJSON(t, baseURL+"/api/register", map[string]string{
		"email":       email,
		"firstName":   "Test",
		"lastName":    "User",
		"password":    "Passw0rd!",
		"phoneNumber": "5551234567",
		"userType":    role,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)

	token, userID := login(t, baseURL, email)
	return userID, token
}

func login(t *testing.T, baseURL string, email string) (string, string) {
	t.Helper()

	resp, env := postJSON(t, baseURL+"/api/auth/login", map[string]string{"email": email, "password": "Passw0rd!"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}
