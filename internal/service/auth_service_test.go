package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-rentify/internal/model"
	"go-rentify/pkg/apierror"
)

func newTestAuth(t *testing.T) (*AuthService, *SessionVerifier, *memTokenStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newMemUserStore(model.User{
		ID:           "user-1",
		Email:        "a@x.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumber:  "5551234567",
		PasswordHash: string(hash),
		Role:         model.RoleSeller,
		CreatedAt:    time.Now().UTC(),
	})
	tokens := newMemTokenStore()
	issuer := NewTokenIssuer(tokens, testSecret, time.Hour)
	auth := NewAuthService(users, tokens, issuer)
	auth.bcryptCost = bcrypt.MinCost

	return auth, NewSessionVerifier(tokens, testSecret), tokens
}

func TestLoginScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, verifier, tokens := newTestAuth(t)

	first, err := auth.Login(ctx, "  A@X.com ", "Passw0rd!")
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)
	require.Equal(t, "user-1", first.User.ID)
	require.Equal(t, "a@x.com", first.User.Email)

	principal, err := verifier.Verify(ctx, first.Token, model.VerifyOptions{})
	require.NoError(t, err)
	require.Equal(t, "user-1", principal.UserID)

	second, err := auth.Login(ctx, "a@x.com", "Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	_, err = verifier.Verify(ctx, first.Token, model.VerifyOptions{})
	require.ErrorIs(t, err, model.ErrSessionRevoked)

	principal, err = verifier.Verify(ctx, second.Token, model.VerifyOptions{})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, principal))
	_, err = verifier.Verify(ctx, second.Token, model.VerifyOptions{})
	require.ErrorIs(t, err, model.ErrSessionRevoked)
	require.Zero(t, tokens.countFor("user-1"))
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _, tokens := newTestAuth(t)

	_, err := auth.Login(ctx, "nobody@x.com", "Passw0rd!")
	require.ErrorIs(t, err, model.ErrUserNotFound)
	require.Equal(t, model.KindNotFound, model.AuthErrorKind(err))

	_, err = auth.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	require.Equal(t, model.KindInvalidCredentials, model.AuthErrorKind(err))

	require.Zero(t, tokens.inserts)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, verifier, tokens := newTestAuth(t)

	result, err := auth.Login(ctx, "a@x.com", "Passw0rd!")
	require.NoError(t, err)
	principal, err := verifier.Verify(ctx, result.Token, model.VerifyOptions{})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, principal))
	deletes := tokens.deletes
	require.NoError(t, auth.Logout(ctx, principal))
	require.Equal(t, deletes, tokens.deletes)
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, verifier, _ := newTestAuth(t)

	result, err := auth.Login(ctx, "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	require.NoError(t, auth.Revoke(ctx, model.RevokeTarget{UserID: "user-1"}))
	_, err = verifier.Verify(ctx, result.Token, model.VerifyOptions{})
	require.ErrorIs(t, err, model.ErrSessionRevoked)

	err = auth.Revoke(ctx, model.RevokeTarget{})
	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestLogoutPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	auth, _, tokens := newTestAuth(t)
	tokens.err = storeDown()

	err := auth.Logout(context.Background(), model.Principal{UserID: "user-1", TokenID: "t"})
	require.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	valid := model.RegisterRequest{
		Email:       " New@Example.com ",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Password:    "Secur3!pass",
		PhoneNumber: "5550001111",
		UserType:    "buyer",
	}

	t.Run("creates a user and logs in with the same password", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)

		user, err := auth.Register(ctx, valid)
		require.NoError(t, err)
		require.Equal(t, "new@example.com", user.Email)
		require.Equal(t, model.RoleBuyer, user.Role)

		result, err := auth.Login(ctx, "new@example.com", "Secur3!pass")
		require.NoError(t, err)
		require.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)

		req := valid
		req.Email = "A@x.com"
		_, err := auth.Register(ctx, req)
		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		auth, _, _ := newTestAuth(t)

		cases := map[string]func(r *model.RegisterRequest){
			"email":       func(r *model.RegisterRequest) { r.Email = "nope" },
			"firstName":   func(r *model.RegisterRequest) { r.FirstName = "Bartholomew-the-third" },
			"lastName":    func(r *model.RegisterRequest) { r.LastName = "" },
			"password":    func(r *model.RegisterRequest) { r.Password = "password" },
			"phoneNumber": func(r *model.RegisterRequest) { r.PhoneNumber = "12345" },
			"userType":    func(r *model.RegisterRequest) { r.UserType = "ADMIN" },
		}
		for field, mutate := range cases {
			req := valid
			mutate(&req)

			_, err := auth.Register(ctx, req)
			var apiErr *apierror.APIError
			require.True(t, errors.As(err, &apiErr), field)
			require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus, field)
			require.Equal(t, field, apiErr.Details, field)
		}
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	auth, _, _ := newTestAuth(t)

	user, err := auth.Me(context.Background(), model.Principal{UserID: "user-1"})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)

	_, err = auth.Me(context.Background(), model.Principal{UserID: "missing"})
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
