package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-rentify/internal/model"
)

// TokenIssuer mints a signed credential together with its TokenRecord,
// replacing whatever session the user had before.
type TokenIssuer struct {
	store    TokenStore
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenIssuer(store TokenStore, secret string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{
		store:    store,
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (i *TokenIssuer) Issue(ctx context.Context, userID string, role model.Role) (model.IssuedToken, error) {
	if err := i.store.DeleteByUser(ctx, userID); err != nil {
		slog.Error("invalidate previous sessions failed", "user_id", userID, "error", err)
		return model.IssuedToken{}, fmt.Errorf("invalidate previous sessions: %w", err)
	}

	// JWT numeric dates carry whole seconds; truncate so the record and the
	// embedded expiry agree exactly.
	now := i.now().UTC().Truncate(time.Second)
	tokenID := uuid.NewString()
	expiresAt := now.Add(i.lifetime)

	record := model.TokenRecord{
		UserID:    userID,
		TokenID:   tokenID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := i.store.Insert(ctx, record); err != nil {
		slog.Error("store session token failed", "user_id", userID, "error", err)
		return model.IssuedToken{}, fmt.Errorf("store session token: %w", err)
	}

	credential, err := jwt.NewWithClaims(jwt.SigningMethodHS256, model.SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString(i.secret)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("sign credential: %w", err)
	}

	return model.IssuedToken{
		Credential: credential,
		TokenID:    tokenID,
		ExpiresAt:  expiresAt,
	}, nil
}
