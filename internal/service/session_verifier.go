package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-rentify/internal/model"
)

// SessionVerifier checks a presented credential on every protected request.
// A credential is only accepted while its token id is the latest one stored
// for its user, so a newer login or a logout revokes it immediately.
type SessionVerifier struct {
	store  TokenStore
	secret []byte
	now    func() time.Time
}

func NewSessionVerifier(store TokenStore, secret string) *SessionVerifier {
	return &SessionVerifier{
		store:  store,
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (v *SessionVerifier) Verify(ctx context.Context, raw string, opts model.VerifyOptions) (model.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Principal{}, model.ErrMissingCredential
	}

	claims, err := v.decode(raw)
	if err != nil {
		return model.Principal{}, err
	}

	// Role and ownership depend only on the signed claims, so a mismatch is
	// Forbidden whatever the store holds.
	if opts.Role != "" && !strings.EqualFold(string(claims.Role), opts.Role) {
		return model.Principal{}, model.ErrForbidden
	}

	if opts.OwnerID != "" && opts.OwnerID != claims.UserID {
		return model.Principal{}, model.ErrForbidden
	}

	latest, err := v.store.FindLatestByUser(ctx, claims.UserID)
	if errors.Is(err, model.ErrTokenNotFound) {
		return model.Principal{}, model.ErrSessionRevoked
	}
	if err != nil {
		slog.Error("session lookup failed", "user_id", claims.UserID, "error", err)
		return model.Principal{}, err
	}
	if latest.TokenID != claims.ID {
		return model.Principal{}, model.ErrSessionRevoked
	}

	return model.Principal{
		UserID:  claims.UserID,
		Role:    claims.Role,
		TokenID: claims.ID,
	}, nil
}

func (v *SessionVerifier) decode(raw string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidCredential, err)
	}
	if !parsed.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, model.ErrInvalidCredential
	}

	return claims, nil
}
