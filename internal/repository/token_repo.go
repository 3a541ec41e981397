package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-rentify/internal/model"
)

// TokenRepository stores session token metadata in the token_metadata table.
type TokenRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewTokenRepository(pool *pgxpool.Pool, timeout time.Duration) *TokenRepository {
	return &TokenRepository{pool: pool, timeout: timeout}
}

func (r *TokenRepository) FindLatestByUser(ctx context.Context, userID string) (model.TokenRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rec model.TokenRecord
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, token_id, created_at, expires_at FROM token_metadata
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, userID).
		Scan(&rec.UserID, &rec.TokenID, &rec.CreatedAt, &rec.ExpiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.TokenRecord{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.TokenRecord{}, storeError("find latest token", err)
	}
	return rec, nil
}

func (r *TokenRepository) Insert(ctx context.Context, rec model.TokenRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO token_metadata (user_id, token_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.UserID, rec.TokenID, rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return storeError("insert token", err)
	}
	return nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `DELETE FROM token_metadata WHERE user_id = $1`, userID)
	if err != nil {
		return storeError("delete tokens by user", err)
	}
	return nil
}

func (r *TokenRepository) DeleteByTokenID(ctx context.Context, tokenID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `DELETE FROM token_metadata WHERE token_id = $1`, tokenID)
	if err != nil {
		return storeError("delete tokens by id", err)
	}
	return nil
}

func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM token_metadata WHERE expires_at <= now()`)
	if err != nil {
		return 0, storeError("purge expired tokens", err)
	}
	return tag.RowsAffected(), nil
}
