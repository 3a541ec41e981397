package service

import (
	"context"
	"log/slog"
	"time"
)

type expiredTokenStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// TokenPurger removes token records past their expiry. Expired records are
// already rejected on decode, so purging only reclaims storage.
type TokenPurger struct {
	store expiredTokenStore
}

func NewTokenPurger(store expiredTokenStore) *TokenPurger {
	return &TokenPurger{store: store}
}

func (p *TokenPurger) PurgeOnce(ctx context.Context) {
	removed, err := p.store.PurgeExpired(ctx)
	if err != nil {
		slog.Warn("purge expired tokens failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("purged expired tokens", "count", removed)
	}
}

// StartTicker calls PurgeOnce every interval until ctx is cancelled.
func (p *TokenPurger) StartTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.PurgeOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PurgeOnce(ctx)
		}
	}
}
