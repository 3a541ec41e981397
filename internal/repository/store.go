package repository

import (
	"context"
	"fmt"
	"time"

	"go-rentify/internal/model"
)

const defaultStoreTimeout = 5 * time.Second

// withTimeout bounds a single store call.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError tags a driver failure, including a deadline, as ErrStoreUnavailable.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
