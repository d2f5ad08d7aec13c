package database

import (
	"context"
	"time"
)

const (
	retryMaxAttempts = 3
	retryBaseDelay   = time.Second
)

// WithRetry runs fn up to three times with a linear backoff of
// delay × attempt between tries. Callers opt in; hot request paths
// such as order creation do not use it.
func WithRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if attempt < retryMaxAttempts {
			select {
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return lastErr
}
