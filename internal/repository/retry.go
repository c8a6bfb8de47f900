package repository

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// withTimeout derives the per-call context for a store operation.
func withTimeout(ctx context.Context, opts StoreOptions) (context.Context, context.CancelFunc) {
	if opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, opts.Timeout)
}

// withRetry runs op until it succeeds, fails with a non-transient error,
// or the retry budget is spent. Only idempotent operations go through here.
func withRetry(ctx context.Context, opts StoreOptions, transient func(error) bool, op func(ctx context.Context) error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxInterval = time.Second
	policy.MaxElapsedTime = 0

	attempts := opts.Retries
	if attempts < 0 {
		attempts = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts)), ctx)

	return backoff.Retry(func() error {
		callCtx, cancel := withTimeout(ctx, opts)
		defer cancel()

		err := op(callCtx)
		if err == nil {
			return nil
		}
		if !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}
