package git

import (
	"context"

	"github.com/avast/retry-go/v4"
	platformerrors "github.com/jmgilman/gitbind/errors"
)

// withRetry runs fn under the repository's retry policy. Only errors
// classified as retryable are attempted again, and the last error is returned
// as-is so errors.Is keeps working on it.
func (r *Repository) withRetry(ctx context.Context, op string, fn func() error) error {
	attempts := r.retry.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(fn,
		retry.Attempts(attempts),
		retry.Delay(r.retry.Delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return retry.IsRecoverable(err) && platformerrors.IsRetryable(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("operation failed, retrying",
				"op", op,
				"attempt", n+1,
				"max_attempts", attempts,
				"error", err,
			)
		}),
	)
}
