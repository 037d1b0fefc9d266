package transport

import (
	"context"
	"errors"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
)

// Do runs fn with a context that is cancelled once limit elapses. fn must finish
// consuming any response body before returning. A limit of zero disables the bound.
// Nothing is retried.
func Do[R any](ctx context.Context, limit time.Duration, fn func(ctx context.Context) (R, error)) (R, error) {
	if limit <= 0 {
		return fn(ctx)
	}

	policy := timeout.New[R](limit)
	return failsafe.With[R](policy).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[R]) (R, error) {
			return fn(exec.Context())
		})
}

// IsTimeout reports whether err is the timeout raised by Do.
func IsTimeout(err error) bool {
	return err != nil && errors.Is(err, timeout.ErrExceeded)
}
