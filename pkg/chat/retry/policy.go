package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy is a small bounded retry policy: max attempts, base delay with
// jitter, and a short delay ceiling. Parameters are fixed at construction
// so they can be tested independently of the calls they guard.
type Policy struct {
	MaxAttempts   uint
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	Randomization float64
}

// DefaultGeneration is the policy for LLM generation calls: two attempts
// total with a short backoff between them.
func DefaultGeneration() Policy {
	return Policy{
		MaxAttempts:   2,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		Randomization: 0.3,
	}
}

func (p Policy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.RandomizationFactor = p.Randomization
	return b
}

// Do runs op under the policy, returning the first success or the last
// error once attempts are exhausted.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(p.MaxAttempts),
	)
}
