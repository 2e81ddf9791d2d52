package pipeline

import (
	"context"
	"time"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
)

// retrySleepFunc is the sleep used between attempts (injectable for tests)
var retrySleepFunc = sleepCtx

// RetryPolicy is the single retry/backoff policy applied to every external
// boundary call. Transient failures are retried with exponential backoff up
// to the attempt bound; once the bound is hit the failure is permanent.
// Permanent and fatal failures return immediately.
type RetryPolicy struct {
	maxAttempts int
	base        time.Duration
	multiplier  float64
}

// NewRetryPolicy builds a policy from configuration
func NewRetryPolicy(cfg model.RetryConfig) *RetryPolicy {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	base := cfg.BackoffBase
	if base <= 0 {
		base = time.Second
	}
	multiplier := cfg.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}

	return &RetryPolicy{
		maxAttempts: maxAttempts,
		base:        base,
		multiplier:  multiplier,
	}
}

// Do runs fn until it succeeds, fails non-transiently, the attempt bound
// is exhausted, or ctx ends. The returned error is fn's last error (or
// ctx's), still carrying its fault classification.
func (p *RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := p.base

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !fault.IsTransient(lastErr) {
			return lastErr
		}
		if attempt == p.maxAttempts {
			break
		}

		if err := retrySleepFunc(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.multiplier)
	}

	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
