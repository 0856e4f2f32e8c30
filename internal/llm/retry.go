package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryClass sorts a Generate failure into how the retry loop treats it.
type retryClass int

const (
	// retryAbort: hand the error straight back. Context cancellation,
	// truncation (a MaxTokens problem, not a transient one).
	retryAbort retryClass = iota
	// retryOnce: worth exactly one more attempt. A malformed curriculum
	// or quiz usually means the model slipped once; a second identical
	// failure means the prompt is the problem.
	retryOnce
	// retryBackoff: transient. Throttling, outages, network errors.
	retryBackoff
)

func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryAbort
	}
	var truncated *ErrTruncated
	if errors.As(err, &truncated) {
		return retryAbort
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnce
	}
	return retryBackoff
}

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried with
// exponential backoff and malformed output gets a single repeat attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	wait := r.cfg.InitialWait
	repeated := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryAbort:
			return nil, err
		case retryOnce:
			if repeated {
				return nil, err
			}
			repeated = true
		}

		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		if sleepErr := r.sleep(ctx, pauseFor(err, wait)); sleepErr != nil {
			return nil, sleepErr
		}
		wait = min(time.Duration(float64(wait)*r.cfg.Multiplier), r.cfg.MaxWait)
	}
}

// pauseFor picks the wait before the next attempt: the provider's own
// Retry-After when it sent one, otherwise the backoff schedule with
// up to 20% jitter either way.
func pauseFor(err error, scheduled time.Duration) time.Duration {
	var throttled *ErrRateLimit
	if errors.As(err, &throttled) && throttled.RetryAfter > 0 {
		return throttled.RetryAfter
	}
	jitter := 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(float64(scheduled) * jitter)
}

func (r *retryProvider) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
