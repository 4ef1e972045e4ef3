package llm

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := r.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	// An invalid response is retried once per call.
	invalidRetried := false

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(r.config.InitialWait),
		retry.MaxDelay(r.config.MaxWait),
		retry.DelayType(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return shouldRetry(err, &invalidRetried)
		}),
	}
	if r.config.MaxJitter > 0 {
		opts = append(opts, retry.MaxJitter(r.config.MaxJitter))
	}

	return retry.DoWithData(func() (*Response, error) {
		return r.inner.Generate(ctx, req)
	}, opts...)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay honours a provider's Retry-After and otherwise backs off
// exponentially with random jitter.
func (r *RetryProvider) delay(n uint, err error, cfg *retry.Config) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	if r.config.MaxJitter <= 0 {
		return retry.BackOffDelay(n, err, cfg)
	}
	return retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)(n, err, cfg)
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error, invalidRetried *bool) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Max tokens is a configuration issue, not transient.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, outages and network errors are treated as transient.
	return true
}
