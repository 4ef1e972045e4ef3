package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitProvider throttles requests with a token bucket so bursts of
// theory requests stay under the provider's quota.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with a client-side rate limiter. A zero
// rate leaves p unwrapped.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerMinute <= 0 {
		return p
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RequestsPerMinute / 60)
	return &RateLimitProvider{inner: p, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The wait would outlast the context deadline.
		return nil, &ErrRateLimit{Err: fmt.Errorf("local limiter: %w", err)}
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
