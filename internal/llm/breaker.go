package llm

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling a failing provider for a while once it has
// failed FailureThreshold times in a row.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps a Provider with a circuit breaker. State changes are
// logged at warning level.
func WithBreaker(p Provider, cfg BreakerConfig, logger logrus.FieldLogger) Provider {
	if cfg.FailureThreshold == 0 {
		return p
	}
	settings := gobreaker.Settings{
		Name:        p.ModelID(),
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Caller cancellations say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"model": name,
				"from":  from.String(),
				"to":    to.String(),
			}).Warn("llm circuit breaker state changed")
		},
	}
	return &BreakerProvider{inner: p, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if err != nil {
		return nil, err
	}
	return out.(*Response), nil
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}

// State reports the breaker state, for health checks.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
