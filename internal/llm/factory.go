package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tuturo/internal/store"
)

// Deps are the collaborators of the provider middleware chain.
type Deps struct {
	// Events receives one audit record per model call. Optional.
	Events store.EventRepo

	// Logger receives call and breaker logs. Defaults to a discarding logger.
	Logger logrus.FieldLogger

	// Base replaces the provider built from Config, e.g. a scripted
	// MockProvider for offline runs.
	Base Provider
}

// NewProvider creates a Provider from configuration, wrapped with the
// middleware chain: caller → timeout → retry → breaker → rate limit →
// logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	logger := deps.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	base := deps.Base
	if base == nil {
		var err error
		base, err = newBaseProvider(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
		}
	}

	p := WithLogging(base, cfg.Provider, deps.Events, logger)
	p = WithRateLimit(p, cfg.RateLimit)
	p = WithBreaker(p, cfg.Breaker, logger)
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// TimeoutProvider bounds the total time spent on one request, retries
// included.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p with a per-request deadline. A zero timeout leaves p
// unwrapped.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
