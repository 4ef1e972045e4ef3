package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimit_AllowsBurst(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "a"}, MockResponse{Content: "b"})
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 1, Burst: 2})

	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRateLimit_DeadlineShorterThanWait(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "a"}, MockResponse{Content: "b"})
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 1, Burst: 1})

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected second call to be held back, got %d calls", mock.CallCount())
	}
}

func TestRateLimit_CanceledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "a"})
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 60, Burst: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestRateLimit_ZeroRateDisabled(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, RateLimitConfig{}); p != Provider(mock) {
		t.Fatalf("expected unwrapped provider, got %T", p)
	}
}
