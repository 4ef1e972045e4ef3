package llm

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: "unreached"},
	)
	p := WithBreaker(mock, BreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenRequests: 1}, quietLogger())

	for i := 0; i < 2; i++ {
		if _, err := p.Generate(context.Background(), Request{}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	bp, ok := p.(*BreakerProvider)
	if !ok {
		t.Fatalf("expected *BreakerProvider, got %T", p)
	}
	if bp.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", bp.State())
	}

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected wrapped ErrOpenState, got: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected open breaker to short-circuit, got %d calls", mock.CallCount())
	}
}

func TestBreaker_CancellationDoesNotTrip(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: context.Canceled},
		MockResponse{Err: context.Canceled},
		MockResponse{Content: "ok"},
	)
	p := WithBreaker(mock, BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute}, quietLogger())

	p.Generate(context.Background(), Request{})
	p.Generate(context.Background(), Request{})

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
}

func TestBreaker_ZeroThresholdDisabled(t *testing.T) {
	mock := NewMockProvider()
	p := WithBreaker(mock, BreakerConfig{}, quietLogger())
	if p != Provider(mock) {
		t.Fatalf("expected unwrapped provider, got %T", p)
	}
}
