package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tuturo/internal/store"
)

func openTestRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := openTestRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: "['Soil']",
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, "mock", repo, quietLogger())

	ctx := WithLabels(context.Background(), Labels{Session: "sess-9"})
	ctx = WithLabels(ctx, Labels{Purpose: "curriculum", Subject: "House Plants"})
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "House Plants"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if !ev.Success || ev.Purpose != "curriculum" || ev.Provider != "mock" {
		t.Fatalf("unexpected event: %+v", ev.LLMRequestEventData)
	}
	if ev.Subject != "House Plants" || ev.SessionID != "sess-9" {
		t.Fatalf("unexpected labels: subject %q session %q", ev.Subject, ev.SessionID)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Fatalf("unexpected tokens: %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if ev.ResponseBody != "['Soil']" {
		t.Fatalf("unexpected response body: %q", ev.ResponseBody)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nbe brief") || !strings.Contains(ev.RequestBody, "[user]\nHouse Plants") {
		t.Fatalf("unexpected request body: %q", ev.RequestBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := openTestRepo(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, "mock", repo, quietLogger())

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Purpose != "unknown" {
		t.Fatalf("expected default purpose, got %q", events[0].Purpose)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "ok"})
	p := WithLogging(mock, "mock", nil, quietLogger())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "rules"},
			{Role: RoleUser, Content: "topic"},
		},
	})
	want := "[system]\nrules\n\n[user]\ntopic"
	if got != want {
		t.Fatalf("serializeRequest() = %q, want %q", got, want)
	}
}
