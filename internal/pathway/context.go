package pathway

import (
	"context"

	"github.com/abhisek/tuturo/internal/llm"
)

// WithSession tags the context with the session that issued a request, so
// curriculum events and model calls can be grouped per session.
func WithSession(ctx context.Context, id string) context.Context {
	return llm.WithLabels(ctx, llm.Labels{Session: id})
}

// SessionFrom returns the session tag, or "" when none was attached.
func SessionFrom(ctx context.Context) string {
	return llm.LabelsFrom(ctx).Session
}
