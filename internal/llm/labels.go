package llm

import "context"

// Labels describe what a model call is for. They end up on the audit
// record and the log line of every request.
type Labels struct {
	Purpose string // "curriculum" or "theory"
	Subject string
	Session string
}

type labelsKey struct{}

// WithLabels attaches l to ctx. Empty fields keep the value already
// attached, so a session set by the caller survives a purpose set later.
func WithLabels(ctx context.Context, l Labels) context.Context {
	cur, _ := ctx.Value(labelsKey{}).(Labels)
	if l.Purpose != "" {
		cur.Purpose = l.Purpose
	}
	if l.Subject != "" {
		cur.Subject = l.Subject
	}
	if l.Session != "" {
		cur.Session = l.Session
	}
	return context.WithValue(ctx, labelsKey{}, cur)
}

// LabelsFrom returns the labels on ctx. Purpose is "unknown" when unset.
func LabelsFrom(ctx context.Context) Labels {
	l, _ := ctx.Value(labelsKey{}).(Labels)
	if l.Purpose == "" {
		l.Purpose = "unknown"
	}
	return l
}
