package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tuturo/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// audit log and emits a structured log line for it.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    logrus.FieldLogger
	provider  string
}

// WithLogging wraps a Provider with event logging. repo may be nil, in which
// case only the log line is written.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger, provider: providerName}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	labels := LabelsFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     labels.Purpose,
		Subject:     labels.Subject,
		SessionID:   labels.Session,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Content
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	entry := l.logger.WithFields(logrus.Fields{
		"provider":      data.Provider,
		"model":         data.Model,
		"purpose":       labels.Purpose,
		"subject":       labels.Subject,
		"latency_ms":    latencyMs,
		"input_tokens":  data.InputTokens,
		"output_tokens": data.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request completed")
	}

	// Audit failures never fail the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.WithError(logErr).Warn("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
