package llm

import (
	"context"
	"strings"
)

// Provider is the core abstraction for text completion.
type Provider interface {
	// Generate sends the conversation to the model and returns its reply
	// text. Implementations do not interpret the reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is an optional system prompt. System-role entries in Messages
	// are appended to it in order.
	System string

	// Messages is the ordered conversation.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the raw completion text.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// splitSystem separates the system prompt from the turn-taking messages, for
// APIs that carry the system prompt out of band.
func splitSystem(req Request) (string, []Message) {
	var parts []string
	if req.System != "" {
		parts = append(parts, req.System)
	}
	turns := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			parts = append(parts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(parts, "\n\n"), turns
}
