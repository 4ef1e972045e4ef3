package tutor

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty subject", pathway.ErrEmptySubject, "Please enter a subject."},
		{"rate limit with delay", fmt.Errorf("wrap: %w", &llm.ErrRateLimit{RetryAfter: 3 * time.Second}), "The model is busy. Try again in 3s."},
		{"rate limit", &llm.ErrRateLimit{}, "The model is busy. Try again in a moment."},
		{"extraction", &extract.ExtractionError{Err: errors.New("bad")}, "The model answered in an unexpected format. Press r to try again."},
		{"unavailable", &llm.ErrProviderUnavailable{}, "The model could not be reached. Check your API key and connection."},
		{"other", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}
