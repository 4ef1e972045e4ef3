package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
)

// Describe turns an error from a tutor request into a message for the
// learner. Unrecognized errors are shown as is.
func Describe(err error) string {
	var (
		rateLimit *llm.ErrRateLimit
		extErr    *extract.ExtractionError
		unavail   *llm.ErrProviderUnavailable
		invalid   *llm.ErrInvalidResponse
		maxTokens *llm.ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, pathway.ErrEmptySubject):
		return "Please enter a subject."
	case errors.Is(err, context.DeadlineExceeded):
		return "The model took too long to answer. Press r to try again."
	case errors.As(err, &rateLimit):
		if rateLimit.RetryAfter > 0 {
			return fmt.Sprintf("The model is busy. Try again in %s.", rateLimit.RetryAfter.Round(time.Second))
		}
		return "The model is busy. Try again in a moment."
	case errors.As(err, &extErr):
		return "The model answered in an unexpected format. Press r to try again."
	case errors.As(err, &maxTokens):
		return "The answer was cut short. Press r to try again."
	case errors.As(err, &unavail), errors.As(err, &invalid):
		return "The model could not be reached. Check your API key and connection."
	default:
		return err.Error()
	}
}
