package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/session"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		c.Header("Retry-After", fmt.Sprint(int(math.Ceil(rl.RetryAfter.Seconds()))))
	}
	c.Error(err)
	c.JSON(status, errorEnvelope{Error: APIError{Message: err.Error(), Code: code}})
}

func badRequest(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: APIError{Message: err.Error(), Code: "bad_request"}})
}

// classify maps domain errors to an HTTP status and a stable code.
func classify(err error) (int, string) {
	var (
		extractErr *extract.ExtractionError
		invalid    *curriculum.InvalidCurriculumError
		unknown    *curriculum.UnknownTopicError
		badStatus  *curriculum.InvalidStatusError
		bounds     *curriculum.NavigationBoundsError
		rateLimit  *llm.ErrRateLimit
		unavail    *llm.ErrProviderUnavailable
		invalidRsp *llm.ErrInvalidResponse
		maxTokens  *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, session.ErrUnknownSession):
		return http.StatusNotFound, "unknown_session"
	case errors.Is(err, curriculum.ErrUnknownSubject):
		return http.StatusNotFound, "unknown_subject"
	case errors.Is(err, pathway.ErrEmptySubject):
		return http.StatusBadRequest, "empty_subject"
	case errors.As(err, &unknown):
		return http.StatusBadRequest, "unknown_topic"
	case errors.As(err, &badStatus):
		return http.StatusBadRequest, "invalid_status"
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid_curriculum"
	case errors.As(err, &bounds):
		return http.StatusConflict, "navigation_bounds"
	case errors.Is(err, curriculum.ErrNoSelection):
		return http.StatusConflict, "no_selection"
	case errors.As(err, &extractErr):
		return http.StatusBadGateway, "extraction_failed"
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.As(err, &unavail), errors.As(err, &invalidRsp), errors.As(err, &maxTokens):
		return http.StatusBadGateway, "provider_error"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
