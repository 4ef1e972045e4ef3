package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
	Subject string    // LLM events only; empty matches all
	Session string    // curriculum events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Subject      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMSubjectUsage aggregates token usage for one subject, split by purpose
// and model so spend can be priced per row.
type LLMSubjectUsage struct {
	Subject      string
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Curriculum event actions.
const (
	ActionGenerated = "generated"
	ActionRefused   = "refused"
	ActionFailed    = "failed"
)

// CurriculumEventData records the outcome of one curriculum request.
type CurriculumEventData struct {
	SessionID string
	Subject   string
	Action    string
	Topics    []string
	Detail    string
}

// CurriculumEventRecord is a stored curriculum event.
type CurriculumEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CurriculumEventData
}

// EventRepo provides append and query access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// LLMUsageBySubject aggregates calls and tokens per subject, purpose
	// and model. Calls made without a subject are grouped under "".
	LLMUsageBySubject(ctx context.Context) ([]LLMSubjectUsage, error)

	// AppendCurriculumEvent records a curriculum request outcome.
	AppendCurriculumEvent(ctx context.Context, data CurriculumEventData) error

	// QueryCurriculumEvents returns curriculum events, most recent first.
	QueryCurriculumEvents(ctx context.Context, opts QueryOpts) ([]CurriculumEventRecord, error)
}
