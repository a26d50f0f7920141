package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Before  int64  // sequence < Before
	Purpose string // filter by purpose (empty = all)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates token usage over one grouping key (purpose or model).
type UsageStat struct {
	Key          string
	Count        int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID  string
	Problem    string
	FinalState string
}

// StepOutcomeData captures how one step of a session resolved.
type StepOutcomeData struct {
	SessionID     string
	StepIndex     int
	Attempts      int
	Solved        bool
	Skipped       bool
	FinalAnswer   string
	Understanding string
}

// SessionRecord is a stored session lifecycle event.
type SessionRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Kind      string
	SessionEventData
}

// StepOutcomeRecord is a stored step outcome.
type StepOutcomeRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	StepOutcomeData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest-first, honoring opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates request counts and token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// LLMUsageByModel aggregates request counts and token usage per model.
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)

	// AppendSessionStart records a session beginning.
	AppendSessionStart(ctx context.Context, data SessionEventData) error

	// AppendSessionEnd records a session reaching a terminal state.
	AppendSessionEnd(ctx context.Context, data SessionEventData) error

	// RecentSessions returns the newest session end events, most recent
	// first. limit <= 0 means no limit.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// AppendStepOutcome records one resolved step.
	AppendStepOutcome(ctx context.Context, data StepOutcomeData) error

	// SessionOutcomes returns the step outcomes for one session in step order.
	SessionOutcomes(ctx context.Context, sessionID string) ([]StepOutcomeRecord, error)
}
