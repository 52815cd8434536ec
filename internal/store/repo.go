package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts filters and pages event queries.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // created_at >= From
	Purpose string    // LLM events only
}

// LLMRequestEventData is one logged model call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	RequestID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM call.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates calls by purpose or by model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// PracticeSessionData is the outcome of one practice session.
type PracticeSessionData struct {
	SessionID       string
	TenseCategories []string
	Forms           []string
	Voices          []string
	QuestionTypes   []string
	Planned         int
	TimerSecs       int
	Score           int
	Attempted       int
	FullSession     bool
	FallbackUsed    bool
	DurationSecs    int
}

// PracticeSessionRecord is a stored practice session.
type PracticeSessionRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	PracticeSessionData
}

// EventRepo appends and queries events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	AppendPracticeSession(ctx context.Context, data PracticeSessionData) error
	QueryPracticeSessions(ctx context.Context, opts QueryOpts) ([]PracticeSessionRecord, error)
}

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// applyOpts adds the common filters to a selector over an event table.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
