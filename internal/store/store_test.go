package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tableLLMRequests, tablePracticeSessions, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "p"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq != int64(i+1) {
			t.Errorf("seq[%d] = %d, want %d", i, seq, i+1)
		}
		last = seq
	}
	if last != 5 {
		t.Errorf("last = %d, want 5", last)
	}
}

func TestLLMEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "sentence-conversion",
		RequestID:    "req-1",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    830,
		Success:      true,
		RequestBody:  "[user]\nconvert",
		ResponseBody: `{"convertedSentence":"x"}`,
	}
	if err := repo.AppendLLMRequest(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "question-batch",
		ErrorMessage: "rate limited",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Purpose != "question-batch" || events[0].Success {
		t.Errorf("events[0] = %+v", events[0])
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event")
	}
	if got.LLMRequestEventData != in {
		t.Errorf("got %+v, want %+v", got.LLMRequestEventData, in)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp = %v", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "sentence-conversion", Limit: 10})
	if err != nil {
		t.Fatalf("query filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].RequestID != "req-1" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.5-flash", Purpose: "question-batch", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Model: "gemini-2.5-flash", Purpose: "question-batch", InputTokens: 300, OutputTokens: 150, LatencyMs: 300, Success: false},
		{Model: "gpt-4o-mini", Purpose: "sentence-conversion", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	qb := byPurpose[0]
	if qb.Purpose != "question-batch" || qb.Calls != 2 || qb.InputTokens != 400 ||
		qb.OutputTokens != 200 || qb.AvgLatencyMs != 200 || qb.Failures != 1 {
		t.Errorf("question-batch usage = %+v", qb)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gpt-4o-mini" || byModel[1].Calls != 1 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestPracticeSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	full := PracticeSessionData{
		SessionID:       "s-1",
		TenseCategories: []string{"present", "past"},
		Forms:           []string{"Affirmative"},
		Voices:          []string{"Active", "Passive"},
		QuestionTypes:   []string{"conversion", "multiple-choice"},
		Planned:         5,
		Score:           3,
		Attempted:       5,
		FullSession:     true,
		DurationSecs:    120,
	}
	early := PracticeSessionData{
		SessionID:     "s-2",
		Forms:         []string{"Negative"},
		Planned:       10,
		TimerSecs:     30,
		Score:         1,
		Attempted:     2,
		FallbackUsed:  true,
		QuestionTypes: []string{"fill-in-the-blank"},
	}
	for _, d := range []PracticeSessionData{full, early} {
		if err := repo.AppendPracticeSession(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := repo.QueryPracticeSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].SessionID != "s-2" || !recs[0].FallbackUsed || recs[0].FullSession || recs[0].TimerSecs != 30 {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[0].TenseCategories != nil {
		t.Errorf("empty list should scan as nil, got %v", recs[0].TenseCategories)
	}
	got := recs[1]
	if got.Score != 3 || got.Attempted != 5 || !got.FullSession || len(got.Voices) != 2 || got.TenseCategories[1] != "past" {
		t.Errorf("recs[1] = %+v", got)
	}

	limited, err := repo.QueryPracticeSessions(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited = %d, want 1", len(limited))
	}

	after, err := repo.QueryPracticeSessions(ctx, QueryOpts{After: recs[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].SessionID != "s-2" {
		t.Errorf("after = %+v", after)
	}
}
