package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A file-backed DB: in-memory DSNs give every pooled connection its
	// own database.
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
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
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
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
	db := s.DB()

	for _, table := range []string{"llm_events", "session_events", "step_outcomes", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude", Purpose: "judge", InputTokens: 100, OutputTokens: 50, Success: true},
		{Provider: "anthropic", Model: "claude", Purpose: "step-gen", InputTokens: 200, OutputTokens: 400, Success: true},
		{Provider: "openai", Model: "gpt", Purpose: "judge", InputTokens: 90, OutputTokens: 40, Success: false, ErrorMessage: "timeout"},
	}
	for i, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first.
	if events[0].Purpose != "judge" || events[0].Provider != "openai" {
		t.Errorf("expected newest event first, got %+v", events[0])
	}

	judged, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "judge"})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(judged) != 2 {
		t.Fatalf("expected 2 judge events, got %d", len(judged))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query with limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event, got %d", len(limited))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "flash", Purpose: "extract-answer",
		Success: true, RequestBody: "req", ResponseBody: "resp",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v, %d events", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "req" || e.ResponseBody != "resp" {
		t.Fatalf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown event ID")
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "anthropic", Model: "claude", Purpose: "judge",
			InputTokens: 10, OutputTokens: 5, Success: i != 0,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude", Purpose: "step-gen",
		InputTokens: 20, OutputTokens: 40, Success: true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purpose groups, got %d", len(byPurpose))
	}
	if byPurpose[0].Key != "judge" || byPurpose[0].Count != 3 {
		t.Errorf("expected judge group first with 3 requests, got %+v", byPurpose[0])
	}
	if byPurpose[0].InputTokens != 30 || byPurpose[0].Failures != 1 {
		t.Errorf("unexpected judge aggregates: %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Count != 4 {
		t.Fatalf("expected one model group with 4 requests, got %+v", byModel)
	}
}

func TestSessionEventsAndOutcomes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	const sid = "session-1"
	err := repo.AppendSessionStart(ctx, SessionEventData{SessionID: sid, Problem: "Solve for x: 2x=8"})
	if err != nil {
		t.Fatalf("session start: %v", err)
	}

	outcomes := []StepOutcomeData{
		{SessionID: sid, StepIndex: 0, Attempts: 1, Solved: true, FinalAnswer: "2x=8", Understanding: "full"},
		{SessionID: sid, StepIndex: 1, Attempts: 3, Skipped: true, FinalAnswer: "x=5"},
	}
	for i, o := range outcomes {
		if err := repo.AppendStepOutcome(ctx, o); err != nil {
			t.Fatalf("outcome %d: %v", i, err)
		}
	}
	// Another session's outcome must not bleed in.
	if err := repo.AppendStepOutcome(ctx, StepOutcomeData{SessionID: "other", StepIndex: 0, Attempts: 1, Solved: true}); err != nil {
		t.Fatalf("other outcome: %v", err)
	}

	err = repo.AppendSessionEnd(ctx, SessionEventData{SessionID: sid, FinalState: "completed"})
	if err != nil {
		t.Fatalf("session end: %v", err)
	}

	records, err := repo.SessionOutcomes(ctx, sid)
	if err != nil {
		t.Fatalf("session outcomes: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(records))
	}
	if !records[0].Solved || records[0].StepIndex != 0 {
		t.Errorf("unexpected first outcome: %+v", records[0])
	}
	if !records[1].Skipped || records[1].Attempts != 3 {
		t.Errorf("unexpected second outcome: %+v", records[1])
	}

	// Sequences increase across event types.
	if records[1].Sequence <= records[0].Sequence {
		t.Errorf("sequence not increasing: %d then %d", records[0].Sequence, records[1].Sequence)
	}
}

func TestRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, fin := range []string{"completed", "abandoned", "completed"} {
		sid := fmt.Sprintf("session-%d", i)
		if err := repo.AppendSessionStart(ctx, SessionEventData{SessionID: sid, Problem: "p"}); err != nil {
			t.Fatalf("session start: %v", err)
		}
		if err := repo.AppendSessionEnd(ctx, SessionEventData{SessionID: sid, Problem: "p", FinalState: fin}); err != nil {
			t.Fatalf("session end: %v", err)
		}
	}
	// A session without an end event must not be listed.
	if err := repo.AppendSessionStart(ctx, SessionEventData{SessionID: "running", Problem: "p"}); err != nil {
		t.Fatalf("session start: %v", err)
	}

	records, err := repo.RecentSessions(ctx, 0)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 ended sessions, got %d", len(records))
	}
	if records[0].SessionID != "session-2" {
		t.Errorf("expected newest first, got %+v", records[0])
	}
	if records[1].FinalState != "abandoned" {
		t.Errorf("unexpected final state: %+v", records[1])
	}

	limited, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent sessions with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit 2, got %d", len(limited))
	}
}
