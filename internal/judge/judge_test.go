package judge

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/llm"
)

func TestJudge_EquivalentAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"is_correct": true,
			"explanation": "Dividing 8 by 2 gives the same value.",
			"normalized_answer": "x=4",
			"understanding_level": "partial",
			"is_final_answer": true
		}`),
	})
	j := New(mock, DefaultConfig())

	v, err := j.Judge(context.Background(), "Solve for x: 2x=8", "x=4|x=8/2", "four")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsCorrect {
		t.Fatal("expected correct verdict")
	}
	if v.NormalizedAnswer != "x=4" {
		t.Fatalf("unexpected normalized answer: %q", v.NormalizedAnswer)
	}
	if v.Understanding != answer.UnderstandingPartial {
		t.Fatalf("unexpected understanding: %q", v.Understanding)
	}
	if !v.IsFinalAnswer {
		t.Fatal("expected final answer flag")
	}
}

func TestJudge_RequestCarriesContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_correct": false, "explanation": "no", "normalized_answer": "", "understanding_level": "none", "is_final_answer": false}`),
	})
	j := New(mock, DefaultConfig())

	_, err := j.Judge(context.Background(), "Solve for x: 2x=8", "x=4|x=8/2", "x=5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != VerdictSchema {
		t.Error("expected verdict schema on the request")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(req.Messages))
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Solve for x: 2x=8", "x=4|x=8/2", "x=5"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestJudge_ProviderErrorIsUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{RetryAfter: 0},
	})
	j := New(mock, DefaultConfig())

	_, err := j.Judge(context.Background(), "instr", "x=4", "x=5")
	var unavailable *answer.ErrJudgeUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrJudgeUnavailable, got: %v", err)
	}
	var rateLimit *llm.ErrRateLimit
	if !errors.As(err, &rateLimit) {
		t.Fatalf("expected wrapped rate limit error, got: %v", err)
	}
}

func TestJudge_GarbageOutputIsMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`looks fine to me`),
	})
	j := New(mock, DefaultConfig())

	_, err := j.Judge(context.Background(), "instr", "x=4", "x=5")
	var malformed *answer.ErrMalformedVerdict
	if !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformedVerdict, got: %v", err)
	}
}
