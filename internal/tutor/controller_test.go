package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/extract"
	"github.com/rasingollam/AI-Tutor/internal/steps"
)

func twoStepSequence(t *testing.T) *steps.Sequence {
	t.Helper()
	seq, err := steps.New([]steps.Step{
		{
			Instruction:    "Subtract 3 from both sides of 2x + 3 = 11",
			ExpectedAnswer: "2x=8",
			Hint:           "Undo the addition first",
			Explanation:    "Subtracting 3 keeps the equation balanced.",
		},
		{
			Instruction:    "Solve for x: 2x=8",
			ExpectedAnswer: "x=4|x=8/2",
			Hint:           "Divide both sides by 2",
			Explanation:    "Dividing both sides by 2 isolates x.",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func newTestController() *Controller {
	return NewController(answer.NewEngine(nil, answer.DefaultConfig()), nil, nil)
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("Solve for x: 2x + 3 = 11", twoStepSequence(t), DefaultMaxAttempts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSubmit_CorrectAdvances(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	resp, err := c.Submit(context.Background(), s, extract.Submission{Text: "2x = 8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Result.IsCorrect {
		t.Fatal("expected correct")
	}
	if resp.StepIndex != 1 {
		t.Fatalf("expected advance to step 1, got %d", resp.StepIndex)
	}
	if s.Attempts() != 0 {
		t.Fatalf("attempt counter must reset on advance, got %d", s.Attempts())
	}
	if resp.Instruction != "Solve for x: 2x=8" {
		t.Fatalf("expected next instruction, got %q", resp.Instruction)
	}
}

func TestSubmit_LastStepCompletes(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	if _, err := c.Submit(context.Background(), s, extract.Submission{Text: "2x=8"}); err != nil {
		t.Fatal(err)
	}
	resp, err := c.Submit(context.Background(), s, extract.Submission{Text: "X = 4"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.State != StateCompleted {
		t.Fatalf("expected Completed, got %s", resp.State)
	}
	if resp.StepIndex != s.Len() {
		t.Fatalf("completed index should equal length, got %d", resp.StepIndex)
	}
	if !resp.Result.IsFinalAnswer {
		t.Fatal("expected final answer flag on the closing step")
	}

	outcomes := s.Outcomes()
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Solved || o.Skipped {
			t.Fatalf("expected solved outcomes, got %+v", o)
		}
	}
}

func TestSubmit_WrongAnswerCountsAttempt(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	resp, err := c.Submit(context.Background(), s, extract.Submission{Text: "2x=9"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Result.IsCorrect {
		t.Fatal("expected incorrect")
	}
	if resp.RemainingAttempts != 2 {
		t.Fatalf("expected 2 remaining, got %d", resp.RemainingAttempts)
	}
	if !resp.HintOffered {
		t.Fatal("expected hint offer")
	}
	if resp.StepIndex != 0 {
		t.Fatalf("wrong answer must not advance, got index %d", resp.StepIndex)
	}
	if s.Attempts() != 1 {
		t.Fatalf("expected 1 attempt, got %d", s.Attempts())
	}
}

func TestSubmit_ThirdWrongForceAdvances(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	if _, err := c.Submit(context.Background(), s, extract.Submission{Text: "2x=8"}); err != nil {
		t.Fatal(err)
	}

	var resp *Response
	var err error
	for i := 0; i < DefaultMaxAttempts; i++ {
		resp, err = c.Submit(context.Background(), s, extract.Submission{Text: "x=5"})
		if err != nil {
			t.Fatal(err)
		}
	}

	if !resp.ForceAdvanced {
		t.Fatal("expected force-advance on the third wrong answer")
	}
	if len(resp.AcceptedForms) != 2 || resp.AcceptedForms[0] != "x=4" || resp.AcceptedForms[1] != "x=8/2" {
		t.Fatalf("expected both accepted forms revealed, got %v", resp.AcceptedForms)
	}
	if resp.State != StateCompleted {
		t.Fatalf("force-advancing the last step completes the session, got %s", resp.State)
	}

	outcomes := s.Outcomes()
	last := outcomes[len(outcomes)-1]
	if !last.Skipped || last.Solved {
		t.Fatalf("force-advanced step must be recorded as skipped, got %+v", last)
	}
	if last.Attempts != DefaultMaxAttempts {
		t.Fatalf("expected %d attempts recorded, got %d", DefaultMaxAttempts, last.Attempts)
	}
}

func TestSubmit_AfterCompletedIsInvalid(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	ctx := context.Background()
	if _, err := c.Submit(ctx, s, extract.Submission{Text: "2x=8"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Submit(ctx, s, extract.Submission{Text: "x=4"}); err != nil {
		t.Fatal(err)
	}

	_, err := c.Submit(ctx, s, extract.Submission{Text: "x=4"})
	var invalid *ErrInvalidTransition
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
	if s.State() != StateCompleted {
		t.Fatalf("rejected event must not mutate state, got %s", s.State())
	}
}

func TestHintAndExplanation_NoAttemptConsumed(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	h, err := c.Hint(s)
	if err != nil {
		t.Fatal(err)
	}
	if h.Message != "Undo the addition first" {
		t.Fatalf("unexpected hint: %q", h.Message)
	}

	e, err := c.Explanation(s)
	if err != nil {
		t.Fatal(err)
	}
	if e.Message != "Subtracting 3 keeps the equation balanced." {
		t.Fatalf("unexpected explanation: %q", e.Message)
	}

	if s.Attempts() != 0 || s.Index() != 0 {
		t.Fatal("hint and explanation must not change session state")
	}
}

func TestQuit_TerminalAndSticky(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	resp, err := c.Quit(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if resp.State != StateAbandoned {
		t.Fatalf("expected Abandoned, got %s", resp.State)
	}

	var invalid *ErrInvalidTransition
	if _, err := c.Quit(context.Background(), s); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidTransition on second quit, got: %v", err)
	}
	if _, err := c.Hint(s); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidTransition for hint after quit, got: %v", err)
	}
	if _, err := c.Submit(context.Background(), s, extract.Submission{Text: "2x=8"}); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidTransition for submit after quit, got: %v", err)
	}
}

// failingExtractor always fails answer extraction.
type failingExtractor struct{}

func (failingExtractor) ExtractAnswer(context.Context, *extract.Image) (string, error) {
	return "", &extract.ExtractionError{Reason: "unreadable image"}
}

func (failingExtractor) ExtractProblem(context.Context, *extract.Image) (*extract.Problem, error) {
	return nil, &extract.ExtractionError{Reason: "unreadable image"}
}

// fixedExtractor returns a canned answer.
type fixedExtractor struct{ text string }

func (f fixedExtractor) ExtractAnswer(context.Context, *extract.Image) (string, error) {
	return f.text, nil
}

func (f fixedExtractor) ExtractProblem(context.Context, *extract.Image) (*extract.Problem, error) {
	return &extract.Problem{Text: f.text}, nil
}

func imageSubmission() extract.Submission {
	return extract.Submission{Image: &extract.Image{Data: []byte{1}, MIME: "image/jpeg"}}
}

func TestSubmit_ExtractionFailureConsumesNoAttempt(t *testing.T) {
	c := NewController(answer.NewEngine(nil, answer.DefaultConfig()), failingExtractor{}, nil)
	s := newTestSession(t)

	_, err := c.Submit(context.Background(), s, imageSubmission())
	var exErr *extract.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got: %v", err)
	}
	if s.Attempts() != 0 {
		t.Fatalf("extraction failure must not consume an attempt, got %d", s.Attempts())
	}
	if s.Index() != 0 || s.State() != StateAwaitingAnswer {
		t.Fatal("extraction failure must not change session state")
	}
}

func TestSubmit_ImageAnswerEvaluated(t *testing.T) {
	c := NewController(answer.NewEngine(nil, answer.DefaultConfig()), fixedExtractor{text: "2x = 8"}, nil)
	s := newTestSession(t)

	resp, err := c.Submit(context.Background(), s, imageSubmission())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Result.IsCorrect {
		t.Fatal("expected extracted answer to evaluate correct")
	}
	if resp.StepIndex != 1 {
		t.Fatalf("expected advance, got index %d", resp.StepIndex)
	}
}

func TestSubmit_MonotonicIndex(t *testing.T) {
	c := newTestController()
	s := newTestSession(t)

	ctx := context.Background()
	prev := s.Index()
	inputs := []string{"wrong", "2x=8", "x=5", "x=5", "x=5"}
	for _, in := range inputs {
		if _, err := c.Submit(ctx, s, extract.Submission{Text: in}); err != nil {
			t.Fatal(err)
		}
		cur := s.Index()
		if cur < prev {
			t.Fatalf("index went backwards: %d -> %d", prev, cur)
		}
		if cur > prev+1 {
			t.Fatalf("index jumped by more than 1: %d -> %d", prev, cur)
		}
		prev = cur
	}
	if s.State() != StateCompleted {
		t.Fatalf("expected Completed, got %s", s.State())
	}
}

// recordingRecorder captures outcomes and lifecycle events handed to it.
type recordingRecorder struct {
	outcomes   []Outcome
	started    []string
	finalState string
}

func (r *recordingRecorder) RecordOutcome(_ context.Context, _ string, o Outcome) error {
	r.outcomes = append(r.outcomes, o)
	return nil
}

func (r *recordingRecorder) RecordSessionStart(_ context.Context, sessionID, _ string) error {
	r.started = append(r.started, sessionID)
	return nil
}

func (r *recordingRecorder) RecordSessionEnd(_ context.Context, _, _, finalState string) error {
	r.finalState = finalState
	return nil
}

func TestSubmit_OutcomesRecorded(t *testing.T) {
	rec := &recordingRecorder{}
	c := NewController(answer.NewEngine(nil, answer.DefaultConfig()), nil, rec)
	s := newTestSession(t)

	ctx := context.Background()
	if _, err := c.Submit(ctx, s, extract.Submission{Text: "2x=8"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < DefaultMaxAttempts; i++ {
		if _, err := c.Submit(ctx, s, extract.Submission{Text: "x=5"}); err != nil {
			t.Fatal(err)
		}
	}

	if len(rec.outcomes) != 2 {
		t.Fatalf("expected 2 recorded outcomes, got %d", len(rec.outcomes))
	}
	if !rec.outcomes[0].Solved {
		t.Fatalf("first outcome should be solved: %+v", rec.outcomes[0])
	}
	if !rec.outcomes[1].Skipped {
		t.Fatalf("second outcome should be skipped: %+v", rec.outcomes[1])
	}
	if rec.finalState != StateCompleted.String() {
		t.Fatalf("expected completed session end record, got %q", rec.finalState)
	}
}

func TestManagerRecordsSessionLifecycle(t *testing.T) {
	rec := &recordingRecorder{}
	c := NewController(answer.NewEngine(nil, answer.DefaultConfig()), nil, rec)
	m := NewManager(c, nil)

	ctx := context.Background()
	s, err := m.CreateSession(ctx, "Solve for x: 2x + 3 = 11", twoStepSequence(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.started) != 1 || rec.started[0] != s.ID() {
		t.Fatalf("expected one start record for %s, got %v", s.ID(), rec.started)
	}

	if _, err := m.Quit(ctx, s.ID()); err != nil {
		t.Fatal(err)
	}
	if rec.finalState != StateAbandoned.String() {
		t.Fatalf("expected abandoned session end record, got %q", rec.finalState)
	}
}
