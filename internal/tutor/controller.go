package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/extract"
)

// OutcomeRecorder persists per-step outcomes as they resolve.
// Implementations must not fail the session; recording is best effort.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, sessionID string, o Outcome) error
}

// SessionRecorder optionally extends OutcomeRecorder with session
// lifecycle events. Recorders that do not implement it simply miss
// start/end records.
type SessionRecorder interface {
	OutcomeRecorder
	RecordSessionStart(ctx context.Context, sessionID, problem string) error
	RecordSessionEnd(ctx context.Context, sessionID, problem, finalState string) error
}

// Response describes the result of one session event and what the
// learner should do next.
type Response struct {
	// State is the session state after the event.
	State State

	// StepIndex is the current step after the event. Equal to the
	// sequence length once completed.
	StepIndex int

	// Instruction is the current step's instruction while awaiting an
	// answer, empty in terminal states.
	Instruction string

	// Message is the feedback text to show the learner.
	Message string

	// Result carries the evaluation verdict for submit events.
	Result *answer.ValidationResult

	// RemainingAttempts is how many tries are left on the current step
	// after a wrong answer. Zero otherwise.
	RemainingAttempts int

	// HintOffered is set when a wrong answer leaves attempts and the
	// step has a hint.
	HintOffered bool

	// ForceAdvanced is set when the attempt budget ran out and the
	// session moved on without an independent solve.
	ForceAdvanced bool

	// AcceptedForms lists the step's accepted answers, revealed only on
	// force-advance.
	AcceptedForms []string
}

// Controller drives session state transitions. It owns no session state
// itself; every method takes the session it operates on.
type Controller struct {
	engine    *answer.Engine
	extractor extract.Extractor
	recorder  OutcomeRecorder
}

// NewController creates a Controller. The extractor may be nil when
// image submissions are not supported; the recorder may be nil to skip
// outcome persistence.
func NewController(engine *answer.Engine, extractor extract.Extractor, recorder OutcomeRecorder) *Controller {
	return &Controller{engine: engine, extractor: extractor, recorder: recorder}
}

// Submit processes one answer submission. Image submissions are resolved
// to text first; an extraction failure is returned as-is, consumes no
// attempt, and changes no state.
func (c *Controller) Submit(ctx context.Context, s *Session, sub extract.Submission) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return nil, &ErrInvalidTransition{State: s.state, Event: "submit"}
	}

	text := sub.Text
	if sub.HasImage() {
		if c.extractor == nil {
			return nil, &extract.ExtractionError{Reason: "image submissions not supported"}
		}
		extracted, err := c.extractor.ExtractAnswer(ctx, sub.Image)
		if err != nil {
			return nil, err
		}
		text = extracted
	}

	step := s.currentStep()
	res := c.engine.Evaluate(ctx, step, text)

	if res.IsCorrect {
		outcome := Outcome{
			StepIndex:     s.index,
			Attempts:      s.attempts + 1,
			Solved:        true,
			FinalAnswer:   res.NormalizedAnswer,
			Understanding: res.Understanding,
		}
		s.outcomes = append(s.outcomes, outcome)
		c.record(ctx, s.id, outcome)
		s.advance()

		msg := "Correct! " + step.Explanation
		if s.state == StateCompleted {
			msg += "\nYou worked through the whole problem. Well done!"
			c.recordEnd(ctx, s)
		}
		return c.response(s, msg, &res), nil
	}

	s.attempts++
	if s.attempts < s.maxAttempts {
		remaining := s.maxAttempts - s.attempts
		resp := c.response(s, wrongAnswerMessage(res, remaining), &res)
		resp.RemainingAttempts = remaining
		resp.HintOffered = step.Hint != ""
		return resp, nil
	}

	// Attempt budget exhausted: reveal the answer and move on. The step
	// counts as skipped, not solved.
	outcome := Outcome{
		StepIndex:   s.index,
		Attempts:    s.attempts,
		Skipped:     true,
		FinalAnswer: res.NormalizedAnswer,
	}
	s.outcomes = append(s.outcomes, outcome)
	c.record(ctx, s.id, outcome)
	s.advance()

	forms := step.Forms()
	msg := fmt.Sprintf("The correct answer was: %s\n%s", strings.Join(forms, " or "), step.Explanation)
	if s.state == StateCompleted {
		msg += "\nThat was the last step."
		c.recordEnd(ctx, s)
	} else {
		msg += "\nLet's continue with the next step."
	}
	resp := c.response(s, msg, &res)
	resp.ForceAdvanced = true
	resp.AcceptedForms = forms
	return resp, nil
}

// Hint returns the current step's hint. No state change, no attempt
// consumed.
func (c *Controller) Hint(s *Session) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return nil, &ErrInvalidTransition{State: s.state, Event: "request_hint"}
	}

	hint := s.currentStep().Hint
	if hint == "" {
		hint = "Think about what the previous steps already gave you."
	}
	return c.response(s, hint, nil), nil
}

// Explanation returns the current step's explanation. No state change,
// no attempt consumed.
func (c *Controller) Explanation(s *Session) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return nil, &ErrInvalidTransition{State: s.state, Event: "request_explanation"}
	}

	step := s.currentStep()
	expl := step.Explanation
	if expl == "" {
		expl = step.Instruction
	}
	return c.response(s, expl, nil), nil
}

// Quit abandons the session. Terminal; further events are rejected.
func (c *Controller) Quit(ctx context.Context, s *Session) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return nil, &ErrInvalidTransition{State: s.state, Event: "quit"}
	}

	s.state = StateAbandoned
	c.recordEnd(ctx, s)
	return c.response(s, "Session ended. Come back any time.", nil), nil
}

func (c *Controller) record(ctx context.Context, sessionID string, o Outcome) {
	if c.recorder == nil {
		return
	}
	// Best effort. A persistence failure must not stall the session.
	_ = c.recorder.RecordOutcome(ctx, sessionID, o)
}

// recordStart notes a session beginning, when the recorder supports
// lifecycle events. Best effort.
func (c *Controller) recordStart(ctx context.Context, s *Session) {
	if r, ok := c.recorder.(SessionRecorder); ok {
		_ = r.RecordSessionStart(ctx, s.id, s.problem)
	}
}

// recordEnd notes a session reaching a terminal state. Callers hold
// s.mu. Best effort.
func (c *Controller) recordEnd(ctx context.Context, s *Session) {
	if r, ok := c.recorder.(SessionRecorder); ok {
		_ = r.RecordSessionEnd(ctx, s.id, s.problem, s.state.String())
	}
}

// response snapshots the session into a Response. Callers hold s.mu.
func (c *Controller) response(s *Session, msg string, res *answer.ValidationResult) *Response {
	resp := &Response{
		State:     s.state,
		StepIndex: s.index,
		Message:   msg,
		Result:    res,
	}
	if s.state == StateAwaitingAnswer {
		resp.Instruction = s.currentStep().Instruction
	}
	return resp
}

func wrongAnswerMessage(res answer.ValidationResult, remaining int) string {
	var b strings.Builder
	b.WriteString("That's not quite right.")
	if res.Explanation != "" {
		b.WriteString(" ")
		b.WriteString(res.Explanation)
	}
	attempts := "attempts"
	if remaining == 1 {
		attempts = "attempt"
	}
	fmt.Fprintf(&b, "\n%d %s remaining. Type 'hint' if you want a nudge.", remaining, attempts)
	return b.String()
}
