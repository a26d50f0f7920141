package tutor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/steps"
)

// DefaultMaxAttempts is the attempt budget per step before force-advance.
const DefaultMaxAttempts = 3

// State is a session lifecycle state.
type State int

const (
	// StateAwaitingAnswer means the session is waiting for the learner to
	// act on the current step.
	StateAwaitingAnswer State = iota

	// StateCompleted means every step resolved, solved or force-advanced.
	// Terminal.
	StateCompleted

	// StateAbandoned means the learner quit. Terminal.
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateCompleted:
		return "completed"
	case StateAbandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAbandoned
}

// Outcome records how one step resolved.
type Outcome struct {
	// StepIndex is the step's position in the sequence.
	StepIndex int

	// Attempts is how many submissions the step consumed.
	Attempts int

	// Solved means the learner produced a correct answer independently.
	Solved bool

	// Skipped means the step was force-advanced after the attempt budget
	// ran out. A skipped step is not a solved step; downstream analytics
	// must be able to tell the two apart.
	Skipped bool

	// FinalAnswer is the normalized form of the accepted answer, or the
	// learner's last try for a skipped step.
	FinalAnswer string

	// Understanding is the understanding grade from the accepting
	// evaluation, empty for skipped steps.
	Understanding answer.UnderstandingLevel
}

// Session is one tutoring run over one step sequence. It owns the
// sequence exclusively; nothing else mutates its position or attempt
// counter. Events for one session are strictly sequential; the mutex
// serializes callers that do not honor that themselves.
type Session struct {
	mu sync.Mutex

	id          string
	problem     string
	seq         *steps.Sequence
	index       int
	attempts    int
	maxAttempts int
	state       State
	outcomes    []Outcome
	startedAt   time.Time
}

// NewSession creates a session positioned at the first step.
// maxAttempts <= 0 selects DefaultMaxAttempts.
func NewSession(problem string, seq *steps.Sequence, maxAttempts int) (*Session, error) {
	if seq == nil || seq.Len() == 0 {
		return nil, fmt.Errorf("session requires a non-empty step sequence")
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Session{
		id:          uuid.NewString(),
		problem:     problem,
		seq:         seq,
		maxAttempts: maxAttempts,
		state:       StateAwaitingAnswer,
		startedAt:   time.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Problem returns the problem statement this session works through.
func (s *Session) Problem() string { return s.problem }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index returns the 0-based current step position. Equal to Len() once
// the session completed.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Attempts returns the attempt count on the current step.
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Len returns the number of steps in the sequence.
func (s *Session) Len() int { return s.seq.Len() }

// MaxAttempts returns the per-step attempt budget.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// StepAt returns the step at index i. Steps are immutable, so this is
// safe without the lock.
func (s *Session) StepAt(i int) steps.Step { return s.seq.At(i) }

// Outcomes returns a copy of the per-step outcome records so far.
func (s *Session) Outcomes() []Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// currentStep returns the step at the current index.
// Callers hold s.mu and have checked the state is not terminal.
func (s *Session) currentStep() steps.Step {
	return s.seq.At(s.index)
}

// advance moves to the next step, resetting the attempt counter, and
// flips to Completed past the last step. Callers hold s.mu.
func (s *Session) advance() {
	s.index++
	s.attempts = 0
	if s.index >= s.seq.Len() {
		s.state = StateCompleted
	}
}
