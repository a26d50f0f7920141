// Package steps holds the immutable solution-path data model: one Step per
// instructional unit, assembled into an ordered Sequence that a tutoring
// session walks front to back.
package steps

import (
	"fmt"
	"strings"
)

// FormSeparator joins alternative accepted answers inside an expected-answer
// spec, e.g. "x=4|x=8/2". The first alternative is the canonical display form.
const FormSeparator = "|"

// DefaultSolutionVar is assumed when a generated step does not name the
// variable being solved for. Used by the final-answer heuristic.
const DefaultSolutionVar = "x"

// Step is a single instructional unit of a solution path.
// Steps are immutable once a Sequence is built; swapping content mid-session
// would invalidate attempt history.
type Step struct {
	// Instruction describes the required action and its expected visible result.
	Instruction string

	// ExpectedAnswer is the accepted-answer spec: one or more alternative
	// forms joined by FormSeparator. At least one form must be non-empty.
	ExpectedAnswer string

	// Hint is revealed on request and does not consume an attempt.
	Hint string

	// Explanation is revealed on request, on success, or after attempts
	// are exhausted.
	Explanation string

	// SolutionVar is the variable the overall problem solves for.
	// Empty means DefaultSolutionVar.
	SolutionVar string
}

// Forms returns the step's accepted answer forms as written (trimmed,
// empties dropped), in spec order. The first entry is the canonical form.
func (s Step) Forms() []string {
	var forms []string
	for _, f := range strings.Split(s.ExpectedAnswer, FormSeparator) {
		f = strings.TrimSpace(f)
		if f != "" {
			forms = append(forms, f)
		}
	}
	return forms
}

// Canonical returns the first listed accepted form, for display.
func (s Step) Canonical() string {
	forms := s.Forms()
	if len(forms) == 0 {
		return ""
	}
	return forms[0]
}

// Var returns the solution variable, falling back to DefaultSolutionVar.
func (s Step) Var() string {
	if s.SolutionVar == "" {
		return DefaultSolutionVar
	}
	return s.SolutionVar
}

// ErrInvalidStep reports a step that cannot be part of a valid sequence.
// Fatal at construction time: a sequence with an invalid step rejects
// session creation.
type ErrInvalidStep struct {
	Index  int
	Reason string
}

func (e *ErrInvalidStep) Error() string {
	return fmt.Sprintf("invalid step %d: %s", e.Index, e.Reason)
}

// Sequence is the ordered solution path for one problem instance.
// Created once, owned exclusively by the session that requested it.
type Sequence struct {
	steps []Step
}

// New validates the given steps and builds a Sequence.
// A zero-length sequence or a step without a non-empty accepted form is a
// construction error, not a valid session state.
func New(in []Step) (*Sequence, error) {
	if len(in) == 0 {
		return nil, &ErrInvalidStep{Index: 0, Reason: "sequence is empty"}
	}
	for i, s := range in {
		if strings.TrimSpace(s.Instruction) == "" {
			return nil, &ErrInvalidStep{Index: i, Reason: "instruction is empty"}
		}
		if len(s.Forms()) == 0 {
			return nil, &ErrInvalidStep{Index: i, Reason: "expected answer has no non-empty form"}
		}
	}

	// Copy so later mutation of the caller's slice cannot reach the sequence.
	steps := make([]Step, len(in))
	copy(steps, in)
	return &Sequence{steps: steps}, nil
}

// Len returns the number of steps.
func (q *Sequence) Len() int {
	return len(q.steps)
}

// At returns the step at index i. Panics if i is out of range, matching
// slice semantics; callers index with the session's validated position.
func (q *Sequence) At(i int) Step {
	return q.steps[i]
}
