package answer

import (
	"context"
	"encoding/json"
	"fmt"
)

// UnderstandingLevel grades how much of the expected reasoning the learner
// demonstrated.
type UnderstandingLevel string

const (
	// UnderstandingFull means the work shown matches the expected
	// reasoning depth.
	UnderstandingFull UnderstandingLevel = "full"

	// UnderstandingPartial means only a bare final value was given, or the
	// check ran in degraded mode.
	UnderstandingPartial UnderstandingLevel = "partial"

	// UnderstandingNone means the answer was incorrect.
	UnderstandingNone UnderstandingLevel = "none"
)

// Verdict is a semantic judge's structured assessment of a candidate answer.
type Verdict struct {
	IsCorrect        bool
	Explanation      string
	NormalizedAnswer string
	Understanding    UnderstandingLevel
	IsFinalAnswer    bool
}

// SemanticJudge assesses equivalence beyond literal string matching:
// paraphrase, equivalent algebraic forms, unit conversions.
// Implementations are external collaborators (an LLM call in practice)
// and fail with *ErrJudgeUnavailable or *ErrMalformedVerdict.
type SemanticJudge interface {
	Judge(ctx context.Context, instruction, expectedSpec, candidate string) (*Verdict, error)
}

// ErrJudgeUnavailable indicates the judge could not be reached or did not
// answer in time. Always recovered by the engine's fallback tier.
type ErrJudgeUnavailable struct {
	Err error
}

func (e *ErrJudgeUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("semantic judge unavailable: %v", e.Err)
	}
	return "semantic judge unavailable"
}

func (e *ErrJudgeUnavailable) Unwrap() error { return e.Err }

// ErrMalformedVerdict indicates the judge responded with output that could
// not be interpreted as a verdict. Always recovered by the fallback tier.
type ErrMalformedVerdict struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrMalformedVerdict) Error() string {
	return fmt.Sprintf("malformed judge verdict: %v", e.Err)
}

func (e *ErrMalformedVerdict) Unwrap() error { return e.Err }

// verdictOutput is the wire shape of a judge verdict. Optional fields are
// pointers so that absence can be told apart from zero values.
type verdictOutput struct {
	IsCorrect        *bool   `json:"is_correct"`
	Explanation      *string `json:"explanation"`
	NormalizedAnswer *string `json:"normalized_answer"`
	Understanding    *string `json:"understanding_level"`
	IsFinalAnswer    *bool   `json:"is_final_answer"`
}

// ParseVerdict interprets raw judge output as a Verdict. A verdict is
// well-formed when it parses as JSON and carries at least is_correct;
// missing optional fields get safe defaults (empty explanation, partial
// understanding, not a final answer).
func ParseVerdict(raw json.RawMessage) (*Verdict, error) {
	var out verdictOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ErrMalformedVerdict{Content: raw, Err: err}
	}
	if out.IsCorrect == nil {
		return nil, &ErrMalformedVerdict{Content: raw, Err: fmt.Errorf("missing is_correct")}
	}

	v := &Verdict{
		IsCorrect:     *out.IsCorrect,
		Understanding: UnderstandingPartial,
	}
	if out.Explanation != nil {
		v.Explanation = *out.Explanation
	}
	if out.NormalizedAnswer != nil {
		v.NormalizedAnswer = *out.NormalizedAnswer
	}
	if out.Understanding != nil {
		switch UnderstandingLevel(*out.Understanding) {
		case UnderstandingFull, UnderstandingPartial, UnderstandingNone:
			v.Understanding = UnderstandingLevel(*out.Understanding)
		default:
			return nil, &ErrMalformedVerdict{
				Content: raw,
				Err:     fmt.Errorf("unknown understanding level %q", *out.Understanding),
			}
		}
	}
	if out.IsFinalAnswer != nil {
		v.IsFinalAnswer = *out.IsFinalAnswer
	}
	return v, nil
}
