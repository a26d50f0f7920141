package answer

import (
	"context"
	"strings"
	"time"

	"github.com/rasingollam/AI-Tutor/internal/steps"
)

// ValidationResult is the outcome of one equivalence check.
// Produced fresh per Evaluate call and never mutated after return.
type ValidationResult struct {
	// IsCorrect reports whether the candidate matched the expected answer.
	IsCorrect bool

	// Explanation is a human-readable rationale for the verdict.
	Explanation string

	// NormalizedAnswer is the canonical form of the candidate; meaningful
	// when correct.
	NormalizedAnswer string

	// Understanding grades the reasoning depth the learner demonstrated.
	Understanding UnderstandingLevel

	// IsFinalAnswer reports whether the candidate answers the whole
	// problem rather than an intermediate step.
	IsFinalAnswer bool
}

// Config tunes the engine's semantic tier.
type Config struct {
	// JudgeTimeout bounds a single judge call. Hitting it degrades to the
	// fallback tier; it never fails the evaluation. Default: 15s.
	JudgeTimeout time.Duration
}

// DefaultConfig returns engine defaults.
func DefaultConfig() Config {
	return Config{JudgeTimeout: 15 * time.Second}
}

// Engine decides answer equivalence through three escalating tiers:
//
//  1. Exact match on normalized forms, which settles most submissions
//     without an external call.
//  2. The semantic judge, for paraphrase and algebraically equivalent forms
//     tier 1 cannot detect.
//  3. A degraded fallback when the judge is unavailable, times out, or
//     returns something unparseable: the tier-1 comparison stands, labeled
//     as degraded, so judge failures never block session progress.
type Engine struct {
	judge SemanticJudge
	cfg   Config
}

// NewEngine creates an Engine. A nil judge disables tier 2: misses degrade
// straight to the fallback tier.
func NewEngine(judge SemanticJudge, cfg Config) *Engine {
	if cfg.JudgeTimeout <= 0 {
		cfg.JudgeTimeout = DefaultConfig().JudgeTimeout
	}
	return &Engine{judge: judge, cfg: cfg}
}

// Evaluate checks candidateRaw against the step's accepted forms.
// It never fails: judge errors are absorbed here and degrade to tier 3.
func (e *Engine) Evaluate(ctx context.Context, step steps.Step, candidateRaw string) ValidationResult {
	normalized := Normalize(candidateRaw)
	forms := NormalizeForms(step.ExpectedAnswer)

	// Tier 1: exact match on normalized forms.
	for _, f := range forms {
		if normalized == f {
			return ValidationResult{
				IsCorrect:        true,
				Explanation:      "Answer matches the expected result.",
				NormalizedAnswer: step.Canonical(),
				Understanding:    UnderstandingFull,
				IsFinalAnswer:    isFinalAnswer(normalized, step.Var()),
			}
		}
	}

	// Tier 2: semantic judge.
	if e.judge != nil {
		jctx, cancel := context.WithTimeout(ctx, e.cfg.JudgeTimeout)
		verdict, err := e.judge.Judge(jctx, step.Instruction, step.ExpectedAnswer, candidateRaw)
		cancel()
		if err == nil && verdict != nil {
			return ValidationResult{
				IsCorrect:        verdict.IsCorrect,
				Explanation:      verdict.Explanation,
				NormalizedAnswer: verdict.NormalizedAnswer,
				Understanding:    verdict.Understanding,
				IsFinalAnswer:    verdict.IsFinalAnswer,
			}
		}
		// Unavailable, timed out, or malformed: fall through to tier 3.
	}

	// Tier 3: degraded fallback. The tier-1 comparison already missed, so
	// the answer is reported incorrect, with the degradation made visible
	// in the explanation rather than surfaced as a transport failure.
	return ValidationResult{
		IsCorrect:        false,
		Explanation:      "Validation ran in degraded mode: the answer was compared literally against the expected form and did not match.",
		NormalizedAnswer: normalized,
		Understanding:    UnderstandingPartial,
		IsFinalAnswer:    false,
	}
}

// isFinalAnswer reports whether the normalized candidate assigns the
// solution variable, e.g. contains "x=". A heuristic, not a parser; the
// variable is per-step metadata so multi-variable problems can override it.
func isFinalAnswer(normalized, solutionVar string) bool {
	return strings.Contains(normalized, strings.ToLower(solutionVar)+"=")
}
