package judge

import (
	"context"
	"fmt"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/llm"
)

// Config controls the behavior of the LLM judge.
type Config struct {
	// MaxTokens is the token budget for the verdict response.
	MaxTokens int

	// Temperature controls LLM output randomness. Judging wants
	// determinism, so the default is low.
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.1,
	}
}

// LLMJudge implements answer.SemanticJudge using the LLM provider.
// It handles equivalence that literal matching cannot: paraphrase,
// algebraically equal forms, spelled-out numbers.
type LLMJudge struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMJudge with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMJudge {
	return &LLMJudge{provider: provider, config: cfg}
}

// Judge asks the provider whether candidate is equivalent to any of the
// accepted forms in expectedSpec. Provider failures surface as
// *answer.ErrJudgeUnavailable and unusable output as
// *answer.ErrMalformedVerdict, so callers can degrade cleanly.
func (j *LLMJudge) Judge(ctx context.Context, instruction, expectedSpec, candidate string) (*answer.Verdict, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeJudge)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(instruction, expectedSpec, candidate)},
		},
		Schema:      VerdictSchema,
		MaxTokens:   j.config.MaxTokens,
		Temperature: j.config.Temperature,
	}

	resp, err := j.provider.Generate(ctx, req)
	if err != nil {
		return nil, &answer.ErrJudgeUnavailable{Err: fmt.Errorf("judge request failed: %w", err)}
	}

	return answer.ParseVerdict(resp.Content)
}
