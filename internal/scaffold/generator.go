package scaffold

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rasingollam/AI-Tutor/internal/llm"
	"github.com/rasingollam/AI-Tutor/internal/steps"
)

// Generator produces an ordered solution plan for a problem.
// A session cannot start without one.
type Generator interface {
	Steps(ctx context.Context, problemText string) (*steps.Sequence, error)
}

// GenerationError indicates a solution plan could not be produced.
// Fatal for session creation, there is no degraded path here.
type GenerationError struct {
	Problem string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("step generation failed for %q: %v", e.Problem, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxSteps caps the plan length. Plans longer than this are
	// truncated rather than rejected.
	MaxSteps int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxSteps:    8,
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// planOutput is the raw LLM response before validation.
type planOutput struct {
	SolutionVar string       `json:"solution_var"`
	Steps       []stepOutput `json:"steps"`
}

type stepOutput struct {
	Instruction    string `json:"instruction"`
	ExpectedAnswer string `json:"expected_answer"`
	Hint           string `json:"hint"`
	Explanation    string `json:"explanation"`
}

// Steps produces the ordered solution plan for problemText.
func (g *LLMGenerator) Steps(ctx context.Context, problemText string) (*steps.Sequence, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeStepGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(problemText, g.config)},
		},
		Schema:      PlanSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Problem: problemText, Err: err}
	}

	var raw planOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Problem: problemText, Err: fmt.Errorf("unparseable plan: %w", err)}
	}

	if g.config.MaxSteps > 0 && len(raw.Steps) > g.config.MaxSteps {
		raw.Steps = raw.Steps[:g.config.MaxSteps]
	}

	plan := make([]steps.Step, 0, len(raw.Steps))
	for _, s := range raw.Steps {
		plan = append(plan, steps.Step{
			Instruction:    s.Instruction,
			ExpectedAnswer: s.ExpectedAnswer,
			Hint:           s.Hint,
			Explanation:    s.Explanation,
			SolutionVar:    raw.SolutionVar,
		})
	}

	seq, err := steps.New(plan)
	if err != nil {
		return nil, &GenerationError{Problem: problemText, Err: err}
	}
	return seq, nil
}

// Analysis classifies a problem before planning.
type Analysis struct {
	ProblemType string
	Variables   []string
	Goal        string
}

// analysisOutput is the raw LLM response before mapping.
type analysisOutput struct {
	ProblemType string   `json:"problem_type"`
	Variables   []string `json:"variables"`
	Goal        string   `json:"goal"`
}

// Analyze classifies problemText: what kind of problem it is, which
// variables appear, and what it asks for.
func (g *LLMGenerator) Analyze(ctx context.Context, problemText string) (*Analysis, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalyze)

	req := llm.Request{
		System: analysisSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Problem: " + problemText},
		},
		Schema:      AnalysisSchema,
		MaxTokens:   256,
		Temperature: 0.1,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Problem: problemText, Err: err}
	}

	var raw analysisOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Problem: problemText, Err: fmt.Errorf("unparseable analysis: %w", err)}
	}
	return &Analysis{
		ProblemType: raw.ProblemType,
		Variables:   raw.Variables,
		Goal:        raw.Goal,
	}, nil
}
