package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rasingollam/AI-Tutor/internal/llm"
)

// Config controls the behavior of the LLMExtractor.
type Config struct {
	// MaxTokens is the token budget for the extraction response.
	MaxTokens int

	// Temperature controls LLM output randomness. Transcription wants
	// determinism.
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.1,
	}
}

// LLMExtractor implements Extractor using a vision-capable LLM provider.
// When the model strays from the schema, a pattern scrape over the raw
// text is the last resort before giving up.
type LLMExtractor struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMExtractor with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMExtractor {
	return &LLMExtractor{provider: provider, config: cfg}
}

// answerOutput is the raw LLM response for answer extraction.
type answerOutput struct {
	Answers []string `json:"answers"`
}

// problemOutput is the raw LLM response for problem extraction.
type problemOutput struct {
	ProblemText       string `json:"problem_text"`
	ProblemType       string `json:"problem_type"`
	AdditionalContext string `json:"additional_context"`
}

// ExtractAnswer transcribes the mathematical work in the image and
// returns the last expression, the one most likely to be the final
// answer when several steps are shown.
func (x *LLMExtractor) ExtractAnswer(ctx context.Context, img *Image) (string, error) {
	if err := checkImage(img); err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExtractAnswer)

	resp, err := x.provider.Generate(ctx, llm.Request{
		System: answerSystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: "Transcribe the mathematical answer or steps shown in this image.",
				Images:  []llm.ImageData{{MIME: img.MIME, Data: img.Data}},
			},
		},
		Schema:      AnswerSchema,
		MaxTokens:   x.config.MaxTokens,
		Temperature: x.config.Temperature,
	})
	if err != nil {
		return "", &ExtractionError{Reason: "vision model request failed", Err: err}
	}

	var out answerOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		if scraped := scrapeAnswer(string(resp.Content)); scraped != "" {
			return scraped, nil
		}
		return "", &ExtractionError{Reason: "unparseable extraction output", Err: err}
	}

	answers := dropBlank(out.Answers)
	if len(answers) == 0 {
		return "", &ExtractionError{Reason: "no answer found in image"}
	}
	return answers[len(answers)-1], nil
}

// ExtractProblem transcribes a problem statement from the image.
func (x *LLMExtractor) ExtractProblem(ctx context.Context, img *Image) (*Problem, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExtractProblem)

	resp, err := x.provider.Generate(ctx, llm.Request{
		System: problemSystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: "Transcribe the math problem shown in this image.",
				Images:  []llm.ImageData{{MIME: img.MIME, Data: img.Data}},
			},
		},
		Schema:      ProblemSchema,
		MaxTokens:   x.config.MaxTokens,
		Temperature: x.config.Temperature,
	})
	if err != nil {
		return nil, &ExtractionError{Reason: "vision model request failed", Err: err}
	}

	var out problemOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		if scraped := scrapeProblem(string(resp.Content)); scraped != "" {
			return &Problem{Text: scraped, Kind: "unknown"}, nil
		}
		return nil, &ExtractionError{Reason: "unparseable extraction output", Err: err}
	}

	if strings.TrimSpace(out.ProblemText) == "" {
		return nil, &ExtractionError{Reason: "no problem found in image"}
	}
	return &Problem{
		Text:    strings.TrimSpace(out.ProblemText),
		Kind:    out.ProblemType,
		Context: out.AdditionalContext,
	}, nil
}

func checkImage(img *Image) error {
	if img == nil || len(img.Data) == 0 {
		return &ExtractionError{Reason: "empty image"}
	}
	return nil
}

func dropBlank(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
