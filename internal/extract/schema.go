package extract

import "github.com/rasingollam/AI-Tutor/internal/llm"

// AnswerSchema defines the JSON schema for answer extraction responses.
var AnswerSchema = &llm.Schema{
	Name:        "extracted-answer",
	Description: "Mathematical expressions transcribed from an image of a student's work",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Every equation or expression visible, in reading order. The last entry is the final answer.",
			},
		},
		"required":             []any{"answers"},
		"additionalProperties": false,
	},
}

// ProblemSchema defines the JSON schema for problem extraction responses.
var ProblemSchema = &llm.Schema{
	Name:        "extracted-problem",
	Description: "A math problem statement transcribed from an image",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"description": "The complete math problem exactly as written, in plain ASCII",
			},
			"problem_type": map[string]any{
				"type":        "string",
				"description": "The kind of problem, e.g. linear_equation, arithmetic, word_problem",
			},
			"additional_context": map[string]any{
				"type":        "string",
				"description": "Any extra instructions or context shown alongside the problem",
			},
		},
		"required":             []any{"problem_text", "problem_type", "additional_context"},
		"additionalProperties": false,
	},
}
