package judge

import "github.com/rasingollam/AI-Tutor/internal/llm"

// VerdictSchema defines the JSON schema for judge verdict responses.
var VerdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "An assessment of whether a student's answer is equivalent to the expected answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the student's answer is mathematically equivalent to any accepted form",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences telling the student why the answer is right or wrong, in plain language",
			},
			"normalized_answer": map[string]any{
				"type":        "string",
				"description": "The student's answer rewritten in canonical form, e.g. 'x=4'. Empty if the answer could not be interpreted.",
			},
			"understanding_level": map[string]any{
				"type":        "string",
				"enum":        []any{"full", "partial", "none"},
				"description": "full: correct with work shown. partial: correct bare value, or a near miss. none: incorrect.",
			},
			"is_final_answer": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer solves the whole problem rather than one intermediate step",
			},
		},
		"required":             []any{"is_correct", "explanation", "normalized_answer", "understanding_level", "is_final_answer"},
		"additionalProperties": false,
	},
}
