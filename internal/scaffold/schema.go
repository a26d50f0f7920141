package scaffold

import "github.com/rasingollam/AI-Tutor/internal/llm"

// PlanSchema defines the JSON schema for LLM solution plan responses.
var PlanSchema = &llm.Schema{
	Name:        "solution-plan",
	Description: "An ordered step-by-step solution plan for one math problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"solution_var": map[string]any{
				"type":        "string",
				"description": "The variable the problem solves for, e.g. 'x'. Empty string for pure arithmetic.",
			},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"instruction": map[string]any{
							"type":        "string",
							"description": "What the student should do in this step, phrased as a directive",
						},
						"expected_answer": map[string]any{
							"type":        "string",
							"description": "The expected result of the step. Separate equally acceptable forms with '|', e.g. 'x=4|x=8/2'.",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A nudge toward the method without giving the answer away",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why this step works, shown to the student after the step resolves",
						},
					},
					"required":             []any{"instruction", "expected_answer", "hint", "explanation"},
					"additionalProperties": false,
				},
				"description": "The ordered steps. Each step must be independently checkable.",
			},
		},
		"required":             []any{"solution_var", "steps"},
		"additionalProperties": false,
	},
}

// AnalysisSchema defines the JSON schema for problem analysis responses.
var AnalysisSchema = &llm.Schema{
	Name:        "problem-analysis",
	Description: "A classification of one math problem before planning",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_type": map[string]any{
				"type":        "string",
				"description": "Short label, e.g. 'linear equation', 'fraction arithmetic', 'word problem'",
			},
			"variables": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Variables appearing in the problem, empty for pure arithmetic",
			},
			"goal": map[string]any{
				"type":        "string",
				"description": "One sentence stating what the problem asks for",
			},
		},
		"required":             []any{"problem_type", "variables", "goal"},
		"additionalProperties": false,
	},
}
