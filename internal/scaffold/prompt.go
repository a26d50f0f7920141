package scaffold

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a math tutor breaking one problem into small checkable steps for guided practice.

Rules:
- Produce an ordered plan where each step asks the student for one concrete piece of work with a single checkable result.
- Use plain ASCII text for all math. Use / for fractions and * for multiplication. No LaTeX, no Unicode symbols.
- The expected_answer is what the student should type. When several spellings of the same result are equally acceptable, list them separated by '|', e.g. 'x=4|x=8/2'. Keep each form short.
- Hints must point at the method without revealing the result. Explanations are shown after the step and may reveal everything.
- The final step's expected answer must assign the solution variable when there is one, e.g. 'x=4'.
- Keep the plan as short as the problem allows. Trivial problems may need only one step.`

const analysisSystemPrompt = `You classify a single math problem before it is broken into steps.

Rules:
- problem_type is a short lower-case label such as 'linear equation', 'fraction arithmetic' or 'word problem'.
- variables lists each variable that appears, empty for pure arithmetic.
- goal restates in one sentence what the problem asks for, without solving it.`

// buildUserMessage constructs the user message for one plan request.
func buildUserMessage(problemText string, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem: %s\n", problemText)
	if cfg.MaxSteps > 0 {
		fmt.Fprintf(&b, "At most %d steps.\n", cfg.MaxSteps)
	}

	return b.String()
}
