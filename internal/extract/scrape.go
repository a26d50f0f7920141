package extract

import (
	"regexp"
	"strings"
)

// Last-resort recovery for vision output that ignored the schema. The
// model tends to narrate ("The answer is: x = 4"), so a few label
// patterns catch most strays, with a math-looking-line scan behind them.

var answerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)answer[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)solution[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)result[:\s]+([^\n]+)`),
}

var problemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)problem in the image is:\s*\n*\s*([^\n]+)`),
	regexp.MustCompile(`(?i)math problem is:\s*\n*\s*([^\n]+)`),
	regexp.MustCompile(`(?i)equation is:\s*\n*\s*([^\n]+)`),
	regexp.MustCompile(`(?i)problem text[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)math problem[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)equation[:\s]+([^\n]+)`),
	regexp.MustCompile(`(?i)problem[:\s]+([^\n]+)`),
}

// scrapeAnswer pulls an answer expression out of free text.
// Returns "" when nothing usable is found.
func scrapeAnswer(text string) string {
	for _, p := range answerPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return cleanScraped(m[1])
		}
	}
	return lastMathLine(text)
}

// scrapeProblem pulls a problem statement out of free text.
// Label matches must still look like math; a bare narration line does not
// count as a problem.
func scrapeProblem(text string) string {
	for _, p := range problemPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			candidate := cleanScraped(m[1])
			if looksLikeMath(candidate) {
				return candidate
			}
		}
	}
	return firstMathLine(text)
}

func looksLikeMath(s string) bool {
	return strings.ContainsAny(s, "=+-*/()")
}

func firstMathLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = cleanScraped(line)
		if looksLikeMath(line) {
			return line
		}
	}
	return ""
}

func lastMathLine(text string) string {
	found := ""
	for _, line := range strings.Split(text, "\n") {
		line = cleanScraped(line)
		if looksLikeMath(line) {
			found = line
		}
	}
	return found
}

var markdownEmphasis = regexp.MustCompile(`\*\*|\*`)

func cleanScraped(s string) string {
	s = markdownEmphasis.ReplaceAllString(s, "")
	s = strings.Trim(s, " \t\"'`.")
	return strings.TrimSpace(s)
}
