// Package answer decides whether a learner's free-form answer is equivalent
// to a step's expected answer. Comparison escalates through three tiers:
// a cheap exact match on normalized forms, an external semantic judge for
// paraphrase and equivalent algebraic forms, and a degraded literal fallback
// when the judge is unreachable.
package answer

import (
	"strings"

	"github.com/rasingollam/AI-Tutor/internal/steps"
)

// Normalize canonicalizes a raw answer string for tier-1 comparison.
// Pure, total, and deterministic: it never fails (worst case returns "")
// and re-normalizing a normalized string yields the same string.
//
// Rules:
// - All whitespace is removed
// - Comparison is case-insensitive (lower-cased)
// - Work shown before a trailing "->" or ">" arrow is discarded; only the
//   fragment after the last arrow is compared, so "4x=8 -> x=2" and "x=2"
//   normalize identically.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			continue
		}
		b.WriteRune(r)
	}
	s := strings.ToLower(b.String())

	// "->" collapses to ">" once whitespace is gone, so a single cut on the
	// last ">" handles both arrow tokens.
	if i := strings.LastIndex(s, ">"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// NormalizeForms normalizes every accepted form of a step's expected-answer
// spec independently, preserving spec order and dropping forms that
// normalize to the empty string.
func NormalizeForms(spec string) []string {
	var forms []string
	for _, f := range strings.Split(spec, steps.FormSeparator) {
		n := Normalize(f)
		if n != "" {
			forms = append(forms, n)
		}
	}
	return forms
}
