package tutor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/rasingollam/AI-Tutor/internal/tutor"
	"github.com/rasingollam/AI-Tutor/internal/ui/theme"
)

// Title returns the screen name for the header.
func (s *Screen) Title() string {
	return "Tutor"
}

// View renders the screen content.
func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseEnterProblem:
		return s.renderProblemEntry(width)
	case phaseGenerating:
		return centered(width, theme.Subtitle, "\n\n  Breaking the problem into steps...")
	case phaseAwaiting:
		return s.renderStep(width)
	case phaseFeedback:
		return s.renderFeedback(width)
	case phaseDone:
		return s.renderSummary(width)
	}
	return ""
}

func (s *Screen) renderProblemEntry(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Title, "What should we solve together?"))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle(), "Problem: "+s.input.View()))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Incorrect, "Couldn't start: "+s.errMsg))
	}
	return b.String()
}

func (s *Screen) renderStep(width int) string {
	if s.session == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	label := fmt.Sprintf("Step %d of %d", s.session.Index()+1, s.session.Len())
	b.WriteString("  " + theme.StepLabel.Render(label))
	if a := s.session.Attempts(); a > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  (attempt %d of %d)", a+1, s.session.MaxAttempts())))
	}
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", maxInt(width-4, 0))))
	b.WriteString("\n\n")

	instruction := ""
	if s.lastResp != nil && s.lastResp.Instruction != "" {
		instruction = s.lastResp.Instruction
	}
	if instruction == "" {
		instruction = s.currentInstruction()
	}
	b.WriteString(centered(width, theme.Body.Bold(true), instruction))
	b.WriteString("\n\n")

	// Hint or explanation from the last event, shown inline.
	if s.feedback != "" && s.lastResp != nil && s.lastResp.Result == nil {
		b.WriteString(centered(width, theme.Hint, s.feedback))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastResp != nil {
		switch {
		case s.lastResp.Result != nil && s.lastResp.Result.IsCorrect:
			b.WriteString(centered(width, theme.Correct, "Correct!"))
		case s.lastResp.ForceAdvanced:
			b.WriteString(centered(width, theme.Incorrect, "Out of attempts"))
		case s.lastResp.Result != nil:
			b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		}
		b.WriteString("\n\n")
	}

	if s.feedback != "" {
		msg := lipgloss.NewStyle().
			Width(minInt(width-8, 70)).
			Foreground(theme.Text).
			Render(s.feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, msg))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, theme.Subtitle, "Press any key to continue..."))
	return b.String()
}

func (s *Screen) renderSummary(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.session != nil && s.session.State() == sess.StateAbandoned {
		b.WriteString(centered(width, theme.Title, "Session ended"))
	} else {
		b.WriteString(centered(width, theme.Title, "Problem complete!"))
	}
	b.WriteString("\n\n")

	if s.session != nil {
		solved, skipped := 0, 0
		for _, o := range s.session.Outcomes() {
			if o.Solved {
				solved++
			}
			if o.Skipped {
				skipped++
			}
		}
		summary := fmt.Sprintf("%d of %d steps solved on your own", solved, s.session.Len())
		if skipped > 0 {
			summary += fmt.Sprintf(", %d shown to you", skipped)
		}
		b.WriteString(centered(width, theme.Body, summary))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, theme.Subtitle, "Press Enter for another problem, Ctrl+C to exit."))
	return b.String()
}

func (s *Screen) currentInstruction() string {
	if s.session == nil || s.session.State().Terminal() {
		return ""
	}
	return s.session.StepAt(s.session.Index()).Instruction
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
