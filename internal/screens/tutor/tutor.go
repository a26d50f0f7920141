package tutor

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/rasingollam/AI-Tutor/internal/extract"
	sess "github.com/rasingollam/AI-Tutor/internal/tutor"
	"github.com/rasingollam/AI-Tutor/internal/ui/components"
)

// phase is the screen's UI phase. It tracks what the learner sees, not
// the session state machine, which lives in the tutor package.
type phase int

const (
	phaseEnterProblem phase = iota
	phaseGenerating
	phaseAwaiting
	phaseFeedback
	phaseDone
)

const (
	problemPlaceholder = "Type a math problem or a photo path, e.g. 2x + 3 = 11"
	answerPlaceholder  = "Your answer, a photo path, or 'hint', 'explain', 'quit'"
)

// Screen is the interactive tutoring flow: enter a problem, work
// through the generated steps one answer at a time.
type Screen struct {
	manager *sess.Manager

	phase    phase
	session  *sess.Session
	input    components.TextInput
	feedback string
	errMsg   string
	lastResp *sess.Response
}

// New creates the tutoring screen.
func New(manager *sess.Manager) *Screen {
	return &Screen{
		manager: manager,
		phase:   phaseEnterProblem,
		input:   components.NewTextInput(problemPlaceholder, 120),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Update(msg tea.Msg) (*Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		s.session = msg.Session
		s.phase = phaseAwaiting
		s.input = components.NewTextInput(answerPlaceholder, 120)
		return s, s.input.Init()

	case planFailedMsg:
		s.errMsg = msg.Err.Error()
		s.phase = phaseEnterProblem
		return s, nil

	case eventResultMsg:
		return s.handleEventResult(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseEnterProblem || s.phase == phaseAwaiting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (*Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseEnterProblem:
		if key == "enter" {
			problem := strings.TrimSpace(s.input.Value())
			if problem == "" {
				return s, nil
			}
			s.errMsg = ""
			s.phase = phaseGenerating
			return s, s.startSession(problem)
		}

	case phaseAwaiting:
		switch key {
		case "enter":
			return s.submit()
		case "esc":
			return s, s.quit()
		}

	case phaseFeedback:
		// Any key moves on.
		if s.session != nil && s.session.State().Terminal() {
			s.phase = phaseDone
			return s, nil
		}
		s.phase = phaseAwaiting
		s.input.Reset()
		return s, s.input.Init()

	case phaseDone:
		if key == "enter" {
			s.discardSession()
			return s, s.input.Init()
		}
	}

	if s.phase == phaseEnterProblem || s.phase == phaseAwaiting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit routes the typed line: tutoring keywords first, everything
// else is an answer.
func (s *Screen) submit() (*Screen, tea.Cmd) {
	line := strings.TrimSpace(s.input.Value())
	if line == "" {
		return s, nil
	}

	id := s.session.ID()
	switch strings.ToLower(line) {
	case "hint":
		return s, func() tea.Msg {
			resp, err := s.manager.RequestHint(id)
			return eventResultMsg{Resp: resp, Err: err}
		}
	case "explain":
		return s, func() tea.Msg {
			resp, err := s.manager.RequestExplanation(id)
			return eventResultMsg{Resp: resp, Err: err}
		}
	case "quit":
		return s, s.quit()
	}

	return s, func() tea.Msg {
		sub := extract.Submission{Text: line}
		if extract.IsImagePath(line) {
			img, err := extract.LoadImage(line)
			if err != nil {
				return eventResultMsg{Err: &extract.ExtractionError{Reason: "could not read image file", Err: err}}
			}
			sub = extract.Submission{Image: img}
		}
		resp, err := s.manager.SubmitAnswer(context.Background(), id, sub)
		return eventResultMsg{Resp: resp, Err: err}
	}
}

// discardSession drops the finished session from the registry and
// returns to problem entry.
func (s *Screen) discardSession() {
	if s.session != nil {
		s.manager.Remove(s.session.ID())
	}
	s.session = nil
	s.lastResp = nil
	s.feedback = ""
	s.phase = phaseEnterProblem
	s.input = components.NewTextInput(problemPlaceholder, 120)
}

func (s *Screen) quit() tea.Cmd {
	id := s.session.ID()
	return func() tea.Msg {
		resp, err := s.manager.Quit(context.Background(), id)
		return eventResultMsg{Resp: resp, Err: err}
	}
}

func (s *Screen) handleEventResult(msg eventResultMsg) (*Screen, tea.Cmd) {
	if msg.Err != nil {
		var exErr *extract.ExtractionError
		if errors.As(msg.Err, &exErr) {
			// Correctness-neutral: ask for a resubmit, consume nothing.
			s.feedback = "I couldn't read that. Please resubmit."
			s.phase = phaseFeedback
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.lastResp = msg.Resp
	s.feedback = msg.Resp.Message

	if msg.Resp.State.Terminal() {
		s.phase = phaseFeedback
		return s, nil
	}

	if msg.Resp.Result != nil || msg.Resp.ForceAdvanced {
		s.input.Submit(msg.Resp.Result != nil && msg.Resp.Result.IsCorrect)
		s.phase = phaseFeedback
		return s, nil
	}

	// Hint/explanation: stay in the answer phase, show the text inline.
	s.input.Reset()
	return s, s.input.Init()
}

func (s *Screen) startSession(problem string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			session *sess.Session
			err     error
		)
		if extract.IsImagePath(problem) {
			var img *extract.Image
			img, err = extract.LoadImage(problem)
			if err == nil {
				session, err = s.manager.StartSessionFromImage(ctx, img)
			}
		} else {
			session, err = s.manager.StartSession(ctx, problem)
		}
		if err != nil {
			return planFailedMsg{Err: err}
		}
		return planReadyMsg{Session: session}
	}
}
