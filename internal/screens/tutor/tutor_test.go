package tutor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/extract"
	"github.com/rasingollam/AI-Tutor/internal/steps"
	sess "github.com/rasingollam/AI-Tutor/internal/tutor"
)

// stubExtractor returns a canned transcription for any image.
type stubExtractor struct{ text string }

func (e stubExtractor) ExtractAnswer(context.Context, *extract.Image) (string, error) {
	return e.text, nil
}

func (e stubExtractor) ExtractProblem(context.Context, *extract.Image) (*extract.Problem, error) {
	return &extract.Problem{Text: e.text}, nil
}

// stubGenerator hands back a prebuilt sequence.
type stubGenerator struct{ seq *steps.Sequence }

func (g stubGenerator) Steps(context.Context, string) (*steps.Sequence, error) {
	return g.seq, nil
}

func oneStepSequence(t *testing.T) *steps.Sequence {
	t.Helper()
	seq, err := steps.New([]steps.Step{{Instruction: "Solve for x: 2x=8", ExpectedAnswer: "x=4"}})
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSubmitRoutesImagePathThroughExtractor(t *testing.T) {
	c := sess.NewController(answer.NewEngine(nil, answer.DefaultConfig()), stubExtractor{text: "x=4"}, nil)
	m := sess.NewManager(c, nil)
	session, err := m.CreateSession(context.Background(), "Solve for x: 2x=8", oneStepSequence(t))
	if err != nil {
		t.Fatal(err)
	}

	s := New(m)
	s.session = session
	s.phase = phaseAwaiting
	s.input.Model.SetValue(writeTestImage(t))

	_, cmd := s.submit()
	if cmd == nil {
		t.Fatal("expected a command for an image path submission")
	}
	raw := cmd()
	msg, ok := raw.(eventResultMsg)
	if !ok {
		t.Fatalf("expected eventResultMsg, got %T", raw)
	}
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Resp.Result == nil || !msg.Resp.Result.IsCorrect {
		t.Fatalf("expected the extracted answer to evaluate correct, got %+v", msg.Resp)
	}
}

func TestSubmitMissingImageFileConsumesNoAttempt(t *testing.T) {
	c := sess.NewController(answer.NewEngine(nil, answer.DefaultConfig()), stubExtractor{text: "x=4"}, nil)
	m := sess.NewManager(c, nil)
	session, err := m.CreateSession(context.Background(), "Solve for x: 2x=8", oneStepSequence(t))
	if err != nil {
		t.Fatal(err)
	}

	s := New(m)
	s.session = session
	s.phase = phaseAwaiting
	s.input.Model.SetValue(filepath.Join(t.TempDir(), "absent.jpg"))

	_, cmd := s.submit()
	msg := cmd().(eventResultMsg)

	var exErr *extract.ExtractionError
	if !errors.As(msg.Err, &exErr) {
		t.Fatalf("expected ExtractionError for an unreadable photo, got: %v", msg.Err)
	}
	if session.Attempts() != 0 {
		t.Fatalf("unreadable photo must not consume an attempt, got %d", session.Attempts())
	}
}

func TestStartSessionFromImagePath(t *testing.T) {
	const extracted = "Solve for x: 2x + 3 = 11"
	c := sess.NewController(answer.NewEngine(nil, answer.DefaultConfig()), stubExtractor{text: extracted}, nil)
	m := sess.NewManager(c, stubGenerator{seq: oneStepSequence(t)})

	s := New(m)
	msg := s.startSession(writeTestImage(t))()
	ready, ok := msg.(planReadyMsg)
	if !ok {
		t.Fatalf("expected planReadyMsg, got %T", msg)
	}
	if ready.Session.Problem() != extracted {
		t.Fatalf("expected problem from the photo, got %q", ready.Session.Problem())
	}
}

func TestDiscardSessionRemovesFromRegistry(t *testing.T) {
	c := sess.NewController(answer.NewEngine(nil, answer.DefaultConfig()), nil, nil)
	m := sess.NewManager(c, nil)
	ctx := context.Background()
	session, err := m.CreateSession(ctx, "Solve for x: 2x=8", oneStepSequence(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Quit(ctx, session.ID()); err != nil {
		t.Fatal(err)
	}

	s := New(m)
	s.session = session
	s.phase = phaseDone
	s.discardSession()

	var notFound *sess.ErrSessionNotFound
	if _, err := m.Get(session.ID()); !errors.As(err, &notFound) {
		t.Fatalf("expected the discarded session gone from the registry, got: %v", err)
	}
	if s.phase != phaseEnterProblem || s.session != nil {
		t.Fatal("expected a reset to problem entry")
	}
}
