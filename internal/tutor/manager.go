package tutor

import (
	"context"
	"errors"
	"sync"

	"github.com/rasingollam/AI-Tutor/internal/extract"
	"github.com/rasingollam/AI-Tutor/internal/scaffold"
	"github.com/rasingollam/AI-Tutor/internal/steps"
)

// Manager owns the live session registry and fronts the Controller with
// an ID-based surface. Distinct sessions are independent; the registry
// lock only guards the map, never a session's event processing.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	controller  *Controller
	generator   scaffold.Generator
	maxAttempts int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxAttempts overrides the per-step attempt budget for sessions
// this manager creates.
func WithMaxAttempts(n int) ManagerOption {
	return func(m *Manager) { m.maxAttempts = n }
}

// NewManager creates a Manager. The generator may be nil when sessions
// are only ever created from prebuilt sequences.
func NewManager(controller *Controller, generator scaffold.Generator, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		controller:  controller,
		generator:   generator,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession registers a new session over a prebuilt sequence.
func (m *Manager) CreateSession(ctx context.Context, problem string, seq *steps.Sequence) (*Session, error) {
	s, err := NewSession(problem, seq, m.maxAttempts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.controller.recordStart(ctx, s)
	return s, nil
}

// StartSession generates a solution plan for problemText and registers
// a session over it. Generation failure means no session: there is
// nothing to tutor without a plan.
func (m *Manager) StartSession(ctx context.Context, problemText string) (*Session, error) {
	if m.generator == nil {
		return nil, &scaffold.GenerationError{Problem: problemText, Err: errNoGenerator}
	}
	seq, err := m.generator.Steps(ctx, problemText)
	if err != nil {
		return nil, err
	}
	return m.CreateSession(ctx, problemText, seq)
}

// StartSessionFromImage reads the problem statement out of a photo and
// starts a session over it. Extraction failure means no session.
func (m *Manager) StartSessionFromImage(ctx context.Context, img *extract.Image) (*Session, error) {
	if m.controller.extractor == nil {
		return nil, &extract.ExtractionError{Reason: "image problems not supported"}
	}
	problem, err := m.controller.extractor.ExtractProblem(ctx, img)
	if err != nil {
		return nil, err
	}
	return m.StartSession(ctx, problem.Text)
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return s, nil
}

// Remove drops a session from the registry. Terminal sessions stay
// queryable until removed so callers can read final outcomes.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// SubmitAnswer processes an answer for the session with the given ID.
func (m *Manager) SubmitAnswer(ctx context.Context, id string, sub extract.Submission) (*Response, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return m.controller.Submit(ctx, s, sub)
}

// RequestHint returns the current step's hint for the session.
func (m *Manager) RequestHint(id string) (*Response, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return m.controller.Hint(s)
}

// RequestExplanation returns the current step's explanation for the
// session.
func (m *Manager) RequestExplanation(id string) (*Response, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return m.controller.Explanation(s)
}

// Quit abandons the session with the given ID.
func (m *Manager) Quit(ctx context.Context, id string) (*Response, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return m.controller.Quit(ctx, s)
}

var errNoGenerator = errors.New("no step generator configured")
