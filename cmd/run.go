package cmd

import (
	"context"
	"fmt"

	"github.com/rasingollam/AI-Tutor/internal/answer"
	"github.com/rasingollam/AI-Tutor/internal/app"
	"github.com/rasingollam/AI-Tutor/internal/extract"
	"github.com/rasingollam/AI-Tutor/internal/judge"
	"github.com/rasingollam/AI-Tutor/internal/llm"
	"github.com/rasingollam/AI-Tutor/internal/scaffold"
	"github.com/rasingollam/AI-Tutor/internal/store"
	"github.com/rasingollam/AI-Tutor/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	manager, err := buildManager(ctx, st.EventRepo())
	if err != nil {
		return err
	}

	return app.Run(app.Options{Manager: manager})
}

// buildManager wires the provider-backed tutoring stack. Without a
// configured provider there is nothing to tutor with, so this fails
// rather than degrading.
func buildManager(ctx context.Context, eventRepo store.EventRepo) (*tutor.Manager, error) {
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	engine := answer.NewEngine(judge.New(provider, judge.DefaultConfig()), answer.DefaultConfig())
	extractor := extract.New(provider, extract.DefaultConfig())
	generator := scaffold.New(provider, scaffold.DefaultConfig())
	controller := tutor.NewController(engine, extractor, newOutcomeRecorder(eventRepo))

	return tutor.NewManager(controller, generator), nil
}

// outcomeRecorder adapts the event repo to the tutor's recorder interface.
type outcomeRecorder struct {
	repo store.EventRepo
}

func newOutcomeRecorder(repo store.EventRepo) tutor.OutcomeRecorder {
	return &outcomeRecorder{repo: repo}
}

func (r *outcomeRecorder) RecordOutcome(ctx context.Context, sessionID string, o tutor.Outcome) error {
	return r.repo.AppendStepOutcome(ctx, store.StepOutcomeData{
		SessionID:     sessionID,
		StepIndex:     o.StepIndex,
		Attempts:      o.Attempts,
		Solved:        o.Solved,
		Skipped:       o.Skipped,
		FinalAnswer:   o.FinalAnswer,
		Understanding: string(o.Understanding),
	})
}

func (r *outcomeRecorder) RecordSessionStart(ctx context.Context, sessionID, problem string) error {
	return r.repo.AppendSessionStart(ctx, store.SessionEventData{SessionID: sessionID, Problem: problem})
}

func (r *outcomeRecorder) RecordSessionEnd(ctx context.Context, sessionID, problem, finalState string) error {
	return r.repo.AppendSessionEnd(ctx, store.SessionEventData{
		SessionID:  sessionID,
		Problem:    problem,
		FinalState: finalState,
	})
}
