package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rasingollam/AI-Tutor/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show past tutoring sessions and their step outcomes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		if len(args) == 1 {
			return printSessionOutcomes(ctx, s.EventRepo(), args[0])
		}
		return printRecentSessions(ctx, s.EventRepo(), limit)
	},
}

func printRecentSessions(ctx context.Context, repo store.EventRepo, limit int) error {
	sessions, err := repo.RecentSessions(ctx, limit)
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-10s  %s\n", "Session", "Ended", "State", "Problem")
	fmt.Println(strings.Repeat("─", 110))
	for _, rec := range sessions {
		fmt.Printf("%-36s  %-19s  %-10s  %s\n",
			rec.SessionID,
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
			rec.FinalState,
			truncate(rec.Problem, 40),
		)
	}
	fmt.Println("\nUse 'ai-tutor history <session-id>' for per-step outcomes.")
	return nil
}

func printSessionOutcomes(ctx context.Context, repo store.EventRepo, sessionID string) error {
	outcomes, err := repo.SessionOutcomes(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("query outcomes: %w", err)
	}

	if len(outcomes) == 0 {
		fmt.Printf("No outcomes recorded for session %s.\n", sessionID)
		return nil
	}

	fmt.Printf("%-5s  %-8s  %-8s  %-14s  %s\n", "Step", "Attempts", "Result", "Understanding", "Answer")
	fmt.Println(strings.Repeat("─", 70))
	for _, o := range outcomes {
		result := "skipped"
		if o.Solved {
			result = "solved"
		}
		fmt.Printf("%-5d  %-8d  %-8s  %-14s  %s\n",
			o.StepIndex+1, o.Attempts, result, o.Understanding, o.FinalAnswer)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
