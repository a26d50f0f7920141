package cmd

import (
	"fmt"
	"strings"

	"github.com/rasingollam/AI-Tutor/internal/extract"
	"github.com/rasingollam/AI-Tutor/internal/llm"
	"github.com/rasingollam/AI-Tutor/internal/scaffold"
	"github.com/rasingollam/AI-Tutor/internal/store"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Break a problem into steps without starting a session",
	Long: `Generate the step-by-step solution path for a problem and print it.
The problem comes from the argument, or from a photo via --image.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, _ := cmd.Flags().GetString("image")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		if len(args) == 0 && imagePath == "" {
			return fmt.Errorf("provide a problem as an argument or an --image path")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		problemText := ""
		if len(args) > 0 {
			problemText = args[0]
		}
		if imagePath != "" {
			img, err := extract.LoadImage(imagePath)
			if err != nil {
				return err
			}
			extractor := extract.New(provider, extract.DefaultConfig())
			problem, err := extractor.ExtractProblem(ctx, img)
			if err != nil {
				return fmt.Errorf("read problem from image: %w", err)
			}
			problemText = problem.Text
			fmt.Printf("Problem from image: %s\n\n", problemText)
		}

		gen := scaffold.New(provider, scaffold.DefaultConfig())

		// Classification is informational; a failure here should not stop
		// the plan from being generated.
		if a, err := gen.Analyze(ctx, problemText); err == nil {
			fmt.Printf("Type: %s\nGoal: %s\n\n", a.ProblemType, a.Goal)
		}

		seq, err := gen.Steps(ctx, problemText)
		if err != nil {
			return fmt.Errorf("generate steps: %w", err)
		}

		fmt.Printf("Solution path (%d steps):\n", seq.Len())
		fmt.Println(strings.Repeat("─", 60))
		for i := 0; i < seq.Len(); i++ {
			step := seq.At(i)
			fmt.Printf("%d. %s\n", i+1, step.Instruction)
			if step.Hint != "" {
				fmt.Printf("   hint: %s\n", step.Hint)
			}
			if showAnswers {
				fmt.Printf("   answer: %s\n", strings.Join(step.Forms(), " or "))
			}
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().String("image", "", "Path to a photo of the problem")
	solveCmd.Flags().Bool("answers", false, "Also print the accepted answer for each step")
}
