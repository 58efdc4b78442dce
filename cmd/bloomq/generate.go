package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/bloomq/internal/engine"
	"github.com/crimson-sun/bloomq/internal/output"
	"github.com/crimson-sun/bloomq/internal/quiz"
	"github.com/crimson-sun/bloomq/internal/quizgen"
)

var (
	genFile   string
	genTitle  string
	genCounts quizgen.Counts
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz from source text and reconcile its levels",
	Long: `Generate a quiz with Gemini from a text file, replace each question's
declared cognitive level with one consistent with its classified LOTS/HOTS
group, and emit the formatted quiz with a reconciliation report.

API keys are read from BLOOMQ_GENERATOR_API_KEYS (comma separated). On a
quota or credential error the next key is tried after a backoff.

Examples:
  bloomq generate --file chapter3.txt --title "Cell Biology" --mc 10 --tf 5 --id 5`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genFile, "file", "", "source text file (required)")
	f.StringVar(&genTitle, "title", "", "quiz title")
	f.IntVar(&genCounts.MultipleChoice, "mc", 0, "number of multiple-choice questions")
	f.IntVar(&genCounts.TrueFalse, "tf", 0, "number of true/false questions")
	f.IntVar(&genCounts.Identification, "id", 0, "number of identification questions")
	generateCmd.MarkFlagRequired("file")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := cfg.RequireGenerator(); err != nil {
		return err
	}
	if err := genCounts.Validate(); err != nil {
		return err
	}
	text, err := os.ReadFile(genFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", genFile, err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Generator.Timeout)
	defer cancel()

	provider, err := quizgen.NewRotatingProvider(ctx, cfg.Generator.APIKeys,
		quizgen.GeminiFactory(cfg.Generator.Model),
		quizgen.RetryPolicy{
			MaxAttempts: cfg.Generator.MaxAttempts,
			InitialWait: cfg.Generator.InitialWait,
			MaxWait:     cfg.Generator.MaxWait,
			Multiplier:  cfg.Generator.Multiplier,
		})
	if err != nil {
		return err
	}

	eng, err := engine.Open(cfg.Engine)
	if err != nil {
		return err
	}
	defer eng.Close()

	svc := quiz.NewService(quizgen.NewGenerator(provider), eng.Reconciler())
	res, err := svc.Build(ctx, quiz.Request{Text: string(text), Title: genTitle, Counts: genCounts})
	if err != nil {
		return err
	}

	out, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := out.Write(ctx, output.FromQuiz(res.Quiz, &res.Report)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
