package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/bloomq/internal/engine"
	"github.com/crimson-sun/bloomq/internal/output"
)

var (
	classifyCoarse  bool
	classifyExplain bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [question...]",
	Short: "Classify questions into cognitive levels",
	Long: `Classify each question into one of the six cognitive levels and emit one
JSON record per question. Questions are taken from the arguments, or read
one per line from stdin when none are given.

Examples:
  # Six-way classification
  bloomq classify "Define osmosis." "Design a water filter."

  # LOTS/HOTS only, from a file
  bloomq classify --coarse < questions.txt

  # Include group aggregate scores
  bloomq classify --explain "Justify your answer."`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyCoarse, "coarse", false, "classify as LOTS or HOTS only")
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "add LOTS/HOTS aggregate scores")
	classifyCmd.MarkFlagsMutuallyExclusive("coarse", "explain")
}

func runClassify(cmd *cobra.Command, args []string) error {
	questions := args
	if len(questions) == 0 {
		var err error
		questions, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions to classify")
	}

	eng, err := engine.Open(cfg.Engine)
	if err != nil {
		return err
	}
	defer eng.Close()

	records, err := classifyRecords(eng, questions)
	if err != nil {
		return err
	}

	out, err := openOutput(cmd)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := out.Write(cmd.Context(), rec); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

func classifyRecords(eng *engine.Engine, questions []string) ([]output.Record, error) {
	records := make([]output.Record, len(questions))
	switch {
	case classifyCoarse:
		res, err := eng.ClassifyBatch(questions)
		if err != nil {
			return nil, err
		}
		for i, c := range res {
			records[i] = output.FromCoarse(questions[i], c)
		}
	case classifyExplain:
		for i, q := range questions {
			e, err := eng.Explain(q)
			if err != nil {
				return nil, err
			}
			records[i] = output.FromExplanation(q, e)
		}
	default:
		res, err := eng.ClassifyBatchDetailed(questions)
		if err != nil {
			return nil, err
		}
		for i, d := range res {
			records[i] = output.FromDetailed(questions[i], d)
		}
	}
	return records, nil
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
