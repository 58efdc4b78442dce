package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/output"
)

var planCmd = &cobra.Command{
	Use:   "plan <total>",
	Short: "Print the target number of questions per level",
	Long: `Print the advisory level distribution for a quiz of <total> questions:
60% low-order (10/20/30) and 40% high-order (15/15/10), each level rounded
and floored at one question.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	total, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("total must be an integer, got %q", args[0])
	}

	out, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := out.Write(cmd.Context(), output.FromPlan(distribution.Plan(total))); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
