package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/bloomq/internal/engine/distribution"
	"github.com/crimson-sun/bloomq/internal/engine/taxonomy"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the level table and keyword counts",
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tDIFFICULTY\tGROUP\tSHARE\tKEYWORDS")
	for _, s := range taxonomy.DefaultKeywords() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%d\n",
			s.Level, s.Level.Difficulty(), s.Level.Group(), distribution.Share(s.Level)*100, len(s.Phrases))
	}
	return w.Flush()
}
