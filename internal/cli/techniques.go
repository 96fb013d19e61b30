package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"respira/internal/core/model"
)

func newTechniquesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "techniques",
		Short: "List the breathing techniques",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPATTERN")
			for _, technique := range model.Techniques() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", technique.ID, technique.Name, patternString(technique))
			}
			return w.Flush()
		},
	}
}

// patternString renders durations as 4-7-8.
func patternString(technique model.Technique) string {
	parts := make([]string, 0, len(technique.Pattern))
	for _, phase := range technique.Pattern {
		parts = append(parts, fmt.Sprint(phase.Duration))
	}
	return strings.Join(parts, "-")
}
