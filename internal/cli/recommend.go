package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"respira/internal/core/model"
)

func newRecommendCmd(rt *runtime) *cobra.Command {
	var (
		emotion string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend [description...]",
		Short: "Recommend a breathing technique for how you feel",
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.TrimSpace(strings.Join(args, " "))
			if strings.TrimSpace(emotion) == "" && description == "" {
				return errors.New("describe how you feel with --emotion or free text")
			}

			provider, err := newProvider(cmd.Context(), rt.config.Recommend, rt.logger)
			if err != nil {
				return err
			}
			service := newService(provider, rt.config.Recommend, rt.logger)
			technique, rec := service.Resolve(cmd.Context(), requestFor(emotion, description))

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(rec)
			}
			fmt.Fprintf(out, "%s (%s)\n", technique.Name, technique.ID)
			fmt.Fprintf(out, "%s\n\n", describePattern(technique))
			fmt.Fprintln(out, rec.Reasoning)
			return nil
		},
	}

	cmd.Flags().StringVar(&emotion, "emotion", "", fmt.Sprintf("how you feel, e.g. %q", model.EmotionOptions[0]))
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recommendation as JSON")
	return cmd
}

func describePattern(technique model.Technique) string {
	parts := make([]string, 0, len(technique.Pattern))
	for _, phase := range technique.Pattern {
		parts = append(parts, fmt.Sprintf("%s %ds", phase.Label, phase.Duration))
	}
	return strings.Join(parts, " · ")
}
