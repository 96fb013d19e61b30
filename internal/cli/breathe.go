package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"respira/internal/core/breathing"
	"respira/internal/core/model"
	"respira/internal/recommend"
	"respira/internal/ui/screens"
	"respira/internal/ui/terminal"
)

func newBreatheCmd(rt *runtime) *cobra.Command {
	var (
		techniqueFlag string
		cycles        int
		autoStart     bool
	)

	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Run a breathing session in the terminal",
		Long: "Run a breathing session in the terminal. Without --technique, " +
			"a short check-in picks the technique for you.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cycles < 0 {
				return fmt.Errorf("--cycles must not be negative, got %d", cycles)
			}
			ctx := cmd.Context()
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()

			var technique model.Technique
			if techniqueFlag != "" {
				id, err := model.ParseTechniqueID(techniqueFlag)
				if err != nil {
					return err
				}
				technique = model.MustLookup(id)
			} else {
				req, err := terminal.CheckIn(ctx, in, out)
				if errors.Is(err, terminal.ErrAborted) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("check-in: %w", err)
				}

				provider, err := newProvider(ctx, rt.config.Recommend, rt.logger)
				if err != nil {
					return err
				}
				var rec recommend.Recommendation
				technique, rec = newService(provider, rt.config.Recommend, rt.logger).Resolve(ctx, req)
				fmt.Fprintf(out, "%s\n%s\n\n", technique.Name, rec.Reasoning)
			}

			engine, err := breathing.New(technique, breathing.Config{TickInterval: rt.config.Engine.TickInterval})
			if err != nil {
				return err
			}
			defer engine.Close()

			sessionID := uuid.NewString()
			logger := rt.logger.With(slog.String("session", sessionID))
			logger.Info("session opened", slog.String("technique", string(technique.ID)))

			final, err := terminal.Run(ctx, engine, terminal.Options{MaxCycles: cycles, AutoStart: autoStart}, in, out)
			if err != nil {
				return fmt.Errorf("run session: %w", err)
			}
			logger.Info("session ended", slog.Int("cycles", final.CyclesCompleted))
			fmt.Fprintln(out, screens.FinishedMessage(final.CyclesCompleted))
			return nil
		},
	}

	cmd.Flags().StringVarP(&techniqueFlag, "technique", "t", "", "technique ID: "+techniqueList())
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 0, "stop after this many cycles (0 runs until you quit)")
	cmd.Flags().BoolVar(&autoStart, "start", false, "start breathing right away")
	return cmd
}

func requestFor(emotion, description string) recommend.Request {
	return recommend.Request{
		Emotion:     strings.TrimSpace(emotion),
		Description: strings.TrimSpace(description),
	}
}

func techniqueList() string {
	ids := make([]string, 0, len(model.TechniqueIDs))
	for _, id := range model.TechniqueIDs {
		ids = append(ids, string(id))
	}
	return strings.Join(ids, ", ")
}
