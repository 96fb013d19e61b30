// Package cli defines the respira command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"respira/internal/config"
	"respira/internal/logging"
	"respira/internal/storage"
	"respira/internal/ui/desktop"
)

// runtime is the state shared by every command once flags are parsed.
type runtime struct {
	configPath string
	config     config.Config
	logger     *slog.Logger
	closeLog   func() error
}

// NewRootCmd builds the respira command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "respira",
		Short:         "Guided breathing for anxious moments",
		Long:          "Respira recommends a breathing technique for how you feel and guides you through it, in a desktop window or in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.load(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := newProvider(cmd.Context(), rt.config.Recommend, rt.logger)
			if err != nil {
				return err
			}
			store, err := storage.DefaultStore(desktop.AppName)
			if err != nil {
				rt.logger.Warn("preferences unavailable", slog.Any("error", err))
			}
			return desktop.Run(cmd.Context(), desktop.Options{
				Provider:     provider,
				Store:        store,
				TickInterval: rt.config.Engine.TickInterval,
				Logger:       rt.logger,
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&rt.configPath, "config", "", "config file (default <user config dir>/Respira/config.*)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("provider", config.ProviderGemini, "recommendation provider: gemini or keyword")
	flags.String("model", "", "Gemini model name")

	cmd.AddCommand(newTechniquesCmd())
	cmd.AddCommand(newRecommendCmd(rt))
	cmd.AddCommand(newBreatheCmd(rt))

	return cmd
}

func (rt *runtime) load(cmd *cobra.Command) error {
	cfg, err := config.Load(rt.configPath, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	rt.config = cfg
	rt.logger = logger
	rt.closeLog = closeLog
	slog.SetDefault(logger)
	return nil
}

func (rt *runtime) close() error {
	if rt.closeLog == nil {
		return nil
	}
	err := rt.closeLog()
	rt.closeLog = nil
	return err
}
