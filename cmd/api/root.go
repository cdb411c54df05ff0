package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/config"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFiles []string
}

// NewRootCommand creates the root command of the chat backend.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat backend",
		Long:  "HTTP API and background worker for a TalkJS-backed chat app.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotenv(opts.EnvFiles...)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv files to load (default .env)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewWorkerCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}

// loadConfig reads the environment and builds the process logger.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
