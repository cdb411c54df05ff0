package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/database"
	qadapter "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/adapter"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/task"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/adapter"
)

// NewWorkerCommand creates the worker command.
func NewWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the background worker that syncs users to TalkJS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd)
		},
	}
}

func runWorker(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	provider, err := talkjs.NewClient(talkjs.Config{
		AppID:     cfg.TalkJSAppID,
		SecretKey: cfg.TalkJSSecretKey,
		BaseURL:   cfg.TalkJSBaseURL,
	})
	if err != nil {
		return err
	}

	srv, err := qadapter.NewAsynqServer(qadapter.ServerConfig{
		RedisURL:    cfg.RedisURL,
		Concurrency: cfg.AsynqConcurrency,
		Queues:      cfg.AsynqQueues,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	task.RegisterSyncUserTask(srv, adapter.NewPgUserRepository(pool), provider)

	return srv.Run(ctx)
}
