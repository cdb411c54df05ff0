package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	v1 "github.com/remix-pwa/remix-pwa-chat/cmd/api/router/v1"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/avatar"
	cacheadapter "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/cache/adapter"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/database"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/logging"
	qadapter "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/adapter"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/session"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	chathttp "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/presentation/http"
	userhttp "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/presentation/http"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the database schema before serving")

	return cmd
}

func runServe(cmd *cobra.Command, migrate bool) error {
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
	if migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	cache, err := cacheadapter.NewRedisAdapter(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer cache.Close()

	queue, err := qadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer queue.Close()

	provider, err := talkjs.NewClient(talkjs.Config{
		AppID:     cfg.TalkJSAppID,
		SecretKey: cfg.TalkJSSecretKey,
		BaseURL:   cfg.TalkJSBaseURL,
	})
	if err != nil {
		return err
	}

	userDeps := userhttp.DepsFromPool(pool, avatar.NewRandomUser(cfg.AvatarBaseURL, nil), queue, logger)
	engine, err := newEngine(logger, session.Options{Secret: cfg.SessionSecret, Secure: cfg.Production()}, v1.Deps{
		User: userDeps,
		Chat: chathttp.Deps{
			Directory: userDeps.Repo,
			Provider:  provider,
			Cache:     cache,
			CacheTTL:  cfg.ConversationCacheTTL,
			Logger:    logger,
		},
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newEngine assembles the gin engine: recovery, request logging, the
// session store, the health check and the v1 API.
func newEngine(logger *slog.Logger, sessionOpts session.Options, deps v1.Deps) (*gin.Engine, error) {
	sessions, err := session.Middleware(sessionOpts)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger), sessions)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, deps)
	return r, nil
}
