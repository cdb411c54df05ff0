package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/database"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/task"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/adapter"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"
)

// demoUsers are the accounts created by `seed`. Hashes are bcrypt; the
// plaintext passwords are love-minecraft, mara.123 and alex-green.
var demoUsers = []user.User{
	{
		Email:        "steve.awesome@me.com",
		Name:         "Steve Works",
		Avatar:       "https://www.pexels.com/photo/purple-and-pink-light-digital-wallpaper-4424355/",
		PasswordHash: "$2y$10$hZ5lHv3/hjWJwg5zeCMTyeIf1fbhoptIGu7ywbMqPomuOPhJNnc0m",
	},
	{
		Email:        "mara02@yahoo.home",
		Name:         "Mara Larson",
		Avatar:       "https://www.pexels.com/photo/an-astronaut-standing-in-a-desolate-environment-8474492/",
		PasswordHash: "$2y$10$QKrYtjIDXsdS2Caugq2ILuBIw/C7a0RGod5qYLGjI5mr.Y5GomxKq",
	},
	{
		Email:        "alex@hg.com",
		Name:         "Alex Green",
		Avatar:       "https://www.pexels.com/photo/photography-of-a-contemporary-hallway-1202849/",
		PasswordHash: "$2y$10$K58RVwe5cp10vkxEGqVZgu6jRa.763S8zPLLohY.v51gP4YXuN..K",
	},
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo accounts and push them to TalkJS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, err := database.Connect(cmd.Context(), cfg.DBURL)
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

			n, err := seedUsers(cmd.Context(), adapter.NewPgUserRepository(pool), provider, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d user(s)\n", n)
			return nil
		},
	}
}

// seedUsers creates the demo accounts that do not exist yet and upserts
// every demo account at the provider. It returns how many were created.
func seedUsers(ctx context.Context, repo repository.UserRepository, syncer task.UserSyncer, logger *slog.Logger) (int, error) {
	created := 0
	for _, demo := range demoUsers {
		u, err := repo.FindByEmail(ctx, demo.Email)
		switch {
		case err == nil:
			logger.Info("seed user exists", slog.String("email", demo.Email))
		case errors.Is(err, user.ErrUserNotFound):
			fresh := demo
			fresh.ID = user.NewUserID()
			fresh.CreatedAt = time.Now().UTC()
			if err := repo.Create(ctx, fresh); err != nil {
				return created, fmt.Errorf("seed %s: %w", demo.Email, err)
			}
			u = &fresh
			created++
		default:
			return created, fmt.Errorf("seed %s: %w", demo.Email, err)
		}

		if err := syncer.UpsertUser(ctx, u.ID, task.ProviderUser(*u)); err != nil {
			return created, fmt.Errorf("seed %s: sync: %w", demo.Email, err)
		}
	}
	return created, nil
}
