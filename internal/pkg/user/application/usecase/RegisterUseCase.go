package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	qport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/queue/port"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/task"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"

	"golang.org/x/crypto/bcrypt"
)

// AvatarLookup finds a picture for a new account.
type AvatarLookup interface {
	Lookup(ctx context.Context, email string) (string, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUseCase creates an account and schedules its sync to the chat provider.
type RegisterUseCase struct {
	Repo   repository.UserRepository
	Avatar AvatarLookup
	Queue  qport.Client
	Logger *slog.Logger

	Cost int
	Now  func() time.Time
}

func NewRegisterUseCase(repo repository.UserRepository, avatars AvatarLookup, queue qport.Client, logger *slog.Logger) *RegisterUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegisterUseCase{
		Repo:   repo,
		Avatar: avatars,
		Queue:  queue,
		Logger: logger,
		Cost:   bcrypt.DefaultCost,
		Now:    time.Now,
	}
}

// Execute registers the account. The sync task is best-effort: a queue
// failure is logged and does not undo the registration.
func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := user.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	existing, err := uc.Repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, user.ErrUserExists
	case err != nil && !errors.Is(err, user.ErrUserNotFound):
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.Cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	u := user.User{
		ID:           user.NewUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    uc.Now().UTC(),
	}
	if uc.Avatar != nil {
		if avatar, err := uc.Avatar.Lookup(ctx, email); err == nil {
			u.Avatar = avatar
		} else {
			uc.Logger.Warn("avatar lookup failed", slog.String("email", email), slog.Any("error", err))
		}
	}

	if err := uc.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Queue != nil {
		if _, err := task.EnqueueSyncUser(ctx, uc.Queue, u.ID); err != nil {
			uc.Logger.Error("enqueue user sync failed", slog.String("user_id", u.ID), slog.Any("error", err))
		}
	}
	return &u, nil
}
