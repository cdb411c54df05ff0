package usecase

import (
	"context"
	"errors"
	"fmt"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase checks credentials against the stored bcrypt hash.
type LoginUseCase struct {
	Repo repository.UserRepository
}

func NewLoginUseCase(repo repository.UserRepository) *LoginUseCase {
	return &LoginUseCase{Repo: repo}
}

// Execute returns ErrInvalidCredentials for both an unknown email and a wrong
// password so callers cannot probe which emails are registered.
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
