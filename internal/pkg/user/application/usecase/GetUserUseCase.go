package usecase

import (
	"context"
	"errors"
	"fmt"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"
)

type GetUserUseCase struct {
	Repo repository.UserRepository
}

func NewGetUserUseCase(repo repository.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{Repo: repo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id string) (*user.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	u, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return u, nil
}
