package usecase

import (
	"context"
	"fmt"
	"strings"

	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
	repository "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/persistence/repository/port"
)

// ListDirectoryInput selects the users a caller can start a conversation with.
// Query, when set, is a case-insensitive substring of the name.
type ListDirectoryInput struct {
	CurrentUserID string
	Query         string
}

// ListDirectoryUseCase lists every other user, never the caller.
type ListDirectoryUseCase struct {
	Repo repository.UserRepository
}

func NewListDirectoryUseCase(repo repository.UserRepository) *ListDirectoryUseCase {
	return &ListDirectoryUseCase{Repo: repo}
}

func (uc *ListDirectoryUseCase) Execute(ctx context.Context, in ListDirectoryInput) ([]user.Profile, error) {
	if in.CurrentUserID == "" {
		return nil, fmt.Errorf("%w: current user is required", ErrInvalidInput)
	}
	users, err := uc.Repo.ListExcept(ctx, in.CurrentUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	query := strings.ToLower(strings.TrimSpace(in.Query))
	profiles := make([]user.Profile, 0, len(users))
	for _, u := range users {
		if u.ID == in.CurrentUserID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(u.Name), query) {
			continue
		}
		p := u.Profile()
		p.Email = ""
		profiles = append(profiles, p)
	}
	return profiles, nil
}
