package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cacheport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/cache/port"
	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/port"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

// StartConversationInput names the requesting user and the selected counterpart.
type StartConversationInput struct {
	CurrentUserID string
	OtherUserID   string
}

type StartConversationOutput struct {
	ConversationID string
	Location       string
	Created        bool
}

// StartConversationUseCase derives the conversation id of a user pair and
// makes sure the conversation exists at the provider.
//
// The id depends on who initiates, so an existing conversation started by
// the other user is reused rather than creating a second thread.
type StartConversationUseCase struct {
	Directory port.Directory
	Provider  port.Provider
	Cache     cacheport.Cache
	Logger    *slog.Logger
}

func NewStartConversationUseCase(dir port.Directory, provider port.Provider, cache cacheport.Cache, logger *slog.Logger) *StartConversationUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &StartConversationUseCase{Directory: dir, Provider: provider, Cache: cache, Logger: logger}
}

func (uc *StartConversationUseCase) Execute(ctx context.Context, in StartConversationInput) (*StartConversationOutput, error) {
	token, err := chat.NewConversationID(in.CurrentUserID, in.OtherUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := uc.Directory.FindByID(ctx, in.OtherUserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrPeerNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	reverse := chat.EncodeConversationID(in.OtherUserID, in.CurrentUserID)
	for _, id := range []string{token, reverse} {
		found, err := uc.exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			return &StartConversationOutput{ConversationID: id, Location: Location(id)}, nil
		}
	}

	if err := uc.Provider.UpsertConversation(ctx, token, []string{in.CurrentUserID, in.OtherUserID}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	uc.invalidate(ctx, in.CurrentUserID, in.OtherUserID)

	return &StartConversationOutput{ConversationID: token, Location: Location(token), Created: true}, nil
}

// exists looks id up at the provider directly, so threads that have fallen
// off the first page of either user's conversation list are still found.
func (uc *StartConversationUseCase) exists(ctx context.Context, id string) (bool, error) {
	_, err := uc.Provider.GetConversation(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, talkjs.ErrConversationNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrProvider, err)
	}
}

func (uc *StartConversationUseCase) invalidate(ctx context.Context, userIDs ...string) {
	if uc.Cache == nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, cacheport.ConversationListKey(id))
	}
	if _, err := uc.Cache.Del(ctx, keys...); err != nil {
		uc.Logger.Warn("conversation cache invalidation failed", slog.Any("error", err))
	}
}

// Location is the browser route of a conversation.
func Location(conversationID string) string {
	return "/chat/" + conversationID
}
