package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	cacheport "github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/cache/port"
	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/port"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

// ListConversationsUseCase lists a user's conversations at the provider,
// joined with the directory so every entry names the other user.
// Results are cached per user for TTL.
type ListConversationsUseCase struct {
	Directory port.Directory
	Provider  port.Provider
	Cache     cacheport.Cache
	TTL       time.Duration
	Logger    *slog.Logger
}

func NewListConversationsUseCase(dir port.Directory, provider port.Provider, cache cacheport.Cache, ttl time.Duration, logger *slog.Logger) *ListConversationsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListConversationsUseCase{Directory: dir, Provider: provider, Cache: cache, TTL: ttl, Logger: logger}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID string) ([]chat.Summary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	key := cacheport.ConversationListKey(userID)
	if uc.Cache != nil && uc.TTL > 0 {
		var cached []chat.Summary
		err := cacheport.GetJSON(ctx, uc.Cache, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cacheport.ErrMiss) {
			uc.Logger.Warn("conversation cache read failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}

	convs, err := uc.Provider.ListUserConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	others, err := uc.Directory.ListExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := make(map[string]user.User, len(others))
	for _, u := range others {
		byID[u.ID] = u
	}

	summaries := make([]chat.Summary, 0, len(convs))
	for _, c := range convs {
		s := chat.Summary{
			ConversationID:  c.ID,
			LastMessage:     c.LastMessage,
			WelcomeMessages: c.WelcomeMessages,
			CreatedAt:       c.CreatedAt,
		}
		if peer, ok := otherParticipant(c.Participants, userID, byID); ok {
			s.OtherUser = chat.Peer{ID: peer.ID, Name: peer.Name, Avatar: peer.Avatar}
		}
		summaries = append(summaries, s)
	}

	if uc.Cache != nil && uc.TTL > 0 {
		if err := cacheport.SetJSON(ctx, uc.Cache, key, summaries, uc.TTL); err != nil {
			uc.Logger.Warn("conversation cache write failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	return summaries, nil
}

// otherParticipant picks the first known participant that is not the caller.
// Participant ids are visited in sorted order so the pick is stable.
func otherParticipant[V any](participants map[string]V, self string, known map[string]user.User) (user.User, bool) {
	ids := make([]string, 0, len(participants))
	for id := range participants {
		if id != self {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		if u, ok := known[id]; ok {
			return u, true
		}
	}
	return user.User{}, false
}
