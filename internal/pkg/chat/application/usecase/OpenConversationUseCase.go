package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	"github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/port"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

// OpenConversationInput carries the conversation id taken from the URL and
// the authenticated user.
type OpenConversationInput struct {
	ConversationID string
	SessionUserID  string
}

// OpenConversationOutput is what the browser needs to mount the provider's chatbox.
type OpenConversationOutput struct {
	ConversationID string
	AppID          string
	Me             user.Profile
	Signature      string
	Other          user.Profile
}

// OpenConversationUseCase resolves a conversation URL to its two participants.
type OpenConversationUseCase struct {
	Directory port.Directory
	Provider  port.Provider
}

func NewOpenConversationUseCase(dir port.Directory, provider port.Provider) *OpenConversationUseCase {
	return &OpenConversationUseCase{Directory: dir, Provider: provider}
}

// Execute returns chat.ErrMalformedToken for an id EncodeConversationID could
// not have produced, chat.ErrSelfConversation for a pair of the same user and
// chat.ErrNotParticipant when the session user is not one of the pair.
func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (*OpenConversationOutput, error) {
	if _, _, err := chat.VerifyConversationID(in.ConversationID); err != nil {
		return nil, err
	}
	parts, err := chat.ResolveParticipants(in.ConversationID, in.SessionUserID)
	if err != nil {
		return nil, err
	}

	me, err := uc.Directory.FindByID(ctx, parts.Self)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrSessionUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	other, err := uc.Directory.FindByID(ctx, parts.Peer)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrPeerNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Provider.UpsertConversation(ctx, parts.ConversationID, []string{parts.Self, parts.Peer}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	otherProfile := other.Profile()
	otherProfile.Email = ""
	return &OpenConversationOutput{
		ConversationID: parts.ConversationID,
		AppID:          uc.Provider.AppID(),
		Me:             me.Profile(),
		Signature:      uc.Provider.Signature(me.ID),
		Other:          otherProfile,
	}, nil
}
