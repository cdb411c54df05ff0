package port

import (
	"context"

	"github.com/remix-pwa/remix-pwa-chat/internal/infrastructure/talkjs"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

// Provider is the hosted chat service that stores and delivers messages.
// GetConversation reports a missing conversation as talkjs.ErrConversationNotFound.
type Provider interface {
	AppID() string
	Signature(userID string) string
	GetConversation(ctx context.Context, conversationID string) (*talkjs.Conversation, error)
	UpsertConversation(ctx context.Context, conversationID string, participants []string) error
	ListUserConversations(ctx context.Context, userID string) ([]talkjs.Conversation, error)
}

// Directory resolves user ids to accounts. FindByID returns
// user.ErrUserNotFound on a miss.
type Directory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
	ListExcept(ctx context.Context, excludeID string) ([]user.User, error)
}

var _ Provider = (*talkjs.Client)(nil)
