package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/remix-pwa/remix-pwa-chat/internal/pkg/chat/application/domain"
	user "github.com/remix-pwa/remix-pwa-chat/internal/pkg/user/application/domain"
)

func TestOpenConversationUseCase(t *testing.T) {
	token := chat.EncodeConversationID("alice123", "bob")

	for _, tc := range []struct {
		session   string
		wantMe    string
		wantOther string
	}{
		{session: "alice123", wantMe: "alice123", wantOther: "bob"},
		{session: "bob", wantMe: "bob", wantOther: "alice123"},
	} {
		t.Run(tc.session, func(t *testing.T) {
			provider := &fakeProvider{}
			uc := NewOpenConversationUseCase(newDirectory(alice, bob), provider)

			out, err := uc.Execute(context.Background(), OpenConversationInput{ConversationID: token, SessionUserID: tc.session})
			require.NoError(t, err)

			assert.Equal(t, token, out.ConversationID)
			assert.Equal(t, "tApp", out.AppID)
			assert.Equal(t, tc.wantMe, out.Me.ID)
			assert.NotEmpty(t, out.Me.Email)
			assert.Equal(t, "sig-"+tc.wantMe, out.Signature)
			assert.Equal(t, tc.wantOther, out.Other.ID)
			assert.Empty(t, out.Other.Email)
			assert.Equal(t, []upsert{{id: token, participants: []string{tc.wantMe, tc.wantOther}}}, provider.upserts)
		})
	}
}

func TestOpenConversationUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	token := chat.EncodeConversationID("alice123", "bob")
	uc := NewOpenConversationUseCase(newDirectory(alice, bob, carol), &fakeProvider{})

	_, err := uc.Execute(ctx, OpenConversationInput{ConversationID: "onlyonefield", SessionUserID: "alice123"})
	assert.ErrorIs(t, err, chat.ErrMalformedToken)

	_, err = uc.Execute(ctx, OpenConversationInput{ConversationID: token, SessionUserID: "carol"})
	assert.ErrorIs(t, err, chat.ErrNotParticipant)

	ghost := chat.EncodeConversationID("alice123", "ghost")
	_, err = uc.Execute(ctx, OpenConversationInput{ConversationID: ghost, SessionUserID: "alice123"})
	assert.ErrorIs(t, err, ErrPeerNotFound)

	deleted := NewOpenConversationUseCase(newDirectory(bob), &fakeProvider{})
	_, err = deleted.Execute(ctx, OpenConversationInput{ConversationID: token, SessionUserID: "alice123"})
	assert.ErrorIs(t, err, ErrSessionUserNotFound)

	down := NewOpenConversationUseCase(newDirectory(alice, bob), &fakeProvider{upsertErr: errBoom})
	_, err = down.Execute(ctx, OpenConversationInput{ConversationID: token, SessionUserID: "alice123"})
	assert.ErrorIs(t, err, ErrProvider)

	broken := &fakeDirectory{err: errBoom, users: map[string]user.User{}}
	_, err = NewOpenConversationUseCase(broken, &fakeProvider{}).
		Execute(ctx, OpenConversationInput{ConversationID: token, SessionUserID: "alice123"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestOpenConversationUseCase_RejectsDegenerateTokens(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{}
	uc := NewOpenConversationUseCase(newDirectory(alice, bob), provider)

	_, err := uc.Execute(ctx, OpenConversationInput{ConversationID: "alice123_8_alice123_8", SessionUserID: "alice123"})
	assert.ErrorIs(t, err, chat.ErrSelfConversation)

	// right pair, wrong length fields: would mint a second thread for alice and bob
	_, err = uc.Execute(ctx, OpenConversationInput{ConversationID: "bob_99_alice123_0", SessionUserID: "alice123"})
	assert.ErrorIs(t, err, chat.ErrMalformedToken)

	assert.Empty(t, provider.upserts)
}
