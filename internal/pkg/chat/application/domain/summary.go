package chat

import "encoding/json"

// Peer is the public view of the other user in a conversation.
type Peer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Email  string `json:"email,omitempty"`
}

// Summary is one entry of a user's conversation list.
// LastMessage and WelcomeMessages are passed through from the chat provider untouched.
type Summary struct {
	ConversationID  string          `json:"conversationId"`
	OtherUser       Peer            `json:"otherUser"`
	LastMessage     json.RawMessage `json:"lastMessage"`
	WelcomeMessages json.RawMessage `json:"welcomeMessages"`
	CreatedAt       int64           `json:"createdAt"`
}
