package chat

// Participants is a conversation id resolved against the authenticated user.
type Participants struct {
	ConversationID string
	Self           string
	Peer           string
}

// ResolveParticipants decodes token and decides which decoded id is the
// session user. The decoded order is never trusted on its own.
func ResolveParticipants(token string, sessionUserID string) (Participants, error) {
	first, second, err := DecodeConversationID(token)
	if err != nil {
		return Participants{}, err
	}

	p := Participants{ConversationID: token}
	switch sessionUserID {
	case "":
		return Participants{}, ErrNotParticipant
	case first:
		p.Self, p.Peer = first, second
	case second:
		p.Self, p.Peer = second, first
	default:
		return Participants{}, ErrNotParticipant
	}
	return p, nil
}
