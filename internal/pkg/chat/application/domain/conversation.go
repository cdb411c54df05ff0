package chat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Separator joins the fields of a conversation id. User ids must never contain it.
const Separator = "_"

const conversationIDFields = 4

var (
	ErrMalformedToken    = errors.New("chat: malformed conversation id")
	ErrInvalidIdentifier = errors.New("chat: invalid user identifier")
	ErrSelfConversation  = errors.New("chat: cannot open a conversation with yourself")
	ErrNotParticipant    = errors.New("chat: user is not a participant in the conversation")
)

// MalformedTokenError reports a conversation id that does not split into
// the expected number of fields.
type MalformedTokenError struct {
	Token  string
	Fields int
	Reason string
}

func (e *MalformedTokenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("chat: malformed conversation id %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("chat: malformed conversation id %q: got %d fields, want %d", e.Token, e.Fields, conversationIDFields)
}

func (e *MalformedTokenError) Is(target error) bool { return target == ErrMalformedToken }

// InvalidIdentifierError reports a user id that cannot be embedded in a conversation id.
type InvalidIdentifierError struct {
	ID     string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("chat: invalid user identifier %q: %s", e.ID, e.Reason)
}

func (e *InvalidIdentifierError) Is(target error) bool { return target == ErrInvalidIdentifier }

// EncodeConversationID derives the shared conversation id of a user pair.
// The layout is other_len(current)_current_len(other), with lengths in
// UTF-16 code units so ids issued by browser clients encode identically.
// It never fails; callers that need validation use NewConversationID.
func EncodeConversationID(currentID, otherID string) string {
	return strings.Join([]string{
		otherID,
		strconv.Itoa(codeUnits(currentID)),
		currentID,
		strconv.Itoa(codeUnits(otherID)),
	}, Separator)
}

func codeUnits(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// DecodeConversationID splits a conversation id back into its two user ids.
//
// The ids come back as (third field, first field), the reverse of the order
// they appear in the token, so EncodeConversationID("u1", "u2") = "u2_2_u1_2"
// decodes to ("u1", "u2"). Callers must still resolve self and peer against
// the session user (see ResolveParticipants). The length fields are carried
// but not checked.
func DecodeConversationID(token string) (string, string, error) {
	fields := strings.Split(token, Separator)
	if len(fields) != conversationIDFields {
		return "", "", &MalformedTokenError{Token: token, Fields: len(fields)}
	}
	return fields[2], fields[0], nil
}

// ValidateIdentifier checks that id can be embedded in a conversation id.
func ValidateIdentifier(id string) error {
	if id == "" {
		return &InvalidIdentifierError{ID: id, Reason: "empty"}
	}
	if strings.Contains(id, Separator) {
		return &InvalidIdentifierError{ID: id, Reason: "contains separator " + strconv.Quote(Separator)}
	}
	return nil
}

// NewConversationID is EncodeConversationID with the identifier checks applied.
func NewConversationID(currentID, otherID string) (string, error) {
	if err := ValidateIdentifier(currentID); err != nil {
		return "", err
	}
	if err := ValidateIdentifier(otherID); err != nil {
		return "", err
	}
	if currentID == otherID {
		return "", ErrSelfConversation
	}
	return EncodeConversationID(currentID, otherID), nil
}

// VerifyConversationID is the strict form of DecodeConversationID used before
// a token is handed to the chat provider: the pair must be two distinct valid
// ids and the length fields must be exactly what EncodeConversationID writes.
func VerifyConversationID(token string) (string, string, error) {
	current, other, err := DecodeConversationID(token)
	if err != nil {
		return "", "", err
	}
	if err := ValidateIdentifier(current); err != nil {
		return "", "", &MalformedTokenError{Token: token, Fields: conversationIDFields, Reason: err.Error()}
	}
	if err := ValidateIdentifier(other); err != nil {
		return "", "", &MalformedTokenError{Token: token, Fields: conversationIDFields, Reason: err.Error()}
	}
	if current == other {
		return "", "", ErrSelfConversation
	}
	if EncodeConversationID(current, other) != token {
		return "", "", &MalformedTokenError{Token: token, Fields: conversationIDFields, Reason: "length fields do not match"}
	}
	return current, other, nil
}
