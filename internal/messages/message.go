package messages

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	Table = "messages"

	ParticipantMember = "member"
	ParticipantAdmin  = "admin"

	MaxContentLength = 2000
)

var (
	ErrInvalidContent = errors.New("invalid message content")
	ErrInvalidReader  = errors.New("invalid reader type")
)

// Message is one inbox entry between a member and their gym's admin.
// The admin side is identified by the gym id.
type Message struct {
	ID           int64      `json:"id"`
	GymID        int64      `json:"gym_id"`
	SenderID     int64      `json:"sender_id"`
	ReceiverID   int64      `json:"receiver_id"`
	SenderType   string     `json:"sender_type"`
	ReceiverType string     `json:"receiver_type"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}

// InConversation reports whether the message was sent by or to the member.
func (m Message) InConversation(memberID int64) bool {
	return (m.SenderType == ParticipantMember && m.SenderID == memberID) ||
		(m.ReceiverType == ParticipantMember && m.ReceiverID == memberID)
}

// FromMember builds an outgoing member message to the gym admin.
func FromMember(gymID, memberID int64, content string) Message {
	return Message{
		GymID:        gymID,
		SenderID:     memberID,
		ReceiverID:   gymID,
		SenderType:   ParticipantMember,
		ReceiverType: ParticipantAdmin,
		Content:      content,
	}
}

// FromAdmin builds an outgoing admin message to a member.
func FromAdmin(gymID, memberID int64, content string) Message {
	return Message{
		GymID:        gymID,
		SenderID:     gymID,
		ReceiverID:   memberID,
		SenderType:   ParticipantAdmin,
		ReceiverType: ParticipantMember,
		Content:      content,
	}
}

// MemberID returns the member side of the conversation.
func (m Message) MemberID() int64 {
	if m.SenderType == ParticipantMember {
		return m.SenderID
	}
	return m.ReceiverID
}

var contentPolicy = bluemonday.StrictPolicy()

// SanitizeContent strips all markup and returns the plain text, trimmed.
func SanitizeContent(raw string) (string, error) {
	text := strings.TrimSpace(html.UnescapeString(contentPolicy.Sanitize(raw)))
	if text == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidContent)
	}
	if n := utf8.RuneCountInString(text); n > MaxContentLength {
		return "", fmt.Errorf("%w: %d characters, max %d", ErrInvalidContent, n, MaxContentLength)
	}
	return text, nil
}
