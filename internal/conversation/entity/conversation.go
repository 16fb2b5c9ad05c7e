package entity

import (
	"time"
)

// Conversation is a two-party thread between a client/worker and an admin.
//
// AdminID stays nil until an admin claims the thread.
type Conversation struct {
	ID            int64
	ClientID      int64
	AdminID       *int64
	Subject       string
	Status        Status
	Priority      Priority
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID int64) bool {
	if c.ClientID == userID {
		return true
	}

	return c.AdminID != nil && *c.AdminID == userID
}

type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	RecipientID    int64
	Content        string
	MessageType    MessageType
	AttachmentURL  string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}

type CreateConversation struct {
	ID       int64
	ClientID int64
	AdminID  *int64
	Subject  string
	Priority Priority
}

type CreateMessage struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	RecipientID    int64
	Content        string
	MessageType    MessageType
	AttachmentURL  string
}
