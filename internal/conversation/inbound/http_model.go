package inbound

import (
	"time"

	"github.com/servizo/servizo/internal/conversation/entity"
)

type CreateConversationRequest struct {
	ClientID int64  `json:"client_id"`
	AdminID  *int64 `json:"admin_id"`
	Subject  string `json:"subject"`
	Priority string `json:"priority"`
}

type UpdateConversationStatusRequest struct {
	Status string `json:"status"`
}

type SendMessageRequest struct {
	ConversationID int64  `json:"conversation_id"`
	RecipientID    int64  `json:"recipient_id"`
	Content        string `json:"content"`
	MessageType    string `json:"message_type"`
	AttachmentURL  string `json:"attachment_url"`
}

type ConversationResponse struct {
	ID            int64      `json:"id"`
	ClientID      int64      `json:"client_id"`
	AdminID       *int64     `json:"admin_id,omitempty"`
	Subject       string     `json:"subject"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ConversationsResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type MessageResponse struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	RecipientID    int64      `json:"recipient_id"`
	Content        string     `json:"content"`
	MessageType    string     `json:"message_type"`
	AttachmentURL  string     `json:"attachment_url,omitempty"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type MessagesResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type MarkMessagesReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func toConversationResponse(conv *entity.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            conv.ID,
		ClientID:      conv.ClientID,
		AdminID:       conv.AdminID,
		Subject:       conv.Subject,
		Status:        conv.Status.String(),
		Priority:      conv.Priority.String(),
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
}

func toMessageResponse(msg *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		Content:        msg.Content,
		MessageType:    msg.MessageType.String(),
		AttachmentURL:  msg.AttachmentURL,
		IsRead:         msg.IsRead,
		ReadAt:         msg.ReadAt,
		CreatedAt:      msg.CreatedAt,
	}
}
