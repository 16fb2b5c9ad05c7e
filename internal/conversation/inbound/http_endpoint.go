package inbound

import (
	"strconv"

	"github.com/servizo/servizo/internal/conversation/usecase"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// CreateConversation opens a new support thread.
// @Summary Create conversation
// @Description Opens a new conversation between a user and the support team.
// @Tags Conversation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateConversationRequest true "Conversation payload"
// @Success 200 {object} router.successResponse{data=ConversationResponse} "Created conversation"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/conversations [post]
func (h *HTTPEndpoint) CreateConversation(r *router.Request) (any, error) {
	var req CreateConversationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	conv, err := h.uc.ConversationCreate(r.Context(), usecase.ConversationCreateInput{
		ClientID: req.ClientID,
		AdminID:  req.AdminID,
		Subject:  req.Subject,
		Priority: req.Priority,
	})
	if err != nil {
		return nil, err
	}

	return toConversationResponse(conv), nil
}

// ListConversations lists threads the caller participates in.
// @Summary List conversations
// @Description Returns conversations for the authenticated user, most recent activity first.
// @Tags Conversation
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Target user (admin only)"
// @Success 200 {object} router.successResponse{data=ConversationsResponse} "Conversation list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/conversations [get]
func (h *HTTPEndpoint) ListConversations(r *router.Request) (any, error) {
	var userID int64
	if raw := r.GetQuery("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}
		userID = id
	}

	items, err := h.uc.ConversationList(r.Context(), usecase.ConversationListInput{
		UserID: userID,
		Role:   r.GetQuery("role"),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]ConversationResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toConversationResponse(&items[i]))
	}

	return ConversationsResponse{Conversations: resp}, nil
}

// UpdateConversationStatus closes, archives or reopens a thread.
// @Summary Update conversation status
// @Description Transitions a conversation between active, closed and archived.
// @Tags Conversation
// @Security BearerAuth
// @Accept json
// @Param id path int true "Conversation ID"
// @Param request body UpdateConversationStatusRequest true "Status payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Conversation not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/conversations/{id}/status [put]
func (h *HTTPEndpoint) UpdateConversationStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req UpdateConversationStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ConversationUpdateStatus(r.Context(), usecase.ConversationStatusInput{
		ConversationID: id,
		Status:         req.Status,
	})
}

// SendMessage appends a message to a conversation.
// @Summary Send message
// @Description Appends a message to an active conversation the caller participates in.
// @Tags Message
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message payload"
// @Success 200 {object} router.successResponse{data=MessageResponse} "Created message"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Conversation not found"
// @Failure 409 {object} router.errorResponse "Conversation not active"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/messages [post]
func (h *HTTPEndpoint) SendMessage(r *router.Request) (any, error) {
	var req SendMessageRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	msg, err := h.uc.MessageAppend(r.Context(), usecase.MessageAppendInput{
		ConversationID: req.ConversationID,
		RecipientID:    req.RecipientID,
		Content:        req.Content,
		MessageType:    req.MessageType,
		AttachmentURL:  req.AttachmentURL,
	})
	if err != nil {
		return nil, err
	}

	return toMessageResponse(msg), nil
}

// ListMessages returns a conversation's messages in chronological order.
// @Summary List messages
// @Description Returns all messages of a conversation the caller participates in.
// @Tags Message
// @Security BearerAuth
// @Produce json
// @Param conversationId path int true "Conversation ID"
// @Success 200 {object} router.successResponse{data=MessagesResponse} "Message list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Conversation not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/messages/{conversationId} [get]
func (h *HTTPEndpoint) ListMessages(r *router.Request) (any, error) {
	conversationID, err := r.GetParamInt64("conversationId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	out, err := h.uc.MessageList(r.Context(), usecase.MessageListInput{ConversationID: conversationID})
	if err != nil {
		return nil, err
	}

	msgs := make([]MessageResponse, 0, len(out.Messages))
	for i := range out.Messages {
		msgs = append(msgs, toMessageResponse(&out.Messages[i]))
	}

	return MessagesResponse{
		Conversation: toConversationResponse(out.Conversation),
		Messages:     msgs,
	}, nil
}

// MarkMessagesRead marks a conversation's messages as read for a user.
// @Summary Mark messages read
// @Description Marks every unread message addressed to the user in the conversation as read.
// @Tags Message
// @Security BearerAuth
// @Produce json
// @Param conversationId path int true "Conversation ID"
// @Param userId path int true "User ID, must match the authenticated user"
// @Success 200 {object} router.successResponse{data=MarkMessagesReadResponse} "Update count"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Conversation not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/messages/read/{conversationId}/{userId} [put]
func (h *HTTPEndpoint) MarkMessagesRead(r *router.Request) (any, error) {
	conversationID, err := r.GetParamInt64("conversationId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	userID, err := r.GetParamInt64("userId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	out, err := h.uc.MessageRead(r.Context(), usecase.MessageReadInput{
		ConversationID: conversationID,
		UserID:         userID,
	})
	if err != nil {
		return nil, err
	}

	return MarkMessagesReadResponse{Updated: out.Updated}, nil
}

// UnreadCount returns the user's unread message count.
// @Summary Unread message count
// @Description Returns how many unread messages are waiting for the user across all conversations.
// @Tags Message
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} router.successResponse{data=UnreadCountResponse} "Unread count"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/unread/{userId} [get]
func (h *HTTPEndpoint) UnreadCount(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("userId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	out, err := h.uc.UnreadCount(r.Context(), usecase.UnreadCountInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	return UnreadCountResponse{Count: out.Count}, nil
}
