package inbound

import (
	"github.com/servizo/servizo/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/conversations", end.CreateConversation)
	r.GET("/api/v1/conversations", end.ListConversations)
	r.PUT("/api/v1/conversations/:id/status", end.UpdateConversationStatus)

	r.POST("/api/v1/messages", end.SendMessage)
	r.GET("/api/v1/messages/:conversationId", end.ListMessages)
	r.PUT("/api/v1/messages/read/:conversationId/:userId", end.MarkMessagesRead)

	r.GET("/api/v1/notifications/unread/:userId", end.UnreadCount)
}
