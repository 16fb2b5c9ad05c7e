package inbound

import (
	"github.com/servizo/servizo/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/notification-preferences/:userId", end.GetPreferences)
	r.PUT("/api/v1/notification-preferences/:userId", end.UpdatePreferences)
	r.POST("/api/v1/notification-preferences/:userId/reset", end.ResetPreferences)

	adminOnly := router.RequireRoles("admin", "super_admin")
	r.POST("/api/v1/bulk-campaigns", end.CreateCampaign, adminOnly)
	r.POST("/api/v1/send-bulk-messages", end.SendBulkMessages, adminOnly)
	r.POST("/api/v1/users/filter", end.PreviewAudience, adminOnly)

	r.GET("/api/v1/notifications/inbox", end.ListInbox)
	r.GET("/api/v1/notifications/inbox/unread", end.InboxUnreadCount)
	r.PATCH("/api/v1/notifications/inbox/:id/read", end.MarkInboxRead)
	r.PUT("/api/v1/notifications/inbox/read-all", end.MarkAllInboxRead)
}
