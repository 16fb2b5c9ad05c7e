package inbound

import (
	"github.com/servizo/servizo/internal/notification/usecase"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// GetPreferences returns a user's notification preferences.
// @Summary Get notification preferences
// @Description Returns the stored preferences, or defaults if the user never saved any.
// @Tags Preference
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} router.successResponse{data=PreferencesResponse} "Preferences"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notification-preferences/{userId} [get]
func (h *HTTPEndpoint) GetPreferences(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("userId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	prefs, err := h.uc.PreferencesGet(r.Context(), usecase.PreferencesGetInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	return toPreferencesResponse(prefs), nil
}

// UpdatePreferences applies a partial preferences patch.
// @Summary Update notification preferences
// @Description Merges the given fields over the stored (or default) preferences.
// @Tags Preference
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body UpdatePreferencesRequest true "Partial preferences"
// @Success 200 {object} router.successResponse{data=PreferencesResponse} "Merged preferences"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notification-preferences/{userId} [put]
func (h *HTTPEndpoint) UpdatePreferences(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("userId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req UpdatePreferencesRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	prefs, err := h.uc.PreferencesUpdate(r.Context(), usecase.PreferencesUpdateInput{
		UserID:              userID,
		NewMessage:          req.NewMessage,
		PriorityMessage:     req.PriorityMessage,
		ConversationStarted: req.ConversationStarted,
		AdminResponse:       req.AdminResponse,
		Push:                req.Push,
		Email:               req.Email,
		Sound:               req.Sound,
		Desktop:             req.Desktop,
		Frequency:           req.Frequency,
		QuietHoursEnabled:   req.QuietHoursEnabled,
		QuietHoursStart:     req.QuietHoursStart,
		QuietHoursEnd:       req.QuietHoursEnd,
	})
	if err != nil {
		return nil, err
	}

	return toPreferencesResponse(prefs), nil
}

// ResetPreferences restores system defaults.
// @Summary Reset notification preferences
// @Description Overwrites all preference fields with system defaults.
// @Tags Preference
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} router.successResponse{data=PreferencesResponse} "Default preferences"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notification-preferences/{userId}/reset [post]
func (h *HTTPEndpoint) ResetPreferences(r *router.Request) (any, error) {
	userID, err := r.GetParamInt64("userId")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	prefs, err := h.uc.PreferencesReset(r.Context(), usecase.PreferencesResetInput{UserID: userID})
	if err != nil {
		return nil, err
	}

	return toPreferencesResponse(prefs), nil
}

// CreateCampaign persists a bulk campaign definition.
// @Summary Create bulk campaign
// @Description Validates and persists a campaign with status active.
// @Tags Campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCampaignRequest true "Campaign definition"
// @Success 200 {object} router.successResponse{data=CampaignResponse} "Created campaign"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bulk-campaigns [post]
func (h *HTTPEndpoint) CreateCampaign(r *router.Request) (any, error) {
	var req CreateCampaignRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	campaign, err := h.uc.CampaignCreate(r.Context(), usecase.CampaignCreateInput{
		CampaignName: req.CampaignName,
		Channels:     req.Channels,
		Subject:      req.Subject,
		Content:      req.Content,
		ScheduledFor: req.ScheduledFor,
		Filter:       req.TargetFilter.toInput(),
	})
	if err != nil {
		return nil, err
	}

	return toCampaignResponse(campaign), nil
}

// SendBulkMessages dispatches a campaign and returns the aggregate result.
// @Summary Dispatch bulk campaign
// @Description Resolves the audience, fans out over the selected channels and returns aggregate delivery counts.
// @Tags Campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendBulkMessagesRequest true "Dispatch request"
// @Success 200 {object} router.successResponse{data=DeliveryResultResponse} "Aggregate delivery result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Campaign not found"
// @Failure 409 {object} router.errorResponse "Already dispatched"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/send-bulk-messages [post]
func (h *HTTPEndpoint) SendBulkMessages(r *router.Request) (any, error) {
	var req SendBulkMessagesRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in := usecase.CampaignDispatchInput{
		CampaignID:      req.CampaignID,
		MessageChannels: req.MessageChannels,
	}
	if req.UserFilters != nil {
		filters := req.UserFilters.toInput()
		in.UserFilters = &filters
	}

	out, err := h.uc.CampaignDispatch(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return DeliveryResultResponse{
		CampaignID:           out.CampaignID,
		TotalRecipients:      out.Result.TotalRecipients,
		SuccessfulDeliveries: out.Result.SuccessfulDeliveries,
		FailedDeliveries:     out.Result.FailedDeliveries,
	}, nil
}

// PreviewAudience returns the users a filter currently matches.
// @Summary Preview audience
// @Description Evaluates an audience filter and returns matching users.
// @Tags Campaign
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AudienceFilterRequest true "Audience filter"
// @Success 200 {object} router.successResponse{data=AudiencePreviewResponse} "Matching users"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/users/filter [post]
func (h *HTTPEndpoint) PreviewAudience(r *router.Request) (any, error) {
	var req AudienceFilterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	users, err := h.uc.AudiencePreview(r.Context(), req.toInput())
	if err != nil {
		return nil, err
	}

	resp := make([]AudienceUserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, AudienceUserResponse{
			ID:         u.ID,
			FullName:   u.FullName,
			Role:       u.Role,
			District:   u.District,
			State:      u.State,
			IsVerified: u.IsVerified,
			IsActive:   u.IsActive,
		})
	}

	return AudiencePreviewResponse{Users: resp, Total: len(resp)}, nil
}

// ListInbox lists the caller's in-app notifications.
// @Summary List inbox
// @Description Returns in-app notifications for the authenticated user, newest first.
// @Tags Inbox
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} router.successResponse{data=InboxResponse} "Inbox"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/inbox [get]
func (h *HTTPEndpoint) ListInbox(r *router.Request) (any, error) {
	var in usecase.InboxListInput
	if raw := r.GetQuery("limit"); raw != "" {
		limit, err := r.GetQueryInt32("limit")
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}
		in.Limit = limit
	}
	if raw := r.GetQuery("offset"); raw != "" {
		offset, err := r.GetQueryInt32("offset")
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}
		in.Offset = offset
	}

	items, err := h.uc.InboxList(r.Context(), in)
	if err != nil {
		return nil, err
	}

	resp := make([]InboxItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, InboxItemResponse{
			ID:        item.ID,
			Kind:      item.Kind.String(),
			Title:     item.Title,
			Body:      item.Body,
			Data:      item.Data,
			ReadAt:    item.ReadAt,
			CreatedAt: item.CreatedAt,
		})
	}

	return InboxResponse{Notifications: resp}, nil
}

// InboxUnreadCount returns the caller's unread in-app notification count.
// @Summary Inbox unread count
// @Description Returns how many unread in-app notifications the authenticated user has.
// @Tags Inbox
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=InboxUnreadCountResponse} "Unread count"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/inbox/unread [get]
func (h *HTTPEndpoint) InboxUnreadCount(r *router.Request) (any, error) {
	out, err := h.uc.InboxUnreadCount(r.Context())
	if err != nil {
		return nil, err
	}

	return InboxUnreadCountResponse{Count: out.Count}, nil
}

// MarkInboxRead marks one in-app notification as read.
// @Summary Mark inbox item read
// @Description Marks one in-app notification as read for the authenticated user.
// @Tags Inbox
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/inbox/{id}/read [patch]
func (h *HTTPEndpoint) MarkInboxRead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.InboxMarkRead(r.Context(), usecase.InboxMarkReadInput{NotificationID: id})
}

// MarkAllInboxRead marks all in-app notifications as read.
// @Summary Mark all inbox read
// @Description Marks every unread in-app notification as read for the authenticated user.
// @Tags Inbox
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/notifications/inbox/read-all [put]
func (h *HTTPEndpoint) MarkAllInboxRead(r *router.Request) (any, error) {
	return nil, h.uc.InboxMarkAllRead(r.Context())
}
