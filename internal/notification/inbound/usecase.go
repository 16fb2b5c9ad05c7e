package inbound

import (
	"context"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/notification/usecase"
)

type ucConsumer interface {
	ConsumeMessageCreated(ctx context.Context, in usecase.ConsumeMessageCreatedInput) error
	ConsumeConversationStarted(ctx context.Context, in usecase.ConsumeConversationStartedInput) error
}

type uc interface {
	ucConsumer

	PreferencesGet(ctx context.Context, in usecase.PreferencesGetInput) (*entity.Preferences, error)
	PreferencesUpdate(ctx context.Context, in usecase.PreferencesUpdateInput) (*entity.Preferences, error)
	PreferencesReset(ctx context.Context, in usecase.PreferencesResetInput) (*entity.Preferences, error)

	AudiencePreview(ctx context.Context, in usecase.AudiencePreviewInput) ([]entity.AudienceUser, error)
	CampaignCreate(ctx context.Context, in usecase.CampaignCreateInput) (*entity.BulkCampaign, error)
	CampaignDispatch(ctx context.Context, in usecase.CampaignDispatchInput) (*usecase.CampaignDispatchOutput, error)

	InboxList(ctx context.Context, in usecase.InboxListInput) ([]entity.Notification, error)
	InboxMarkRead(ctx context.Context, in usecase.InboxMarkReadInput) error
	InboxMarkAllRead(ctx context.Context) error
	InboxUnreadCount(ctx context.Context) (*usecase.InboxUnreadCountOutput, error)
}
