package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type CampaignCreateInput struct {
	CampaignName string   `validate:"required,min=1,max=200"`
	Channels     []string `validate:"required,min=1,dive,oneof=in_app email sms push"`
	Subject      string   `validate:"omitempty,max=200"`
	Content      string   `validate:"required,min=1"`
	ScheduledFor *time.Time
	Filter       AudiencePreviewInput
}

// CampaignCreate validates and persists a bulk campaign with status active.
// Nothing is persisted when validation fails.
func (s *Usecase) CampaignCreate(ctx context.Context, in CampaignCreateInput) (*entity.BulkCampaign, error) {
	ctx, span := s.startSpan(ctx, "CampaignCreate")
	defer span.End()

	clm, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if err := s.validator.Validate(in.Filter); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	channels := lo.Uniq(lo.Map(in.Channels, func(raw string, _ int) entity.Channel {
		return entity.ChannelFromString(raw)
	}))

	if lo.Contains(channels, entity.ChannelEmail) && in.Subject == "" {
		return nil, goerror.NewInvalidInput(nil, "subject", "subject is required when the email channel is selected")
	}

	data := entity.CreateCampaign{
		ID:           s.uid.Generate(),
		CampaignName: in.CampaignName,
		Channels:     channels,
		Subject:      in.Subject,
		Content:      in.Content,
		TargetFilter: in.Filter.filter(),
		ScheduledFor: in.ScheduledFor,
		CreatedBy:    clm.UserID,
	}

	if err := s.repoDB.CreateCampaign(ctx, data); err != nil {
		slog.ErrorContext(ctx, "failed to repo create campaign", "campaign_name", in.CampaignName, "error", err)
		return nil, goerror.NewServer(err)
	}

	campaign, err := s.repoDB.GetCampaign(ctx, data.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get campaign", "campaign_id", data.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return campaign, nil
}
