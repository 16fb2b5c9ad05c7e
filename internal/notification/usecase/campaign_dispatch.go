package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/idempotency"
	"go.uber.org/atomic"
)

type CampaignDispatchInput struct {
	CampaignID int64 `validate:"required,gt=0"`

	// MessageChannels and UserFilters optionally override what the campaign
	// record stores.
	MessageChannels []string `validate:"omitempty,dive,oneof=in_app email sms push"`
	UserFilters     *AudiencePreviewInput
}

type CampaignDispatchOutput struct {
	CampaignID int64
	Result     entity.DeliveryResult
}

// CampaignDispatch runs the full bulk fan-out synchronously: audience
// resolution, per (recipient, channel) gate verdicts, bounded-parallel channel
// sends, and the final aggregate. Per-recipient failures fold into counters
// only; the campaign always finishes completed.
func (s *Usecase) CampaignDispatch(ctx context.Context, in CampaignDispatchInput) (*CampaignDispatchOutput, error) {
	ctx, span := s.startSpan(ctx, "CampaignDispatch")
	defer span.End()

	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.UserFilters != nil {
		if err := s.validator.Validate(*in.UserFilters); err != nil {
			return nil, goerror.NewInvalidInput(err)
		}
	}

	campaign, err := s.repoDB.GetCampaign(ctx, in.CampaignID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("campaign not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get campaign", "campaign_id", in.CampaignID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if campaign.Status != entity.CampaignStatusActive {
		return nil, goerror.NewBusiness("campaign is already completed", goerror.CodeConflict)
	}

	channels := campaign.Channels
	if len(in.MessageChannels) > 0 {
		channels = lo.Uniq(lo.Map(in.MessageChannels, func(raw string, _ int) entity.Channel {
			return entity.ChannelFromString(raw)
		}))
	}
	if len(channels) == 0 {
		return nil, goerror.NewInvalidInput(nil, "message_channels", "at least one channel is required")
	}
	if lo.Contains(channels, entity.ChannelEmail) && campaign.Subject == "" {
		return nil, goerror.NewInvalidInput(nil, "subject", "subject is required when the email channel is selected")
	}

	filter := campaign.TargetFilter
	if in.UserFilters != nil {
		filter = in.UserFilters.filter()
	}

	var result entity.DeliveryResult
	err = s.idem.Exec(ctx, "campaign-dispatch:"+strconv.FormatInt(campaign.ID, 10),
		func(ctx context.Context) error {
			var runErr error
			result, runErr = s.runCampaign(ctx, campaign, channels, filter)
			return runErr
		},
		idempotency.WithLockDuration(10*time.Minute),
		idempotency.WithStateTTL(24*time.Hour),
	)
	if err != nil {
		if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
			return nil, goerror.NewBusiness("campaign dispatch already requested", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to dispatch campaign", "campaign_id", campaign.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CampaignDispatchOutput{CampaignID: campaign.ID, Result: result}, nil
}

func (s *Usecase) runCampaign(
	ctx context.Context,
	campaign *entity.BulkCampaign,
	channels []entity.Channel,
	filter entity.AudienceFilter,
) (entity.DeliveryResult, error) {
	recipients, err := s.resolveAudience(ctx, filter)
	if err != nil {
		return entity.DeliveryResult{}, err
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return entity.DeliveryResult{}, err
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		failed    atomic.Int32
	)

	payload := dispatch.Payload{
		Kind:    entity.KindAdminResponse,
		Subject: campaign.Subject,
		Content: campaign.Content,
	}

	for _, rcpt := range recipients {
		wg.Add(1)
		task := func() {
			defer wg.Done()

			prefs := s.loadPreferences(ctx, rcpt.ID)
			now := s.clock.Now()

			for _, ch := range channels {
				switch decide(prefs, payload.Kind, ch, now) {
				case entity.DecisionDeliver:
					if s.dispatcher.Send(ctx, ch, rcpt, payload).Delivered {
						succeeded.Inc()
					} else {
						failed.Inc()
					}
				case entity.DecisionDefer:
					s.enqueueDeferred(ctx, prefs, rcpt.ID, payload.Kind, ch, payload.Subject, payload.Content)
				}
			}
		}

		if err := pool.Submit(task); err != nil {
			task()
		}
	}

	wg.Wait()

	result := entity.DeliveryResult{
		TotalRecipients:      int32(len(recipients)),
		SuccessfulDeliveries: succeeded.Load(),
		FailedDeliveries:     failed.Load(),
	}

	if err := s.repoDB.CompleteCampaign(ctx, campaign.ID, result); err != nil {
		slog.ErrorContext(ctx, "failed to repo complete campaign", "campaign_id", campaign.ID, "error", err)
		return entity.DeliveryResult{}, err
	}

	return result, nil
}
