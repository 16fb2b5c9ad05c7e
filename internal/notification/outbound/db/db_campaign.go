package db

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/servizo/servizo/internal/notification/entity"
)

const createCampaignQuery = `
INSERT INTO bulk_campaigns
	(id, campaign_name, channels, subject, content, target_filter, scheduled_for, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (s *DB) CreateCampaign(ctx context.Context, data entity.CreateCampaign) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCampaign")
	defer func() { s.endSpan(span, err) }()

	filter, err := json.Marshal(data.TargetFilter)
	if err != nil {
		return err
	}

	channels := make([]int16, 0, len(data.Channels))
	for _, ch := range data.Channels {
		channels = append(channels, int16(ch))
	}

	_, err = s.conn.Exec(ctx, createCampaignQuery,
		data.ID,
		data.CampaignName,
		channels,
		data.Subject,
		data.Content,
		filter,
		data.ScheduledFor,
		entity.CampaignStatusActive,
		data.CreatedBy,
	)

	return s.mapError(err)
}

const getCampaignQuery = `
SELECT id, campaign_name, channels, subject, content, target_filter, scheduled_for, status,
       total_recipients, successful_deliveries, failed_deliveries, completed_at,
       created_by, created_at, updated_at
FROM bulk_campaigns
WHERE id = $1`

func (s *DB) GetCampaign(ctx context.Context, id int64) (_ *entity.BulkCampaign, err error) {
	ctx, span := s.startSpan(ctx, "GetCampaign")
	defer func() { s.endSpan(span, err) }()

	c, err := scanCampaign(s.conn.QueryRow(ctx, getCampaignQuery, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return c, nil
}

func scanCampaign(row pgx.Row) (*entity.BulkCampaign, error) {
	var (
		c        entity.BulkCampaign
		channels []int16
		filter   []byte
	)

	err := row.Scan(
		&c.ID,
		&c.CampaignName,
		&channels,
		&c.Subject,
		&c.Content,
		&filter,
		&c.ScheduledFor,
		&c.Status,
		&c.TotalRecipients,
		&c.SuccessfulDeliveries,
		&c.FailedDeliveries,
		&c.CompletedAt,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Channels = make([]entity.Channel, 0, len(channels))
	for _, ch := range channels {
		c.Channels = append(c.Channels, entity.Channel(ch))
	}

	if len(filter) > 0 {
		if err := json.Unmarshal(filter, &c.TargetFilter); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

const completeCampaignQuery = `
UPDATE bulk_campaigns
SET status = $2,
    total_recipients = $3,
    successful_deliveries = $4,
    failed_deliveries = $5,
    completed_at = now(),
    updated_at = now()
WHERE id = $1`

// CompleteCampaign stamps the final aggregate result. Campaigns always land
// on completed, a zero-success run included.
func (s *DB) CompleteCampaign(ctx context.Context, id int64, result entity.DeliveryResult) (err error) {
	ctx, span := s.startSpan(ctx, "CompleteCampaign")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, completeCampaignQuery,
		id,
		entity.CampaignStatusCompleted,
		result.TotalRecipients,
		result.SuccessfulDeliveries,
		result.FailedDeliveries,
	)

	return s.mapError(err)
}
