package db

import (
	"context"

	"github.com/servizo/servizo/internal/notification/entity"
)

const getPreferencesQuery = `
SELECT user_id, new_message, priority_message, conversation_started, admin_response,
       push, email, sound, desktop,
       frequency, quiet_hours_enabled, quiet_hours_start, quiet_hours_end, updated_at
FROM notification_preferences
WHERE user_id = $1`

func (s *DB) GetPreferences(ctx context.Context, userID int64) (_ *entity.Preferences, err error) {
	ctx, span := s.startSpan(ctx, "GetPreferences")
	defer func() { s.endSpan(span, err) }()

	var p entity.Preferences
	err = s.conn.QueryRow(ctx, getPreferencesQuery, userID).Scan(
		&p.UserID,
		&p.NewMessage,
		&p.PriorityMessage,
		&p.ConversationStarted,
		&p.AdminResponse,
		&p.Push,
		&p.Email,
		&p.Sound,
		&p.Desktop,
		&p.Frequency,
		&p.QuietHoursEnabled,
		&p.QuietHoursStart,
		&p.QuietHoursEnd,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

const upsertPreferencesQuery = `
INSERT INTO notification_preferences
	(user_id, new_message, priority_message, conversation_started, admin_response,
	 push, email, sound, desktop,
	 frequency, quiet_hours_enabled, quiet_hours_start, quiet_hours_end, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
ON CONFLICT (user_id) DO UPDATE SET
	new_message = EXCLUDED.new_message,
	priority_message = EXCLUDED.priority_message,
	conversation_started = EXCLUDED.conversation_started,
	admin_response = EXCLUDED.admin_response,
	push = EXCLUDED.push,
	email = EXCLUDED.email,
	sound = EXCLUDED.sound,
	desktop = EXCLUDED.desktop,
	frequency = EXCLUDED.frequency,
	quiet_hours_enabled = EXCLUDED.quiet_hours_enabled,
	quiet_hours_start = EXCLUDED.quiet_hours_start,
	quiet_hours_end = EXCLUDED.quiet_hours_end,
	updated_at = now()`

func (s *DB) UpsertPreferences(ctx context.Context, p entity.Preferences) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertPreferences")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, upsertPreferencesQuery,
		p.UserID,
		p.NewMessage,
		p.PriorityMessage,
		p.ConversationStarted,
		p.AdminResponse,
		p.Push,
		p.Email,
		p.Sound,
		p.Desktop,
		p.Frequency,
		p.QuietHoursEnabled,
		p.QuietHoursStart,
		p.QuietHoursEnd,
	)

	return s.mapError(err)
}
