package db

import (
	"context"

	"github.com/servizo/servizo/internal/notification/entity"
)

const createNotificationQuery = `
INSERT INTO notifications (id, user_id, kind, title, body, data)
VALUES ($1, $2, $3, $4, $5, $6)`

func (s *DB) CreateNotification(ctx context.Context, data entity.CreateNotification) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNotification")
	defer func() { s.endSpan(span, err) }()

	payload := data.Data
	if payload == nil {
		payload = map[string]any{}
	}

	_, err = s.conn.Exec(ctx, createNotificationQuery,
		data.ID,
		data.UserID,
		data.Kind,
		data.Title,
		data.Body,
		payload,
	)

	return s.mapError(err)
}

const listNotificationsQuery = `
SELECT id, user_id, kind, title, body, data, read_at, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

func (s *DB) ListNotifications(ctx context.Context, userID int64, limit, offset int32) (_ []entity.Notification, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listNotificationsQuery, userID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.Data, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, n)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

const markNotificationReadQuery = `
UPDATE notifications
SET read_at = now()
WHERE id = $1 AND user_id = $2 AND read_at IS NULL`

func (s *DB) MarkNotificationRead(ctx context.Context, userID, notificationID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkNotificationRead")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markNotificationReadQuery, notificationID, userID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

const markAllNotificationsReadQuery = `
UPDATE notifications
SET read_at = now()
WHERE user_id = $1 AND read_at IS NULL`

func (s *DB) MarkAllNotificationsRead(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "MarkAllNotificationsRead")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markAllNotificationsReadQuery, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

const countUnreadNotificationsQuery = `
SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`

func (s *DB) CountUnreadNotifications(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadNotifications")
	defer func() { s.endSpan(span, err) }()

	var count int64
	if err = s.conn.QueryRow(ctx, countUnreadNotificationsQuery, userID).Scan(&count); err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
