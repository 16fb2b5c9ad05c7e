package db

import (
	"context"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
)

const createDeferredQuery = `
INSERT INTO deferred_notifications (id, user_id, kind, channel, subject, content, deferred_until)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (s *DB) CreateDeferred(ctx context.Context, data entity.CreateDeferred) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDeferred")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createDeferredQuery,
		data.ID,
		data.UserID,
		data.Kind,
		data.Channel,
		data.Subject,
		data.Content,
		data.DeferredUntil,
	)

	return s.mapError(err)
}

const listDueDeferredQuery = `
SELECT id, user_id, kind, channel, subject, content, deferred_until, flushed_at, created_at
FROM deferred_notifications
WHERE flushed_at IS NULL AND deferred_until <= $1
ORDER BY user_id, channel, created_at`

func (s *DB) ListDueDeferred(ctx context.Context, due time.Time) (_ []entity.DeferredNotification, err error) {
	ctx, span := s.startSpan(ctx, "ListDueDeferred")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listDueDeferredQuery, due)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.DeferredNotification, 0)
	for rows.Next() {
		var d entity.DeferredNotification
		if err = rows.Scan(&d.ID, &d.UserID, &d.Kind, &d.Channel, &d.Subject, &d.Content,
			&d.DeferredUntil, &d.FlushedAt, &d.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, d)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

const markDeferredFlushedQuery = `
UPDATE deferred_notifications SET flushed_at = now() WHERE id = ANY($1) AND flushed_at IS NULL`

func (s *DB) MarkDeferredFlushed(ctx context.Context, ids []int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkDeferredFlushed")
	defer func() { s.endSpan(span, err) }()

	if len(ids) == 0 {
		return nil
	}

	_, err = s.conn.Exec(ctx, markDeferredFlushedQuery, ids)

	return s.mapError(err)
}
