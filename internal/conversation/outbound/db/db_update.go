package db

import (
	"context"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

const updateConversationStatusQuery = `
UPDATE conversations SET status = $2, updated_at = now() WHERE id = $1`

func (s *DB) UpdateConversationStatus(ctx context.Context, id int64, status entity.Status) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateConversationStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateConversationStatusQuery, id, status)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const markMessagesReadQuery = `
UPDATE messages
SET is_read = TRUE, read_at = now()
WHERE conversation_id = $1 AND recipient_id = $2 AND is_read = FALSE`

func (s *DB) MarkMessagesRead(ctx context.Context, conversationID, viewerID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "MarkMessagesRead")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markMessagesReadQuery, conversationID, viewerID)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
