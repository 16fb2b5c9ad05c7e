package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/servizo/servizo/internal/conversation/entity"
)

const createConversationQuery = `
INSERT INTO conversations (id, client_id, admin_id, subject, status, priority)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, client_id, admin_id, subject, status, priority, last_message_at, created_at, updated_at`

func (s *DB) CreateConversation(ctx context.Context, data entity.CreateConversation) (_ *entity.Conversation, err error) {
	ctx, span := s.startSpan(ctx, "CreateConversation")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, createConversationQuery,
		data.ID,
		data.ClientID,
		data.AdminID,
		data.Subject,
		entity.StatusActive,
		data.Priority,
	)

	conv, err := scanConversation(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return conv, nil
}

const createMessageQuery = `
INSERT INTO messages (id, conversation_id, sender_id, recipient_id, content, message_type, attachment_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, conversation_id, sender_id, recipient_id, content, message_type, attachment_url, is_read, read_at, created_at`

const bumpLastMessageAtQuery = `
UPDATE conversations SET last_message_at = now(), updated_at = now() WHERE id = $1`

func (s *DB) CreateMessage(ctx context.Context, data entity.CreateMessage) (_ *entity.Message, err error) {
	ctx, span := s.startSpan(ctx, "CreateMessage")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	row := tx.QueryRow(ctx, createMessageQuery,
		data.ID,
		data.ConversationID,
		data.SenderID,
		data.RecipientID,
		data.Content,
		data.MessageType,
		data.AttachmentURL,
	)

	msg, err := scanMessage(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	if _, err = tx.Exec(ctx, bumpLastMessageAtQuery, data.ConversationID); err != nil {
		return nil, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return msg, nil
}
