package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/servizo/servizo/internal/conversation/entity"
)

func scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.ClientID,
		&conv.AdminID,
		&conv.Subject,
		&conv.Status,
		&conv.Priority,
		&conv.LastMessageAt,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &conv, nil
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var msg entity.Message
	err := row.Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.SenderID,
		&msg.RecipientID,
		&msg.Content,
		&msg.MessageType,
		&msg.AttachmentURL,
		&msg.IsRead,
		&msg.ReadAt,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

const getConversationQuery = `
SELECT id, client_id, admin_id, subject, status, priority, last_message_at, created_at, updated_at
FROM conversations
WHERE id = $1`

func (s *DB) GetConversation(ctx context.Context, id int64) (_ *entity.Conversation, err error) {
	ctx, span := s.startSpan(ctx, "GetConversation")
	defer func() { s.endSpan(span, err) }()

	conv, err := scanConversation(s.conn.QueryRow(ctx, getConversationQuery, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return conv, nil
}

const listConversationsByClientQuery = `
SELECT id, client_id, admin_id, subject, status, priority, last_message_at, created_at, updated_at
FROM conversations
WHERE client_id = $1
ORDER BY COALESCE(last_message_at, created_at) DESC`

const listConversationsByAdminQuery = `
SELECT id, client_id, admin_id, subject, status, priority, last_message_at, created_at, updated_at
FROM conversations
WHERE admin_id = $1 OR client_id = $1
ORDER BY COALESCE(last_message_at, created_at) DESC`

func (s *DB) ListConversationsByParticipant(ctx context.Context, userID int64, asAdmin bool) (_ []entity.Conversation, err error) {
	ctx, span := s.startSpan(ctx, "ListConversationsByParticipant")
	defer func() { s.endSpan(span, err) }()

	query := listConversationsByClientQuery
	if asAdmin {
		query = listConversationsByAdminQuery
	}

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	convs := make([]entity.Conversation, 0)
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		convs = append(convs, *conv)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return convs, nil
}

const listMessagesQuery = `
SELECT id, conversation_id, sender_id, recipient_id, content, message_type, attachment_url, is_read, read_at, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC, id ASC`

func (s *DB) ListMessages(ctx context.Context, conversationID int64) (_ []entity.Message, err error) {
	ctx, span := s.startSpan(ctx, "ListMessages")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listMessagesQuery, conversationID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	msgs := make([]entity.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		msgs = append(msgs, *msg)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return msgs, nil
}

const countUnreadMessagesQuery = `
SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND is_read = FALSE`

func (s *DB) CountUnreadMessages(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadMessages")
	defer func() { s.endSpan(span, err) }()

	var count int64
	if err = s.conn.QueryRow(ctx, countUnreadMessagesQuery, userID).Scan(&count); err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
