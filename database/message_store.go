package database

import (
	"context"
	"database/sql"
	"fmt"

	"commerce-service/models"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) SaveMessage(ctx context.Context, msg *models.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender_id, recipient_id, content, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.ID, msg.SenderID, msg.RecipientID, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListConversation 双方往来消息，按时间正序。
func (s *MessageStore) ListConversation(ctx context.Context, userA, userB int) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, content, created_at
		 FROM messages
		 WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
		 ORDER BY created_at ASC`,
		userA, userB, userB, userA)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
