package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SubscriberRepository handles subscriber persistence
type SubscriberRepository struct {
	db *sql.DB
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Register adds a chat as subscriber. Registering twice is a no-op.
func (r *SubscriberRepository) Register(ctx context.Context, chatID int64) error {
	query := `INSERT INTO subscribers (chat_id, created_at) VALUES (?, ?) ON CONFLICT(chat_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, chatID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to register subscriber: %w", err)
	}
	return nil
}

// ChatIDs returns every subscribed chat
func (r *SubscriberRepository) ChatIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id FROM subscribers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
