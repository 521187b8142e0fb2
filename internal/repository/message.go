package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"warbler/internal/model"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

// messageRow carries a message joined with its author summary.
type messageRow struct {
	model.Message
	AuthorUsername string `db:"author_username"`
	AuthorImageURL string `db:"author_image_url"`
}

func (row messageRow) toMessage() model.Message {
	msg := row.Message
	msg.Author = &model.UserSummary{
		ID:       msg.UserID,
		Username: row.AuthorUsername,
		ImageURL: row.AuthorImageURL,
	}
	return msg
}

// Create inserts a message. The row timestamp comes from the database's
// now(), so every insert gets its own creation time.
func (r *messageRepository) Create(ctx context.Context, userID int64, text string) (*model.Message, error) {
	query := `
		INSERT INTO messages (user_id, text)
		VALUES ($1, $2)
		RETURNING id, user_id, text, created_at
	`

	var msg model.Message
	err := r.db.GetContext(ctx, &msg, query, userID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	return &msg, nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	query := `
		SELECT m.id, m.user_id, m.text, m.created_at,
		       u.username AS author_username, u.image_url AS author_image_url
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1
	`

	var row messageRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	msg := row.toMessage()
	return &msg, nil
}

// GetByIDs fetches messages for a set of ids, newest first. Used to hydrate
// the feed cache.
func (r *messageRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Message, error) {
	if len(ids) == 0 {
		return []model.Message{}, nil
	}

	query := `
		SELECT m.id, m.user_id, m.text, m.created_at,
		       u.username AS author_username, u.image_url AS author_image_url
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = ANY($1)
		ORDER BY m.created_at DESC, m.id DESC
	`

	rows := []messageRow{}
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by ids: %w", err)
	}

	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toMessage()
	}
	return messages, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID int64) ([]model.Message, error) {
	query := `
		SELECT m.id, m.user_id, m.text, m.created_at,
		       u.username AS author_username, u.image_url AS author_image_url
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`

	rows := []messageRow{}
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toMessage()
	}
	return messages, nil
}

// Delete hard-deletes a message owned by userID. Reactions on it go via
// ON DELETE CASCADE.
func (r *messageRepository) Delete(ctx context.Context, messageID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id = $1 AND user_id = $2`, messageID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM messages WHERE id = $1)`, messageID)
		if exists {
			return model.ErrNotMessageOwner
		}
		return model.ErrMessageNotFound
	}

	return nil
}

// Feed returns the newest messages authored by any of userIDs, capped at limit.
func (r *messageRepository) Feed(ctx context.Context, userIDs []int64, limit int) ([]model.Message, error) {
	if len(userIDs) == 0 {
		return []model.Message{}, nil
	}

	query := `
		SELECT m.id, m.user_id, m.text, m.created_at,
		       u.username AS author_username, u.image_url AS author_image_url
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = ANY($1)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2
	`

	rows := []messageRow{}
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toMessage()
	}
	return messages, nil
}
