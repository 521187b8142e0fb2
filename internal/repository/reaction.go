package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warbler/internal/model"
)

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts a reaction row. The composite primary key over
// (user_id, message_id, reaction_type) rejects a repeated type from the same
// user on the same message.
func (r *reactionRepository) Create(ctx context.Context, reaction model.Reaction) error {
	query := `
		INSERT INTO reactions (user_id, message_id, reaction_type)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, reaction.UserID, reaction.MessageID, reaction.ReactionType)
	if err != nil {
		if isUniqueViolation(err, "reactions_pkey") {
			return model.ErrAlreadyReacted
		}
		return fmt.Errorf("failed to create reaction: %w", err)
	}

	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, reaction model.Reaction) error {
	query := `
		DELETE FROM reactions
		WHERE user_id = $1 AND message_id = $2 AND reaction_type = $3
	`
	result, err := r.db.ExecContext(ctx, query, reaction.UserID, reaction.MessageID, reaction.ReactionType)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrReactionNotFound
	}

	return nil
}

func (r *reactionRepository) MessageIDsOfType(ctx context.Context, userID int64, reactionType string) ([]int64, error) {
	query := `
		SELECT message_id FROM reactions
		WHERE user_id = $1 AND reaction_type = $2
	`

	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, query, userID, reactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to get reacted message ids: %w", err)
	}

	return ids, nil
}

// ReactedMessages returns the distinct messages the user has reacted to,
// newest first.
func (r *reactionRepository) ReactedMessages(ctx context.Context, userID int64) ([]model.Message, error) {
	query := `
		SELECT DISTINCT m.id, m.user_id, m.text, m.created_at,
		       u.username AS author_username, u.image_url AS author_image_url
		FROM reactions re
		JOIN messages m ON m.id = re.message_id
		JOIN users u ON u.id = m.user_id
		WHERE re.user_id = $1
		ORDER BY m.created_at DESC, m.id DESC
	`

	rows := []messageRow{}
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reacted messages: %w", err)
	}

	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toMessage()
	}
	return messages, nil
}
