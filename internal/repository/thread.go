package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warbler/internal/model"
)

type threadRepository struct {
	db *sqlx.DB
}

func NewThreadRepository(db *sqlx.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// GetOrCreate resolves the thread for a normalized pair. The insert relies on
// the UNIQUE (user1_id, user2_id) constraint: under concurrent creation one
// request wins the insert and the other falls through to the select, so both
// return the same row.
func (r *threadRepository) GetOrCreate(ctx context.Context, user1ID, user2ID int64) (*model.Thread, error) {
	insert := `
		INSERT INTO threads (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, user1_id, user2_id
	`

	var t model.Thread
	err := r.db.GetContext(ctx, &t, insert, user1ID, user2ID)
	if err == nil {
		return &t, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	// Conflict: the thread already exists, fetch it.
	query := `SELECT id, user1_id, user2_id FROM threads WHERE user1_id = $1 AND user2_id = $2`
	err = r.db.GetContext(ctx, &t, query, user1ID, user2ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	return &t, nil
}

func (r *threadRepository) GetByID(ctx context.Context, id int64) (*model.Thread, error) {
	query := `SELECT id, user1_id, user2_id FROM threads WHERE id = $1`

	var t model.Thread
	err := r.db.GetContext(ctx, &t, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	return &t, nil
}

// ListForUser returns every thread the user participates in, each carrying
// the other participant's summary.
func (r *threadRepository) ListForUser(ctx context.Context, userID int64) ([]model.Thread, error) {
	query := `
		SELECT t.id, t.user1_id, t.user2_id,
		       u.id AS other_id, u.username AS other_username, u.image_url AS other_image_url
		FROM threads t
		JOIN users u ON u.id = CASE WHEN t.user1_id = $1 THEN t.user2_id ELSE t.user1_id END
		WHERE t.user1_id = $1 OR t.user2_id = $1
		ORDER BY t.id DESC
	`

	type threadRow struct {
		model.Thread
		OtherID       int64  `db:"other_id"`
		OtherUsername string `db:"other_username"`
		OtherImageURL string `db:"other_image_url"`
	}

	rows := []threadRow{}
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]model.Thread, len(rows))
	for i, row := range rows {
		t := row.Thread
		t.Other = &model.UserSummary{
			ID:       row.OtherID,
			Username: row.OtherUsername,
			ImageURL: row.OtherImageURL,
		}
		threads[i] = t
	}
	return threads, nil
}

func (r *threadRepository) CreateDM(ctx context.Context, threadID, authorID int64, text string) (*model.DM, error) {
	query := `
		INSERT INTO dms (thread_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, thread_id, author_id, text, created_at
	`

	var dm model.DM
	err := r.db.GetContext(ctx, &dm, query, threadID, authorID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to insert dm: %w", err)
	}

	return &dm, nil
}

// DMs returns the thread's messages in insertion order.
func (r *threadRepository) DMs(ctx context.Context, threadID int64) ([]model.DM, error) {
	query := `
		SELECT id, thread_id, author_id, text, created_at
		FROM dms
		WHERE thread_id = $1
		ORDER BY id ASC
	`

	dms := []model.DM{}
	err := r.db.SelectContext(ctx, &dms, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dms: %w", err)
	}

	return dms, nil
}
