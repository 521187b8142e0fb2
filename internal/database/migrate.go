package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the full table layout. Every dependent row is removed through
// ON DELETE CASCADE, so deleting a user takes their messages, reactions,
// follow edges, threads and dms with it. The unique constraint on the
// normalized thread pair closes the duplicate-thread race at the storage
// layer: concurrent creators race on the same (user1_id, user2_id) row.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               BIGSERIAL PRIMARY KEY,
		email            TEXT NOT NULL UNIQUE,
		username         TEXT NOT NULL UNIQUE,
		password_hashed  TEXT NOT NULL,
		image_url        TEXT NOT NULL DEFAULT '/static/images/default-pic.png',
		header_image_url TEXT NOT NULL DEFAULT '/static/images/warbler-hero.jpg',
		bio              TEXT,
		location         TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		follower_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		followee_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (follower_id, followee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text       VARCHAR(140) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_user_created
		ON messages (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reactions (
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message_id    BIGINT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
		reaction_type TEXT NOT NULL,
		PRIMARY KEY (user_id, message_id, reaction_type)
	)`,
	`CREATE TABLE IF NOT EXISTS threads (
		id       BIGSERIAL PRIMARY KEY,
		user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE (user1_id, user2_id),
		CHECK (user1_id < user2_id)
	)`,
	`CREATE TABLE IF NOT EXISTS dms (
		id         BIGSERIAL PRIMARY KEY,
		thread_id  BIGINT NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
		author_id  BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema. Statements are idempotent so this runs on
// every startup.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
