package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"warbler/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (email, username, password_hashed, image_url, header_image_url, bio, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Email,
		u.Username,
		u.PasswordHashed,
		u.ImageURL,
		u.HeaderImageURL,
		u.Bio,
		u.Location,
	)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return translateUserUniqueErr(err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, email, username, password_hashed, image_url, header_image_url, bio, location, created_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, email, username, password_hashed, image_url, header_image_url, bio, location, created_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// Search returns all users when q is empty, otherwise a username substring match.
func (r *userRepository) Search(ctx context.Context, q string) ([]model.UserSummary, error) {
	query := `
		SELECT id, username, image_url
		FROM users
		WHERE $1 = '' OR username ILIKE '%' || $1 || '%'
		ORDER BY username
	`

	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// Update persists profile fields of an existing user.
func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET email = $1, username = $2, image_url = $3, header_image_url = $4, bio = $5, location = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.Username,
		u.ImageURL,
		u.HeaderImageURL,
		u.Bio,
		u.Location,
		u.ID,
	)
	if err != nil {
		return translateUserUniqueErr(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// Delete removes the user row. Messages, reactions, follow edges, threads
// and dms go with it through ON DELETE CASCADE.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// translateUserUniqueErr maps unique violations on the users table to the
// typed sentinels callers branch on.
func translateUserUniqueErr(err error) error {
	switch {
	case isUniqueViolation(err, "users_username_key"):
		return model.ErrUsernameExists
	case isUniqueViolation(err, "users_email_key"):
		return model.ErrEmailExists
	default:
		return fmt.Errorf("failed to write user: %w", err)
	}
}
