package model

import (
	"errors"
	"time"
)

// Default profile images applied when signup omits them.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a user in the system
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	ImageURL       string    `db:"image_url" json:"image_url"`
	HeaderImageURL string    `db:"header_image_url" json:"header_image_url"`
	Bio            *string   `db:"bio" json:"bio"`
	Location       *string   `db:"location" json:"location"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the lightweight user representation embedded in lists
// (followers, following, message authors, thread participants).
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	ImageURL string `db:"image_url" json:"image_url"`
}

// SignupRequest represents the data needed to create a new account.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	ImageURL string `json:"image_url" validate:"omitempty,max=255"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries a profile edit. Password is the user's current
// password and must verify before any field is changed.
type UpdateProfileRequest struct {
	Username       string  `json:"username" validate:"required,max=30"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required"`
	ImageURL       string  `json:"image_url" validate:"omitempty,max=255"`
	HeaderImageURL string  `json:"header_image_url" validate:"omitempty,max=255"`
	Bio            *string `json:"bio"`
	Location       *string `json:"location"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already taken")

	// ErrEmailExists is returned when attempting to create a user with a taken email
	ErrEmailExists = errors.New("email already taken")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	// Deliberately covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrFieldBlank is returned when a required field is empty or whitespace,
	// which tag validation alone does not catch.
	ErrFieldBlank = errors.New("required field is blank")
)
