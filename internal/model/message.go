package model

import (
	"errors"
	"time"
)

// MaxMessageLength mirrors the varchar(140) column; the service validates it
// before the insert so violations never surface as raw database errors.
const MaxMessageLength = 140

// FeedLimit caps how many messages the home feed returns.
const FeedLimit = 100

// Message is an individual short post ("warble").
type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined field, populated on detail and feed views.
	Author *UserSummary `json:"author,omitempty"`
}

// PostMessageRequest is the request body for posting a message.
type PostMessageRequest struct {
	Text string `json:"text" validate:"required,max=140"`
}

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("not the owner of this message")
	ErrMessageTooLong  = errors.New("message text exceeds 140 characters")
)
