package model

import (
	"errors"
	"time"
)

// Thread is a DM conversation between exactly two users. The pair is stored
// normalized with the lower id in user1_id, and the schema enforces
// uniqueness of the ordered pair, so (a, b) and (b, a) always resolve to the
// same row.
type Thread struct {
	ID      int64 `db:"id" json:"id"`
	User1ID int64 `db:"user1_id" json:"user1_id"`
	User2ID int64 `db:"user2_id" json:"user2_id"`

	// Other is the participant who isn't the viewer, populated on list views.
	Other *UserSummary `json:"other,omitempty"`
}

// Participant reports whether userID is one of the thread's two users.
func (t *Thread) Participant(userID int64) bool {
	return userID == t.User1ID || userID == t.User2ID
}

// OtherUserID returns the participant that isn't userID.
func (t *Thread) OtherUserID(userID int64) int64 {
	if userID == t.User1ID {
		return t.User2ID
	}
	return t.User1ID
}

// NormalizePair orders a thread's user pair with the lower id first.
func NormalizePair(a, b int64) (user1, user2 int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// DM is a single direct message inside a thread.
type DM struct {
	ID        int64     `db:"id" json:"id"`
	ThreadID  int64     `db:"thread_id" json:"thread_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostDMRequest is the JSON body of POST /threads/{id}/dm/add.
type PostDMRequest struct {
	Text string `json:"text" validate:"required"`
}

var (
	ErrThreadNotFound   = errors.New("thread not found")
	ErrNotInThread      = errors.New("not a participant of this thread")
	ErrCannotThreadSelf = errors.New("cannot open a thread with yourself")
	ErrDMTextRequired   = errors.New("dm text is required")
)
