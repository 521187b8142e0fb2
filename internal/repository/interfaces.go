package repository

import (
	"context"

	"warbler/internal/model"
)

type UserRepository interface {
	// Create inserts the user and fills in ID/CreatedAt. Duplicate username
	// or email surface as model.ErrUsernameExists / model.ErrEmailExists.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Search returns all users when q is empty, otherwise users whose
	// username contains q.
	Search(ctx context.Context, q string) ([]model.UserSummary, error)
	// Update persists profile fields. Uniqueness violations are translated
	// the same way as Create.
	Update(ctx context.Context, user *model.User) error
	// Delete removes the user row; dependent rows go via ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}

type FollowRepository interface {
	// Create inserts a follow edge. Returns false when the edge already
	// existed (resolved by the composite primary key, not an error).
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	// Delete removes the edge, returning model.ErrNotFollowing when absent.
	Delete(ctx context.Context, followerID, followeeID int64) error
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	GetFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error)
	GetFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error)
	GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type MessageRepository interface {
	// Create inserts a message; the row timestamp is assigned by the
	// database at insert time.
	Create(ctx context.Context, userID int64, text string) (*model.Message, error)
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Message, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Message, error)
	// Delete removes the message if userID owns it. Returns
	// model.ErrNotMessageOwner when the message exists under another user
	// and model.ErrMessageNotFound when it doesn't exist at all.
	Delete(ctx context.Context, messageID, userID int64) error
	// Feed returns the newest messages authored by any of userIDs,
	// timestamp-descending, capped at limit.
	Feed(ctx context.Context, userIDs []int64, limit int) ([]model.Message, error)
}

type ReactionRepository interface {
	// Create inserts a reaction row; a duplicate (user, message, type)
	// triple returns model.ErrAlreadyReacted.
	Create(ctx context.Context, reaction model.Reaction) error
	// Delete removes the matching row, model.ErrReactionNotFound when absent.
	Delete(ctx context.Context, reaction model.Reaction) error
	MessageIDsOfType(ctx context.Context, userID int64, reactionType string) ([]int64, error)
	// ReactedMessages returns the distinct messages the user has reacted to.
	ReactedMessages(ctx context.Context, userID int64) ([]model.Message, error)
}

type ThreadRepository interface {
	// GetOrCreate resolves the thread for a normalized user pair, creating
	// it if absent. The unique constraint on (user1_id, user2_id) makes
	// concurrent calls converge on one row.
	GetOrCreate(ctx context.Context, user1ID, user2ID int64) (*model.Thread, error)
	GetByID(ctx context.Context, id int64) (*model.Thread, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Thread, error)
	CreateDM(ctx context.Context, threadID, authorID int64, text string) (*model.DM, error)
	// DMs returns every message of the thread in insertion order.
	DMs(ctx context.Context, threadID int64) ([]model.DM, error)
}
