package service

import (
	"context"
	"log"
	"unicode/utf8"

	"warbler/internal/cache"
	"warbler/internal/model"
	"warbler/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
	feedCache   cache.FeedCache
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	followRepo repository.FollowRepository,
	feedCache cache.FeedCache,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
		feedCache:   feedCache,
	}
}

// Post creates a message for authorID. The length limit is checked here so a
// long text never reaches the database, and the row's timestamp is assigned
// by the database at insert time. The new message is pushed synchronously
// into every already-warm feed cache that should see it.
func (s *MessageService) Post(ctx context.Context, authorID int64, text string) (*model.Message, error) {
	if utf8.RuneCountInString(text) > model.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}

	msg, err := s.messageRepo.Create(ctx, authorID, text)
	if err != nil {
		return nil, err
	}

	s.fanOut(ctx, msg, false)

	return msg, nil
}

// Delete removes a message. Only the author may delete; anyone else gets
// model.ErrNotMessageOwner.
func (s *MessageService) Delete(ctx context.Context, messageID, actorID int64) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if err := s.messageRepo.Delete(ctx, messageID, actorID); err != nil {
		return err
	}

	s.fanOut(ctx, msg, true)

	return nil
}

// Get retrieves a single message with its author summary.
func (s *MessageService) Get(ctx context.Context, messageID int64) (*model.Message, error) {
	return s.messageRepo.GetByID(ctx, messageID)
}

// ListByUser returns a user's own messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID int64) ([]model.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID)
}

// FeedFor returns the newest messages authored by userID and everyone they
// follow, capped at limit (at most model.FeedLimit). Reads go through the
// Redis cache when it's warm; a miss falls back to Postgres and warms the
// cache for the next read. Hydration via GetByIDs silently drops ids whose
// rows were deleted since caching.
func (s *MessageService) FeedFor(ctx context.Context, userID int64, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > model.FeedLimit {
		limit = model.FeedLimit
	}

	if s.feedCache != nil {
		exists, err := s.feedCache.Exists(ctx, userID)
		if err != nil {
			log.Printf("[MessageService] feed cache check failed: user=%d err=%v", userID, err)
		} else if exists {
			ids, err := s.feedCache.GetFeed(ctx, userID, limit)
			if err == nil {
				return s.messageRepo.GetByIDs(ctx, ids)
			}
			log.Printf("[MessageService] feed cache read failed: user=%d err=%v", userID, err)
		}
	}

	followeeIDs, err := s.followRepo.GetFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	sourceIDs := append(followeeIDs, userID)

	messages, err := s.messageRepo.Feed(ctx, sourceIDs, limit)
	if err != nil {
		return nil, err
	}

	if s.feedCache != nil {
		scores := make([]cache.MessageScore, len(messages))
		for i, m := range messages {
			scores[i] = cache.MessageScore{MessageID: m.ID, Timestamp: m.CreatedAt.Unix()}
		}
		if err := s.feedCache.Warm(ctx, userID, scores); err != nil {
			log.Printf("[MessageService] feed cache warm failed: user=%d err=%v", userID, err)
		}
	}

	return messages, nil
}

// fanOut applies a post or delete to the author's and their followers' feed
// caches, inline in the mutating request. Cache failures are logged and
// swallowed; the database remains the source of truth.
func (s *MessageService) fanOut(ctx context.Context, msg *model.Message, remove bool) {
	if s.feedCache == nil {
		return
	}

	followerIDs, err := s.followRepo.GetFollowerIDs(ctx, msg.UserID)
	if err != nil {
		log.Printf("[MessageService] fan-out follower lookup failed: author=%d err=%v", msg.UserID, err)
		return
	}
	targets := append(followerIDs, msg.UserID)

	for _, target := range targets {
		if remove {
			if err := s.feedCache.RemoveMessage(ctx, target, msg.ID); err != nil {
				log.Printf("[MessageService] fan-out remove failed: user=%d msg=%d err=%v", target, msg.ID, err)
			}
			continue
		}

		// Only touch caches that already exist; cold feeds warm on read.
		exists, err := s.feedCache.Exists(ctx, target)
		if err != nil || !exists {
			continue
		}
		if err := s.feedCache.AddMessage(ctx, target, msg.ID, msg.CreatedAt.Unix()); err != nil {
			log.Printf("[MessageService] fan-out add failed: user=%d msg=%d err=%v", target, msg.ID, err)
		}
	}
}
