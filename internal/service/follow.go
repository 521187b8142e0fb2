package service

import (
	"context"
	"log"

	"warbler/internal/cache"
	"warbler/internal/model"
	"warbler/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	feedCache  cache.FeedCache
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	feedCache cache.FeedCache,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		feedCache:  feedCache,
	}
}

// Follow inserts a directed edge from follower to followee. Self-follows are
// rejected here rather than by the schema; a duplicate edge resolves to
// model.ErrAlreadyFollowing via the composite primary key.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	inserted, err := s.followRepo.Create(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyFollowing
	}

	// The follower's feed now has a new source; drop the cached feed and let
	// the next read rebuild it.
	s.invalidateFeed(ctx, followerID)

	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if err := s.followRepo.Delete(ctx, followerID, followeeID); err != nil {
		return err
	}

	s.invalidateFeed(ctx, followerID)

	return nil
}

// IsFollowing reports whether a follows b.
func (s *FollowService) IsFollowing(ctx context.Context, a, b int64) (bool, error) {
	return s.followRepo.Exists(ctx, a, b)
}

// IsFollowedBy reports whether a is followed by b.
func (s *FollowService) IsFollowedBy(ctx context.Context, a, b int64) (bool, error) {
	return s.followRepo.Exists(ctx, b, a)
}

func (s *FollowService) GetFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID)
}

func (s *FollowService) GetFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID)
}

func (s *FollowService) invalidateFeed(ctx context.Context, userID int64) {
	if s.feedCache == nil {
		return
	}
	if err := s.feedCache.Invalidate(ctx, userID); err != nil {
		log.Printf("[FollowService] feed cache invalidate failed: user=%d err=%v", userID, err)
	}
}
