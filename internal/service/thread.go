package service

import (
	"context"
	"strings"

	"warbler/internal/model"
	"warbler/internal/repository"
)

type ThreadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

func NewThreadService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository) *ThreadService {
	return &ThreadService{
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

// GetOrCreate resolves the DM thread between the acting user and otherID,
// creating it if absent. The pair is normalized (lower id first) before it
// touches storage, so GetOrCreate(a, b) and GetOrCreate(b, a) return the
// same thread.
func (s *ThreadService) GetOrCreate(ctx context.Context, actorID, otherID int64) (*model.Thread, error) {
	if actorID == otherID {
		return nil, model.ErrCannotThreadSelf
	}

	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	user1, user2 := model.NormalizePair(actorID, otherID)
	return s.threadRepo.GetOrCreate(ctx, user1, user2)
}

// Get returns a thread the acting user participates in.
func (s *ThreadService) Get(ctx context.Context, threadID, actorID int64) (*model.Thread, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(actorID) {
		return nil, model.ErrNotInThread
	}
	return thread, nil
}

// ListFor returns every thread the user participates in, with the other
// participant's summary attached.
func (s *ThreadService) ListFor(ctx context.Context, userID int64) ([]model.Thread, error) {
	return s.threadRepo.ListForUser(ctx, userID)
}

// PostDM appends a message to a thread on behalf of the acting user, who
// must be a participant.
func (s *ThreadService) PostDM(ctx context.Context, threadID, authorID int64, text string) (*model.DM, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.ErrDMTextRequired
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(authorID) {
		return nil, model.ErrNotInThread
	}

	return s.threadRepo.CreateDM(ctx, threadID, authorID, text)
}

// MessagesOf returns a thread's messages in insertion order, visible only to
// participants.
func (s *ThreadService) MessagesOf(ctx context.Context, threadID, actorID int64) ([]model.DM, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.Participant(actorID) {
		return nil, model.ErrNotInThread
	}

	return s.threadRepo.DMs(ctx, threadID)
}
