package service

import (
	"context"
	"slices"

	"warbler/internal/model"
	"warbler/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
	}
}

// React attaches a typed reaction from userID to a message. A repeated
// (user, message, type) triple comes back as model.ErrAlreadyReacted; the
// same user may still react to the message with a different type.
func (s *ReactionService) React(ctx context.Context, userID, messageID int64, reactionType string) error {
	if !slices.Contains(model.ReactionTypes, reactionType) {
		return model.ErrInvalidReactionType
	}

	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		return err
	}

	return s.reactionRepo.Create(ctx, model.Reaction{
		UserID:       userID,
		MessageID:    messageID,
		ReactionType: reactionType,
	})
}

// Unreact removes the matching reaction row if present.
func (s *ReactionService) Unreact(ctx context.Context, userID, messageID int64, reactionType string) error {
	if !slices.Contains(model.ReactionTypes, reactionType) {
		return model.ErrInvalidReactionType
	}

	return s.reactionRepo.Delete(ctx, model.Reaction{
		UserID:       userID,
		MessageID:    messageID,
		ReactionType: reactionType,
	})
}

// MessageIDsOfType returns the ids of messages userID reacted to with the
// given type.
func (s *ReactionService) MessageIDsOfType(ctx context.Context, userID int64, reactionType string) ([]int64, error) {
	if !slices.Contains(model.ReactionTypes, reactionType) {
		return nil, model.ErrInvalidReactionType
	}
	return s.reactionRepo.MessageIDsOfType(ctx, userID, reactionType)
}

// ReactedMessages returns the distinct messages userID has reacted to.
func (s *ReactionService) ReactedMessages(ctx context.Context, userID int64) ([]model.Message, error) {
	return s.reactionRepo.ReactedMessages(ctx, userID)
}
