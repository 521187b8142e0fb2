package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"warbler/internal/cache"
	"warbler/internal/model"
	"warbler/internal/repository"
)

// UserService handles business logic for user accounts
type UserService struct {
	repo      repository.UserRepository
	feedCache cache.FeedCache
}

func NewUserService(repo repository.UserRepository, feedCache cache.FeedCache) *UserService {
	return &UserService{
		repo:      repo,
		feedCache: feedCache,
	}
}

// Signup creates a new account. Duplicate username or email come back as
// model.ErrUsernameExists / model.ErrEmailExists and leave no row behind.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// Whitespace-only fields pass the required tag; reject them here with a
	// typed error so they surface as a client error, not a 500.
	if username == "" {
		return nil, fmt.Errorf("username: %w", model.ErrFieldBlank)
	}
	if email == "" {
		return nil, fmt.Errorf("email: %w", model.ErrFieldBlank)
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password: %w", model.ErrFieldBlank)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	user := &model.User{
		Email:          email,
		Username:       username,
		PasswordHashed: string(hashedPassword),
		ImageURL:       imageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies username and password. The same sentinel comes back
// for an unknown username and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Don't reveal whether the username exists
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Search lists users, optionally filtered by a username substring.
func (s *UserService) Search(ctx context.Context, q string) ([]model.UserSummary, error) {
	return s.repo.Search(ctx, q)
}

// UpdateProfile edits the acting user's profile. The request's password is
// the current password and must verify before anything changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Bio = req.Bio
	user.Location = req.Location

	user.ImageURL = req.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = model.DefaultImageURL
	}
	user.HeaderImageURL = req.HeaderImageURL
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = model.DefaultHeaderImageURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the account. Messages, reactions, follow edges, threads and
// dms are removed by the database cascade.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	// Best effort: drop the deleted user's cached feed. Stale ids left in
	// followers' caches are filtered out during hydration.
	if s.feedCache != nil {
		if err := s.feedCache.Invalidate(ctx, userID); err != nil {
			log.Printf("[UserService] feed cache invalidate failed: user=%d err=%v", userID, err)
		}
	}

	return nil
}
