package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/model"
)

// Mock repositories in the function-field style: each test assigns only the
// behavior it cares about, unset methods fall back to a zero-ish default.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	searchFn        func(ctx context.Context, q string) ([]model.UserSummary, error)
	updateFn        func(ctx context.Context, user *model.User) error
	deleteFn        func(ctx context.Context, id int64) error

	createCalls []*model.User
	deleteCalls []int64
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Search(ctx context.Context, q string) ([]model.UserSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return []model.UserSummary{}, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type followEdge struct {
	FollowerID int64
	FolloweeID int64
}

type mockFollowRepository struct {
	createFn         func(ctx context.Context, followerID, followeeID int64) (bool, error)
	deleteFn         func(ctx context.Context, followerID, followeeID int64) error
	existsFn         func(ctx context.Context, followerID, followeeID int64) (bool, error)
	getFollowersFn   func(ctx context.Context, userID int64) ([]model.UserSummary, error)
	getFollowingFn   func(ctx context.Context, userID int64) ([]model.UserSummary, error)
	getFollowerIDsFn func(ctx context.Context, userID int64) ([]int64, error)
	getFolloweeIDsFn func(ctx context.Context, userID int64) ([]int64, error)

	createCalls []followEdge
	deleteCalls []followEdge
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	m.createCalls = append(m.createCalls, followEdge{followerID, followeeID})
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followeeID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	m.deleteCalls = append(m.deleteCalls, followEdge{followerID, followeeID})
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followeeID)
	}
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowers(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	if m.getFollowersFn != nil {
		return m.getFollowersFn(ctx, userID)
	}
	return []model.UserSummary{}, nil
}

func (m *mockFollowRepository) GetFollowing(ctx context.Context, userID int64) ([]model.UserSummary, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, userID)
	}
	return []model.UserSummary{}, nil
}

func (m *mockFollowRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.getFollowerIDsFn != nil {
		return m.getFollowerIDsFn(ctx, userID)
	}
	return []int64{}, nil
}

func (m *mockFollowRepository) GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.getFolloweeIDsFn != nil {
		return m.getFolloweeIDsFn(ctx, userID)
	}
	return []int64{}, nil
}

type mockMessageRepository struct {
	createFn     func(ctx context.Context, userID int64, text string) (*model.Message, error)
	getByIDFn    func(ctx context.Context, id int64) (*model.Message, error)
	getByIDsFn   func(ctx context.Context, ids []int64) ([]model.Message, error)
	listByUserFn func(ctx context.Context, userID int64) ([]model.Message, error)
	deleteFn     func(ctx context.Context, messageID, userID int64) error
	feedFn       func(ctx context.Context, userIDs []int64, limit int) ([]model.Message, error)

	feedCalls [][]int64
}

func (m *mockMessageRepository) Create(ctx context.Context, userID int64, text string) (*model.Message, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, text)
	}
	return &model.Message{ID: 1, UserID: userID, Text: text}, nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrMessageNotFound
}

func (m *mockMessageRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Message, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return []model.Message{}, nil
}

func (m *mockMessageRepository) ListByUser(ctx context.Context, userID int64) ([]model.Message, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.Message{}, nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, messageID, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, messageID, userID)
	}
	return nil
}

func (m *mockMessageRepository) Feed(ctx context.Context, userIDs []int64, limit int) ([]model.Message, error) {
	m.feedCalls = append(m.feedCalls, userIDs)
	if m.feedFn != nil {
		return m.feedFn(ctx, userIDs, limit)
	}
	return []model.Message{}, nil
}

type mockReactionRepository struct {
	createFn           func(ctx context.Context, reaction model.Reaction) error
	deleteFn           func(ctx context.Context, reaction model.Reaction) error
	messageIDsOfTypeFn func(ctx context.Context, userID int64, reactionType string) ([]int64, error)
	reactedMessagesFn  func(ctx context.Context, userID int64) ([]model.Message, error)

	createCalls []model.Reaction
}

func (m *mockReactionRepository) Create(ctx context.Context, reaction model.Reaction) error {
	m.createCalls = append(m.createCalls, reaction)
	if m.createFn != nil {
		return m.createFn(ctx, reaction)
	}
	return nil
}

func (m *mockReactionRepository) Delete(ctx context.Context, reaction model.Reaction) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, reaction)
	}
	return nil
}

func (m *mockReactionRepository) MessageIDsOfType(ctx context.Context, userID int64, reactionType string) ([]int64, error) {
	if m.messageIDsOfTypeFn != nil {
		return m.messageIDsOfTypeFn(ctx, userID, reactionType)
	}
	return []int64{}, nil
}

func (m *mockReactionRepository) ReactedMessages(ctx context.Context, userID int64) ([]model.Message, error) {
	if m.reactedMessagesFn != nil {
		return m.reactedMessagesFn(ctx, userID)
	}
	return []model.Message{}, nil
}

type mockThreadRepository struct {
	getOrCreateFn func(ctx context.Context, user1ID, user2ID int64) (*model.Thread, error)
	getByIDFn     func(ctx context.Context, id int64) (*model.Thread, error)
	listForUserFn func(ctx context.Context, userID int64) ([]model.Thread, error)
	createDMFn    func(ctx context.Context, threadID, authorID int64, text string) (*model.DM, error)
	dmsFn         func(ctx context.Context, threadID int64) ([]model.DM, error)

	getOrCreateCalls []followEdge // reuses the pair struct: {user1, user2}
}

func (m *mockThreadRepository) GetOrCreate(ctx context.Context, user1ID, user2ID int64) (*model.Thread, error) {
	m.getOrCreateCalls = append(m.getOrCreateCalls, followEdge{user1ID, user2ID})
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, user1ID, user2ID)
	}
	return &model.Thread{ID: 1, User1ID: user1ID, User2ID: user2ID}, nil
}

func (m *mockThreadRepository) GetByID(ctx context.Context, id int64) (*model.Thread, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrThreadNotFound
}

func (m *mockThreadRepository) ListForUser(ctx context.Context, userID int64) ([]model.Thread, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return []model.Thread{}, nil
}

func (m *mockThreadRepository) CreateDM(ctx context.Context, threadID, authorID int64, text string) (*model.DM, error) {
	if m.createDMFn != nil {
		return m.createDMFn(ctx, threadID, authorID, text)
	}
	return &model.DM{ID: 1, ThreadID: threadID, AuthorID: authorID, Text: text}, nil
}

func (m *mockThreadRepository) DMs(ctx context.Context, threadID int64) ([]model.DM, error) {
	if m.dmsFn != nil {
		return m.dmsFn(ctx, threadID)
	}
	return []model.DM{}, nil
}

// mockFeedCache records mutations; reads default to an empty, cold cache.
type mockFeedCache struct {
	existsFn  func(ctx context.Context, userID int64) (bool, error)
	getFeedFn func(ctx context.Context, userID int64, limit int) ([]int64, error)

	warmCalls       map[int64][]cache.MessageScore
	addCalls        map[int64][]int64
	removeCalls     map[int64][]int64
	invalidateCalls []int64
}

func newMockFeedCache() *mockFeedCache {
	return &mockFeedCache{
		warmCalls:   make(map[int64][]cache.MessageScore),
		addCalls:    make(map[int64][]int64),
		removeCalls: make(map[int64][]int64),
	}
}

func (m *mockFeedCache) Exists(ctx context.Context, userID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID)
	}
	return false, nil
}

func (m *mockFeedCache) Warm(ctx context.Context, userID int64, messages []cache.MessageScore) error {
	m.warmCalls[userID] = append(m.warmCalls[userID], messages...)
	return nil
}

func (m *mockFeedCache) AddMessage(ctx context.Context, userID, messageID, timestamp int64) error {
	m.addCalls[userID] = append(m.addCalls[userID], messageID)
	return nil
}

func (m *mockFeedCache) RemoveMessage(ctx context.Context, userID, messageID int64) error {
	m.removeCalls[userID] = append(m.removeCalls[userID], messageID)
	return nil
}

func (m *mockFeedCache) GetFeed(ctx context.Context, userID int64, limit int) ([]int64, error) {
	if m.getFeedFn != nil {
		return m.getFeedFn(ctx, userID, limit)
	}
	return []int64{}, nil
}

func (m *mockFeedCache) Invalidate(ctx context.Context, userID int64) error {
	m.invalidateCalls = append(m.invalidateCalls, userID)
	return nil
}
