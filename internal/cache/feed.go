package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FeedCachePrefix is the key prefix for user feed caches
	FeedCachePrefix = "feed:user:"

	// FeedCacheCap matches the feed's 100-row cap
	FeedCacheCap = 100

	// FeedCacheTTL bounds staleness for caches no mutation ever touches
	FeedCacheTTL = 24 * time.Hour
)

// MessageScore pairs a message id with its timestamp score for caching.
type MessageScore struct {
	MessageID int64
	Timestamp int64 // Unix timestamp
}

// FeedCache holds per-user feeds as Redis sorted sets scored by message
// timestamp. All mutation happens inline in the request that changed state;
// there is no background fan-out.
type FeedCache interface {
	// Exists reports whether the user has a cached feed. The service warms
	// the cache when this returns false.
	Exists(ctx context.Context, userID int64) (bool, error)

	// Warm bulk-inserts messages into a user's feed cache.
	Warm(ctx context.Context, userID int64, messages []MessageScore) error

	// AddMessage pushes one message into a user's feed cache, trimming to
	// the cap and refreshing the TTL.
	AddMessage(ctx context.Context, userID, messageID, timestamp int64) error

	// RemoveMessage drops a message from a user's feed cache.
	RemoveMessage(ctx context.Context, userID, messageID int64) error

	// GetFeed returns the newest cached message ids, timestamp-descending.
	GetFeed(ctx context.Context, userID int64, limit int) ([]int64, error)

	// Invalidate drops a user's cached feed entirely. Used on follow and
	// unfollow, where recomputing beats patching the sorted set.
	Invalidate(ctx context.Context, userID int64) error
}

// RedisFeedCache implements FeedCache using Redis Sorted Sets.
type RedisFeedCache struct {
	client *redis.Client
}

// NewFeedCache creates a FeedCache backed by Redis.
func NewFeedCache(client *redis.Client) FeedCache {
	return &RedisFeedCache{client: client}
}

func feedKey(userID int64) string {
	return fmt.Sprintf("%s%d", FeedCachePrefix, userID)
}

func (c *RedisFeedCache) Exists(ctx context.Context, userID int64) (bool, error) {
	n, err := c.client.Exists(ctx, feedKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check feed cache: %w", err)
	}
	return n > 0, nil
}

// Warm bulk-inserts messages using a pipeline: ZADD + trim + EXPIRE.
func (c *RedisFeedCache) Warm(ctx context.Context, userID int64, messages []MessageScore) error {
	if len(messages) == 0 {
		return nil
	}

	key := feedKey(userID)
	pipe := c.client.Pipeline()

	members := make([]redis.Z, len(messages))
	for i, m := range messages {
		members[i] = redis.Z{
			Score:  float64(m.Timestamp),
			Member: strconv.FormatInt(m.MessageID, 10),
		}
	}
	pipe.ZAdd(ctx, key, members...)
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-FeedCacheCap-1))
	pipe.Expire(ctx, key, FeedCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("warm feed cache: %w", err)
	}
	return nil
}

func (c *RedisFeedCache) AddMessage(ctx context.Context, userID, messageID, timestamp int64) error {
	key := feedKey(userID)
	pipe := c.client.Pipeline()

	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(timestamp),
		Member: strconv.FormatInt(messageID, 10),
	})
	// Keep only the newest FeedCacheCap entries.
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-FeedCacheCap-1))
	pipe.Expire(ctx, key, FeedCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add message to feed cache: %w", err)
	}
	return nil
}

func (c *RedisFeedCache) RemoveMessage(ctx context.Context, userID, messageID int64) error {
	err := c.client.ZRem(ctx, feedKey(userID), strconv.FormatInt(messageID, 10)).Err()
	if err != nil {
		return fmt.Errorf("remove message from feed cache: %w", err)
	}
	return nil
}

func (c *RedisFeedCache) GetFeed(ctx context.Context, userID int64, limit int) ([]int64, error) {
	key := feedKey(userID)

	members, err := c.client.ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("get feed from cache: %w", err)
	}

	ids := make([]int64, len(members))
	for i, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse message id: %w", err)
		}
		ids[i] = id
	}
	return ids, nil
}

func (c *RedisFeedCache) Invalidate(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, feedKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate feed cache: %w", err)
	}
	return nil
}
