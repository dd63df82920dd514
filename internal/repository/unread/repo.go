// Package unread persists per-(member, channel) unread-notification counters
// in Redis. Counters are pure key-indexed state: created implicitly by the
// first increment, deleted on mark-read.
package unread

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"
)

// keyPattern is the storage key layout shared with every other instance.
const keyPattern = "unread_notifications:%d:%d"

// Repository provides atomic access to unread counters.
type Repository struct {
	rdb *redis.Client
}

// NewRepository creates a new unread-counter repository.
func NewRepository(rdb *redis.Client) *Repository {
	return &Repository{rdb: rdb}
}

func key(memberID, channelID int64) string {
	return fmt.Sprintf(keyPattern, memberID, channelID)
}

// Increment atomically adds one to the member's counter for the channel,
// creating the key at 1 if absent. The increment is a single round-trip to
// the store, never a read-modify-write in application code.
func (r *Repository) Increment(ctx context.Context, memberID, channelID int64) error {
	if err := r.rdb.Incr(ctx, key(memberID, channelID)).Err(); err != nil {
		return fmt.Errorf("increment unread count: %w", err)
	}

	return nil
}

// Get returns the member's unread count for the channel, 0 if the key is
// absent. Historical values were written with mixed encodings (textual and
// numeric); both normalize to one integer here, and a present-but-unparsable
// value counts as 0 rather than an error.
func (r *Repository) Get(ctx context.Context, memberID, channelID int64) (int64, error) {
	k := key(memberID, channelID)

	raw, err := r.rdb.Client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("get unread count: %w", err)
	}

	return normalizeCount(k, raw), nil
}

// MarkRead deletes the member's counter for the channel, resetting it to 0.
// Deleting an absent key is a no-op.
func (r *Repository) MarkRead(ctx context.Context, memberID, channelID int64) error {
	if err := r.rdb.Del(ctx, key(memberID, channelID)).Err(); err != nil {
		return fmt.Errorf("delete unread count: %w", err)
	}

	return nil
}

// normalizeCount parses a stored counter value. Business logic never sees
// the storage encoding.
func normalizeCount(key, raw string) int64 {
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("key", key).Str("value", raw).
			Msg("unparsable unread count, treating as 0")
		return 0
	}

	return count
}
