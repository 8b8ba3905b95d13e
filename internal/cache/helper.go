package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	UserKeyPrefix          = "user:%d"
	RatingSummaryKeyPrefix = "ratings:summary:%d"
	BrowseKeyPrefix        = "browse:%s:%s:%d:%d"
)

const (
	UserTTL          = 5 * time.Minute
	RatingSummaryTTL = 10 * time.Minute
	BrowseTTL        = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RatingSummaryKey(userID uint) string {
	return fmt.Sprintf(RatingSummaryKeyPrefix, userID)
}

func BrowseKey(skill, location string, page, limit int) string {
	return fmt.Sprintf(BrowseKeyPrefix, skill, location, page, limit)
}

// GetJSON loads the cached value at key into dest.
// Returns false on miss or when the cache is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entry, drop it
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores value at key with the given TTL. Failures are best-effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the cached profile and rating summary for a user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, RatingSummaryKey(userID))
}

// InvalidateBrowse drops all cached browse pages. Browse results change on any
// profile update so the whole namespace goes at once.
func InvalidateBrowse(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "browse:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// Aside implements the cache-aside pattern. On a hit it fills dest from the
// cache; on a miss it calls load (which must fill dest) and caches the result.
// Load errors pass through untouched and nothing is cached.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}

// Healthy reports whether the cache connection is usable.
func Healthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	err := client.Ping(ctx).Err()
	return err == nil || errors.Is(err, redis.Nil)
}
