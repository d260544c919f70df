package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	FeedPageKeyPrefix = "feed:%s:page:%d"
	FeedKeyPattern    = "feed:*"
)

const (
	UserTTL = 5 * time.Minute
	// FeedPageTTL bounds how stale a cached feed page may get; there is no
	// event-driven invalidation on post writes.
	FeedPageTTL = 30 * time.Second
)

// FeedViewGlobal names the only feed view whose rendered pages are cached.
const FeedViewGlobal = "global"

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// FeedPageKey keys a cached feed page by view name and page number, so a
// cached page 2 is never served for a page 1 request.
func FeedPageKey(view string, page int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, view, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// ClearFeedPages removes every cached feed page. This is the explicit,
// administrative clear; routine invalidation is purely TTL-based.
func ClearFeedPages(ctx context.Context) error {
	if client == nil {
		return nil
	}
	iter := client.Scan(ctx, 0, FeedKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
