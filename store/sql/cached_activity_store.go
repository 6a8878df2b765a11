package sqlstore

import (
	"context"
	"fmt"
	"sync"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-repo-activity/core"
)

const recentFeedCacheKeyPrefix = "repo-activity::recent::v1"

// CachedActivityFeed decorates an ActivityStore with a read cache over
// Recent. Appends write through to the base store and invalidate every key
// this feed has vended, so a query issued after a stored delivery always
// observes the new entry.
type CachedActivityFeed struct {
	base  core.ActivityStore
	cache repositorycache.CacheService

	mu     sync.Mutex
	vended map[string]struct{}
}

func NewCachedActivityFeed(
	base core.ActivityStore,
	cacheService repositorycache.CacheService,
) (*CachedActivityFeed, error) {
	if base == nil {
		return nil, storeConfigError("sqlstore: base activity store is required")
	}
	if cacheService == nil {
		return nil, storeConfigError("sqlstore: activity cache service is required")
	}
	return &CachedActivityFeed{
		base:   base,
		cache:  cacheService,
		vended: map[string]struct{}{},
	}, nil
}

// RecentFeedCacheKey returns the deterministic cache key for a recent-feed
// read: repo-activity::recent::v1::<limit>.
func RecentFeedCacheKey(limit int) string {
	return fmt.Sprintf("%s::%d", recentFeedCacheKeyPrefix, limit)
}

func (f *CachedActivityFeed) Append(ctx context.Context, formatted string) (core.ActivityEntry, error) {
	if f == nil || f.base == nil || f.cache == nil {
		return core.ActivityEntry{}, storeConfigError("sqlstore: cached activity feed is not configured")
	}
	entry, err := f.base.Append(ctx, formatted)
	if err != nil {
		return core.ActivityEntry{}, err
	}

	f.mu.Lock()
	keys := make([]string, 0, len(f.vended))
	for key := range f.vended {
		keys = append(keys, key)
	}
	f.mu.Unlock()

	for _, key := range keys {
		if deleteErr := f.cache.Delete(ctx, key); deleteErr != nil {
			return core.ActivityEntry{}, storeUnavailable(deleteErr, "sqlstore: invalidate recent feed cache")
		}
	}
	return entry, nil
}

func (f *CachedActivityFeed) Recent(ctx context.Context, limit int) ([]string, error) {
	if f == nil || f.base == nil || f.cache == nil {
		return nil, storeConfigError("sqlstore: cached activity feed is not configured")
	}
	if limit <= 0 {
		// nothing cacheable; defer to the base store's limit handling
		return f.base.Recent(ctx, limit)
	}

	key := RecentFeedCacheKey(limit)
	f.mu.Lock()
	f.vended[key] = struct{}{}
	f.mu.Unlock()

	summaries, err := repositorycache.GetOrFetch(ctx, f.cache, key, func(ctx context.Context) ([]string, error) {
		fetched, fetchErr := f.base.Recent(ctx, limit)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return append([]string(nil), fetched...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), summaries...), nil
}
