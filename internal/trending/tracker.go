// Package trending keeps a best-effort popularity counter of generated
// repositories in a Redis sorted set. Every operation degrades silently:
// this path must never affect a generation request.
package trending

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	trendingKey = "trending_repos"

	// topN is the size of the trending snapshot.
	topN = 5

	opTimeout = 5 * time.Second
)

// Entry is one row of the trending snapshot.
type Entry struct {
	Repo  string `json:"repo"`
	Count int64  `json:"count"`
}

// sortedSet is the slice of redis.Client the tracker uses.
type sortedSet interface {
	ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
}

type Tracker struct {
	store sortedSet // nil when Redis is not configured
	ttl   time.Duration

	mu          sync.Mutex
	snapshot    []Entry
	refreshedAt time.Time
}

// NewTracker wraps a Redis client. client may be nil, in which case Track is
// a no-op and Top always returns an empty snapshot.
func NewTracker(client *redis.Client, snapshotTTL time.Duration) *Tracker {
	t := &Tracker{ttl: snapshotTTL}
	if client != nil {
		t.store = client
	}
	return t
}

// Track increments the counter for slug, detached from the caller: it never
// blocks and never surfaces an error.
func (t *Tracker) Track(slug string) {
	if t.store == nil || slug == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := t.store.ZIncrBy(ctx, trendingKey, 1, slug).Err(); err != nil {
			slog.DebugContext(ctx, "trending increment failed", "repo", slug, "error", err)
		}
	}()
}

// Top returns the highest-counted repositories, at most five, descending.
// The snapshot is cached briefly; on any failure the previous snapshot or an
// empty list is returned, never an error.
func (t *Tracker) Top(ctx context.Context) []Entry {
	if t.store == nil {
		return []Entry{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snapshot != nil && time.Since(t.refreshedAt) < t.ttl {
		return t.snapshot
	}

	rows, err := t.store.ZRevRangeWithScores(ctx, trendingKey, 0, topN-1).Result()
	if err != nil {
		slog.DebugContext(ctx, "trending read failed", "error", err)
		if t.snapshot != nil {
			return t.snapshot
		}
		return []Entry{}
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Repo: member, Count: int64(row.Score)})
	}

	t.snapshot = entries
	t.refreshedAt = time.Now()
	return entries
}
