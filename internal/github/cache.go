package github

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/metrics"
)

// DefaultCacheTTL is how long a username's repository list stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// DefaultFetchTimeout bounds one shared upstream fetch.
const DefaultFetchTimeout = 30 * time.Second

type cacheEntry struct {
	repos     []RepositorySummary
	fetchedAt time.Time
}

// CachedSource memoizes a Source per username for a fixed freshness window.
// Keys are case-sensitive. Failed lookups are not cached.
//
// Concurrent misses for the same username share one upstream call.
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	fetchTimeout time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	flight  singleflight.Group
}

// CacheOption customizes a CachedSource.
type CacheOption func(*CachedSource)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedSource) { c.now = now }
}

// WithFetchTimeout bounds each upstream fetch. Non-positive keeps the default.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *CachedSource) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// NewCachedSource wraps source. A non-positive ttl selects DefaultCacheTTL.
func NewCachedSource(source Source, ttl time.Duration, opts ...CacheOption) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &CachedSource{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),

		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repositories returns the cached list when fresh, otherwise fetches and caches it.
func (c *CachedSource) Repositories(ctx context.Context, username string) ([]RepositorySummary, error) {
	if repos, ok := c.lookup(username); ok {
		metrics.ImportCache.WithLabelValues("hit").Inc()
		return repos, nil
	}
	metrics.ImportCache.WithLabelValues("miss").Inc()

	// The shared fetch outlives any one caller; each caller stops waiting
	// only when its own ctx ends.
	ch := c.flight.DoChan(username, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		repos, err := c.source.Repositories(fctx, username)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[username] = cacheEntry{repos: copyRepos(repos), fetchedAt: c.now()}
		c.mu.Unlock()
		return repos, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyRepos(res.Val.([]RepositorySummary)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *CachedSource) lookup(username string) ([]RepositorySummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[username]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, username)
		return nil, false
	}
	return copyRepos(e.repos), true
}

// Sweep evicts every expired entry and returns how many were removed.
func (c *CachedSource) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Invalidate drops the entry for username.
func (c *CachedSource) Invalidate(username string) {
	c.mu.Lock()
	delete(c.entries, username)
	c.mu.Unlock()
}

// Len is the number of entries currently held, fresh or not.
func (c *CachedSource) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func copyRepos(in []RepositorySummary) []RepositorySummary {
	out := make([]RepositorySummary, len(in))
	for i, r := range in {
		if r.Topics != nil {
			r.Topics = append(make([]string, 0, len(r.Topics)), r.Topics...)
		}
		out[i] = r
	}
	return out
}
