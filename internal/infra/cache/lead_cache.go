// Package cache keeps a short-lived copy of each user's lead collection so
// the counters and list views of one page load share a single upstream call.
package cache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/xavierca1/dealflow/internal/entity"
	"github.com/xavierca1/dealflow/internal/infra/http/middleware"
)

const defaultSize = 256

// Fetcher loads the full lead collection with a user's token.
type Fetcher interface {
	ListAllLeads(ctx context.Context, token string) ([]entity.Lead, error)
}

// LeadCache returns shared slices: callers must not modify them.
type LeadCache struct {
	src   Fetcher
	lru   *expirable.LRU[string, []entity.Lead]
	group singleflight.Group
	gen   atomic.Uint64
}

// NewLeadCache caches up to size collections for ttl. A non-positive ttl
// disables caching but concurrent fetches for the same key still collapse.
func NewLeadCache(src Fetcher, ttl time.Duration, size int) *LeadCache {
	if size <= 0 {
		size = defaultSize
	}
	c := &LeadCache{src: src}
	if ttl > 0 {
		c.lru = expirable.NewLRU[string, []entity.Lead](size, nil, ttl)
	}
	return c
}

// Leads returns the cached collection for key or fetches it with token.
// Concurrent misses share one upstream call; a caller whose ctx ends stops
// waiting without cancelling the call for the others.
func (c *LeadCache) Leads(ctx context.Context, key, token string) ([]entity.Lead, error) {
	if c.lru != nil {
		if leads, ok := c.lru.Get(key); ok {
			middleware.RecordLeadCache("hit")
			return leads, nil
		}
	}
	middleware.RecordLeadCache("miss")

	gen := c.gen.Load()
	// The fetch is shared, so it must outlive whichever caller started it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		leads, err := c.src.ListAllLeads(fetchCtx, token)
		if err != nil {
			return nil, err
		}
		if leads == nil {
			leads = []entity.Lead{}
		}
		// A write that landed while we were fetching makes this copy stale.
		if c.lru != nil && c.gen.Load() == gen {
			c.lru.Add(key, leads)
		}
		return leads, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]entity.Lead), nil
	}
}

// Invalidate drops every cached collection. Lead writes are visible to all
// users, so there is no per-key invalidation.
func (c *LeadCache) Invalidate() {
	c.gen.Add(1)
	if c.lru != nil {
		c.lru.Purge()
	}
}
