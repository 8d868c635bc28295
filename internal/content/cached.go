package content

import (
	"context"
	"time"

	"github.com/FocuswithJustin/werd/core/layout"
	"github.com/FocuswithJustin/werd/internal/cache"
)

// DefaultCacheTTL is how long CachedProvider keeps a page.
const DefaultCacheTTL = 30 * time.Minute

// CachedProvider memoizes pages from another Provider. Failed loads are not
// cached. Callers must not modify the returned slices.
type CachedProvider struct {
	next  Provider
	pages *cache.TTLCache[int, []layout.Verse]
}

// NewCachedProvider wraps next. maxPages bounds the cache; zero keeps every
// page of the Mushaf.
func NewCachedProvider(next Provider, ttl time.Duration, maxPages int, opts ...cache.Option) *CachedProvider {
	opts = append([]cache.Option{cache.WithMaxEntries(maxPages)}, opts...)
	return &CachedProvider{
		next:  next,
		pages: cache.New[int, []layout.Verse](ttl, opts...),
	}
}

// Page returns the cached page or loads it from the wrapped provider.
func (p *CachedProvider) Page(ctx context.Context, page int) ([]layout.Verse, error) {
	return p.pages.GetOrLoad(page, func() ([]layout.Verse, error) {
		return p.next.Page(ctx, page)
	})
}

// Invalidate drops every cached page.
func (p *CachedProvider) Invalidate() {
	p.pages.Invalidate()
}
