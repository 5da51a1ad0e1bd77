package release

import (
	"context"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/cache"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
)

// Cached wraps a Fetcher with a short TTL so repeated checks inside the
// window reuse one registry round-trip and concurrent checks coalesce.
type Cached struct {
	fetcher *Fetcher
	cache   *cache.Cache[string, *model.ReleaseDescriptor]
}

func NewCached(fetcher *Fetcher, ttl time.Duration) *Cached {
	return &Cached{
		fetcher: fetcher,
		cache:   cache.NewCache[string, *model.ReleaseDescriptor](ttl),
	}
}

func (c *Cached) FetchLatest(ctx context.Context) (*model.ReleaseDescriptor, error) {
	key := c.fetcher.owner + "/" + c.fetcher.repo
	desc, err := c.cache.ComputeIfAbsent(key, func() (*model.ReleaseDescriptor, error) {
		return c.fetcher.FetchLatest(ctx)
	})
	if err != nil {
		return nil, err
	}
	return *desc, nil
}

// Invalidate drops the cached descriptor so the next check hits the registry.
func (c *Cached) Invalidate() {
	c.cache.Clear()
}
