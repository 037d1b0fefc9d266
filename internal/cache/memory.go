package cache

import (
	"github.com/Belphemur/TorrentGrabber/internal/models"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache keeps details in an expirable LRU owned by the process.
type memoryCache struct {
	inner *lru.LRU[models.MovieLink, models.MovieDetails]
}

func newMemoryCache(cfg ProviderConfig) (DetailCache, error) {
	var onEvict func(models.MovieLink, models.MovieDetails)
	if cfg.OnEvict != nil {
		onEvict = func(link models.MovieLink, _ models.MovieDetails) {
			cfg.OnEvict(link)
		}
	}
	return &memoryCache{
		inner: lru.NewLRU[models.MovieLink, models.MovieDetails](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

func (m *memoryCache) Get(link models.MovieLink) (models.MovieDetails, bool) {
	return m.inner.Get(link)
}

func (m *memoryCache) Set(link models.MovieLink, details models.MovieDetails) {
	m.inner.Add(link, details)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
