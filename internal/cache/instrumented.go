package cache

import "github.com/Belphemur/TorrentGrabber/internal/models"

// instrumentedCache records hits and misses for the wrapped cache under its group label.
type instrumentedCache struct {
	inner DetailCache
	group string
}

func newInstrumentedCache(inner DetailCache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(link models.MovieLink) (models.MovieDetails, bool) {
	details, ok := c.inner.Get(link)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return details, ok
}

func (c *instrumentedCache) Set(link models.MovieLink, details models.MovieDetails) {
	c.inner.Set(link, details)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close unregisters the entries collector and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
