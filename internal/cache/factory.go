package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/models"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries for in-memory caches.
	Size int

	// TTL is the time-to-live for cache entries. Zero keeps entries until evicted.
	TTL time.Duration

	// OnEvict is called with the evicted link. Only the memory provider supports it.
	OnEvict func(link models.MovieLink)

	// Logger receives error reports from cache operations. If nil, errors are silently ignored.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Group labels the cache_* metrics. When non-empty the cache is wrapped with instrumentation.
	Group string
}

// Provider is a constructor function that creates a DetailCache from config.
type Provider func(cfg ProviderConfig) (DetailCache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a DetailCache using the named provider.
func New(name string, cfg ProviderConfig) (DetailCache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Size <= 0 {
		cfg.Size = 1000
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	original := cfg.OnEvict
	cfg.OnEvict = func(link models.MovieLink) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(link)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
