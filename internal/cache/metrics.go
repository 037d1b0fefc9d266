package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache metrics carry a "cache" label equal to ProviderConfig.Group.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries evicted from the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(HitsTotal, MissesTotal, EvictionsTotal)
}

var (
	entriesMu    sync.Mutex
	entriesFuncs = make(map[string]prometheus.GaugeFunc)
	// entriesReg is swapped by tests for an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector exposes cache_entries for group, read lazily at scrape time.
// A collector already registered for the same group is replaced.
func registerEntriesCollector(group string, lenFunc func() int) {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "cache_entries",
		Help:        "Current number of entries in the cache.",
		ConstLabels: prometheus.Labels{"cache": group},
	}, func() float64 { return float64(lenFunc()) })

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entriesFuncs[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesFuncs[group] = g
	_ = entriesReg.Register(g)
}

func unregisterEntriesCollector(group string) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if g, ok := entriesFuncs[group]; ok {
		entriesReg.Unregister(g)
		delete(entriesFuncs, group)
	}
}
