package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultKeyPrefix namespaces all detail keys in Redis to avoid collisions.
	defaultKeyPrefix = "grabber:details:"

	redisOpTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each movie as its own key holding the JSON encoded details,
// with the TTL applied by Redis. Capacity is left to the server's maxmemory policy.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
	prefix string
}

func newRedisCache(cfg ProviderConfig) (DetailCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Verify connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
		prefix: defaultKeyPrefix,
	}, nil
}

func (r *redisCache) key(link models.MovieLink) string {
	return r.prefix + string(link)
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(link models.MovieLink) (models.MovieDetails, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.key(link)).Bytes()
	if err != nil {
		// redis.Nil is a plain miss.
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return models.MovieDetails{}, false
	}

	var details models.MovieDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		r.logError("redis cache entry is not valid JSON", err)
		return models.MovieDetails{}, false
	}
	return details, true
}

func (r *redisCache) Set(link models.MovieLink, details models.MovieDetails) {
	raw, err := json.Marshal(details)
	if err != nil {
		r.logError("redis cache encode failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(link), raw, r.ttl).Err(); err != nil {
		r.logError("redis cache Set failed", err)
	}
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	count := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return count
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
