package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"

	"github.com/jrh3k5/qrsvg/config"
)

// NewStorage creates the store generated SVG is cached in, or nil when caching
// is disabled.
func NewStorage(cfg config.CacheConfig) (fiber.Storage, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendMemory:
		return memoryStorage.New(memoryStorage.Config{
			GCInterval: 10 * time.Second,
		}), nil
	case config.CacheBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("the redis cache backend requires a redis_url")
		}
		return newRedisStorage(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %v", cfg.Backend)
	}
}

// newRedisStorage connects to redis. The storage constructor panics when the
// server cannot be reached, so the panic is turned into an error.
func newRedisStorage(url string) (store fiber.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			store = nil
			err = fmt.Errorf("failed to connect to redis cache: %v", r)
		}
	}()

	return redisStorage.New(redisStorage.Config{
		URL: url,
	}), nil
}
