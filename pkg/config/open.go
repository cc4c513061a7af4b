package config

import (
	"context"

	"github.com/matzehuels/fattree/pkg/cache"
	"github.com/matzehuels/fattree/pkg/session"
)

// Open creates the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.RedisAddr, DB: c.RedisDB})
	default:
		dir := c.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// Open creates the configured session store.
func (s SessionConfig) Open(ctx context.Context) (session.Store, error) {
	switch s.Backend {
	case SessionFile:
		return session.NewFileStore(s.Dir)
	case SessionRedis:
		return session.NewRedisStore(ctx, s.RedisAddr, "", 0)
	case SessionMongo:
		return session.NewMongoStore(ctx, s.MongoURI, s.MongoDatabase)
	default:
		return session.NewMemoryStore(), nil
	}
}
