package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and addresses a cache backend. It is decoded from the
// [cache] table of the config file.
type Config struct {
	// Backend is one of none, file, redis or mongo. Empty means none.
	Backend string `toml:"backend" json:"backend"`

	// Dir is the FileCache directory.
	Dir string `toml:"dir" json:"dir,omitempty"`

	// URL addresses Redis (redis://...) or MongoDB (mongodb://...).
	URL string `toml:"url" json:"url,omitempty"`

	// KeyPrefix namespaces every key, letting deployments share a backend.
	KeyPrefix string `toml:"key_prefix" json:"key_prefix,omitempty"`
}

// Keyer returns the keyer for cfg: a ScopedKeyer when KeyPrefix is set,
// nil otherwise so callers fall back to the default.
func (cfg Config) Keyer() Keyer {
	if cfg.KeyPrefix == "" {
		return nil
	}
	return NewScopedKeyer(nil, cfg.KeyPrefix)
}

// Open returns the cache described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache: url is required")
		}
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache: url is required")
		}
		c, err := NewMongoCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
