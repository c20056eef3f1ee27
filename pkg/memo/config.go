package memo

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and sizes the memo store.
type Config struct {
	Backend   string        `env:"MEMO_BACKEND" envDefault:"memory"`
	Capacity  int           `env:"MEMO_CAPACITY" envDefault:"10000"`
	TTL       time.Duration `env:"MEMO_TTL" envDefault:"24h"`
	KeyPrefix string        `env:"MEMO_KEY_PREFIX" envDefault:"probekit:memo:"`
	Redis     RedisConfig
	Mongo     MongoConfig
}

// Open builds the configured store. The returned close function releases
// backend connections and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(WithCapacity(cfg.Capacity), WithTTL(cfg.TTL)), func() error { return nil }, nil
	case BackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), client.Close, nil
	case BackendMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		closeFn := func() error { return client.Disconnect(context.WithoutCancel(ctx)) }
		store := NewMongoStore(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		if err := store.EnsureTTL(ctx, cfg.TTL); err != nil {
			_ = closeFn()
			return nil, func() error { return nil }, err
		}
		return store, closeFn, nil
	}
	return nil, func() error { return nil }, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
