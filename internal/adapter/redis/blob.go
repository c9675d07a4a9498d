package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/oakfield/doortrack/internal/config"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// BlobStore keeps the dataset snapshot under a single redis key. The whole
// dataset is one value; there is no per-order keying.
type BlobStore struct {
	rdb *redis.Client
	key string
}

func Connect(ctx context.Context, cfg config.RedisConfig) (interfaces.BlobStore, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &BlobStore{rdb: rdb, key: cfg.Key}, nil
}

func (b *BlobStore) Load(ctx context.Context) (*domain.Dataset, error) {
	val, err := b.rdb.Get(ctx, b.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", b.key, err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal([]byte(val), &ds); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.key, err)
	}
	return &ds, nil
}

func (b *BlobStore) Save(ctx context.Context, ds *domain.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := b.rdb.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", b.key, err)
	}
	return nil
}
