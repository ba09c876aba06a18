package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"play_insights/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const keyPrefix = "play_insights:cleaned:"

// DatasetCache — общий между процессами кеш очищенной таблицы. Кеш
// необязательный: любой промах означает повторную загрузку и очистку.
type DatasetCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDatasetCache(client *redis.Client, ttl time.Duration) DatasetCache {
	return DatasetCache{
		client: client,
		ttl:    ttl,
	}
}

func (c DatasetCache) Get(ctx context.Context, dataset string) ([]entity.App, bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+dataset).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("redis.Get: %w", err)
	}

	var apps []entity.App

	if err := json.Unmarshal(payload, &apps); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if len(apps) == 0 {
		return nil, false, nil
	}

	return apps, true, nil
}

func (c DatasetCache) Set(ctx context.Context, dataset string, apps []entity.App) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+dataset, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}
