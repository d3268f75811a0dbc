package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const catalogKey = "clinic:catalog:services"

// CatalogCache keeps the service catalog in Redis. Redis failures are
// logged and the underlying catalog is read instead; a nil client disables
// caching entirely.
type CatalogCache struct {
	next   booking.Catalog
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(
	next booking.Catalog,
	client *redis.Client,
	ttl time.Duration,
	logger *zap.Logger,
) *CatalogCache {
	return &CatalogCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *CatalogCache) ListServices(ctx context.Context) ([]models.Service, error) {
	if c.client == nil {
		return c.next.ListServices(ctx)
	}

	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	switch {
	case err == nil:
		var list []models.Service
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
		c.logger.Warn("catalog cache entry unreadable, reloading")
	case err != redis.Nil:
		c.logger.Warn("catalog cache read failed", zap.Error(err))
	}

	list, err := c.next.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(list); err == nil {
		if err := c.client.Set(ctx, catalogKey, b, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, catalogKey).Err()
}
