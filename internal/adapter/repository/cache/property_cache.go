package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "property:"
	defaultTTL = 1 * time.Hour
)

// PropertyCache is a JSON read cache in Redis for point lookups.
// A cache miss is (nil, nil).
type PropertyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPropertyCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*PropertyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			// Ping failure is the error worth reporting.
		}
		return nil, fmt.Errorf("failed to connect to redis (ping failed): %w", err)
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PropertyCache{client: client, ttl: ttl}, nil
}

func (c *PropertyCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *PropertyCache) Set(ctx context.Context, property *domain.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+property.ID, data, c.ttl).Err()
}

func (c *PropertyCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, keyPrefix+id).Err()
}

func (c *PropertyCache) Close() error {
	return c.client.Close()
}
