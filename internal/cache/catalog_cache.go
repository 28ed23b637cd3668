package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gamehaven/internal/app"
)

// CatalogCache stores rendered /games pages in redis under a generation
// counter. Invalidate bumps the generation, which orphans every cached page
// at once; orphans age out via the TTL.
type CatalogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redisv9.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetPage(ctx context.Context, categorySlug string, page int) (*app.CatalogPage, bool, error) {
	key, err := c.pageKey(ctx, categorySlug, page)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get catalog page failed: %w", err)
	}

	var catalog app.CatalogPage
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached catalog page failed: %w", err)
	}
	return &catalog, true, nil
}

func (c *CatalogCache) SetPage(ctx context.Context, categorySlug string, page int, catalog *app.CatalogPage) error {
	key, err := c.pageKey(ctx, categorySlug, page)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog page failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalog page failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("redis bump catalog generation failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) pageKey(ctx context.Context, categorySlug string, page int) (string, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && err != redisv9.Nil {
		return "", fmt.Errorf("redis get catalog generation failed: %w", err)
	}
	if categorySlug == "" {
		categorySlug = "all"
	}
	return fmt.Sprintf("catalog:g%d:%s:%d", generation, categorySlug, page), nil
}

func (c *CatalogCache) generationKey() string {
	return "catalog:generation"
}
