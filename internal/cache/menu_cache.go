// Package cache keeps a short-lived snapshot of the menu in Redis so that
// identifier lookups, which scan the whole catalog, do not hit Postgres on
// every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
)

const menuSnapshotKey = "coffee-shop:menu_items:v1"

// MenuCache stores the full menu snapshot.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

// NewMenuCache returns a cache backed by client. A nil client or a zero ttl
// disables caching.
func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{client: client, ttl: ttl, key: menuSnapshotKey}
}

// Enabled reports whether reads and writes reach Redis.
func (c *MenuCache) Enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached snapshot. ok is false on a miss or when disabled.
func (c *MenuCache) Get(ctx context.Context) (items []domain.MenuItem, ok bool, err error) {
	if !c.Enabled() {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read menu snapshot: %w", err)
	}
	items, err = DecodeSnapshot(raw)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Set replaces the cached snapshot.
func (c *MenuCache) Set(ctx context.Context, items []domain.MenuItem) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := EncodeSnapshot(items)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write menu snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot.
func (c *MenuCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}

// EncodeSnapshot serializes items for storage.
func EncodeSnapshot(items []domain.MenuItem) ([]byte, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode menu snapshot: %w", err)
	}
	return raw, nil
}

// DecodeSnapshot restores items written by EncodeSnapshot.
func DecodeSnapshot(raw []byte) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode menu snapshot: %w", err)
	}
	return items, nil
}
