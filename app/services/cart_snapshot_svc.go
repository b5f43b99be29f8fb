package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/attarhouse/storefront/app/models"
	"github.com/redis/go-redis/v9"
)

// CartSnapshotter is the optional durability hook behind the cart store:
// snapshot and restore of line items, keyed by cart session id.
type CartSnapshotter interface {
	Save(ctx context.Context, cartID string, items []models.CartItem) error
	Load(ctx context.Context, cartID string) ([]models.CartItem, error)
	Drop(ctx context.Context, cartID string) error
}

type redisCartSnapshotter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartSnapshotter(client *redis.Client, ttl time.Duration) CartSnapshotter {
	return &redisCartSnapshotter{client: client, ttl: ttl}
}

func snapshotKey(cartID string) string {
	return "cart:snapshot:" + cartID
}

func (r *redisCartSnapshotter) Save(ctx context.Context, cartID string, items []models.CartItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKey(cartID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart snapshot: %w", err)
	}
	return nil
}

func (r *redisCartSnapshotter) Load(ctx context.Context, cartID string) ([]models.CartItem, error) {
	payload, err := r.client.Get(ctx, snapshotKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return items, nil
}

func (r *redisCartSnapshotter) Drop(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, snapshotKey(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
