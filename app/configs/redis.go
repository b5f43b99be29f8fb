package configs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to the cart snapshot store. Returns nil when REDIS_ADDR
// is unset: snapshots are optional and the storefront runs without them.
func OpenRedis() (*redis.Client, error) {
	if LoadENV.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: LoadENV.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", LoadENV.RedisAddr, err)
	}

	return client, nil
}
