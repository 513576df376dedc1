package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCounter keeps per-recipe view counts in Redis. A nil counter (no Redis
// configured) is a no-op, so the rest of the app never has to care whether
// the cache is available.
type ViewCounter struct {
	client *redis.Client
}

func NewViewCounter(addr, password string) (*ViewCounter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ViewCounter{client: rdb}, nil
}

// Incr bumps the recipe's view count and returns the new value. Returns 0
// without error when no Redis is configured; views are best-effort.
func (c *ViewCounter) Incr(ctx context.Context, recipeID int64) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	key := fmt.Sprintf("recipe:views:%d", recipeID)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	return count
}

// Get reads the recipe's view count without bumping it.
func (c *ViewCounter) Get(ctx context.Context, recipeID int64) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	key := fmt.Sprintf("recipe:views:%d", recipeID)
	count, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return count
}

func (c *ViewCounter) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
