package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"tumble_cup/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client stores per-session carts in Redis so a restart does not drop
// in-progress checkouts.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

func (c *Client) Get(sessionID string) (*models.Cart, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (c *Client) Save(sessionID string, cart *models.Cart) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return c.rdb.Set(ctx, "cart:"+sessionID, jsonData, c.ttl).Err()
}

func (c *Client) Delete(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+sessionID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
