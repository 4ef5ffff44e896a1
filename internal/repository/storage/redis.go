package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis holds the connection used for live games and their histories.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{Client: client}, nil
}

func (that *Redis) Close() error {
	if err := that.Client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	return nil
}
