package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultConnectTimeout = 5 * time.Second

// Config holds the connection settings for the Redis instance backing the
// login throttle.
type Config struct {
	Addr string
	DB   int
	// Timeout bounds the startup ping. Zero means defaultConnectTimeout.
	Timeout time.Duration
}

// Connect opens a client and verifies it with a ping. The throttle degrades
// gracefully on a mid-flight Redis outage, but an unreachable instance at
// startup is a configuration fault and fails here.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
