package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"uniFinder/pkg/config"

	"github.com/redis/go-redis/v9"
)

// The match cache only serves small JSON blobs, so a modest pool suffices.
const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
	poolSize     = 10
	minIdleConns = 2
)

// Connect opens the client backing the match result cache and checks it is
// reachable before handing it out.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.RedisHost, cfg.RedisPort)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("match cache at %s unreachable: %w", addr, err)
	}

	return client, nil
}

// Close releases client. A nil client is a no-op.
func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
