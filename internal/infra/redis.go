package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the go-redis client that backs the print job queue.
// Fails fast when the server is unreachable so startup surfaces the problem.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
