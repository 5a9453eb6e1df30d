package store

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis backs the Store with a Redis instance. Values never expire; the
// journal is the source of truth, not a cache.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *Redis) GetString(key string) (string, bool) {
	value, err := r.client.Get(context.Background(), key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("store: redis get", "key", key, "err", err)
		}
		return "", false
	}
	return value, true
}

func (r *Redis) SetString(key, value string) {
	if err := r.client.Set(context.Background(), key, value, 0).Err(); err != nil {
		slog.Error("store: redis set", "key", key, "err", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
