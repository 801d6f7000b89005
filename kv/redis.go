package kv

import (
	"time"

	"github.com/go-redis/redis/v7"
)

type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

// NewRedis connects to the given address and verifies it with a ping.
func NewRedis(addr, pwd string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pwd,
		DB:       db,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Incr(key string, window time.Duration) (int64, error) {
	count, err := r.client.Incr(key).Result()
	if err != nil {
		return 0, err
	}

	// First hit creates the counter, so it also sets the window.
	if count == 1 {
		if err := r.client.Expire(key, window).Err(); err != nil {
			return count, err
		}
	}

	return count, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
