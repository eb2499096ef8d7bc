package blobstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/logger"
)

// Redis stores each collection as a plain string value and uses WATCH/MULTI
// for optimistic read-modify-write.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, passThrough("Failed to read "+key, err)
	}
	return value, nil
}

func (r *Redis) Update(ctx context.Context, key string, fn repository.UpdateFunc) error {
	fullKey := r.prefix + key

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, fullKey).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, 0)
			return nil
		})
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, fullKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return passThrough("Failed to update "+key, err)
		}
		lastErr = err
		logger.Debug("Redis.Update: key %s changed during attempt %d, retrying", fullKey, attempt)
	}
	return conflict(key, lastErr)
}

func (r *Redis) Close() error {
	return r.client.Close()
}
