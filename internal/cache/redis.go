package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const metaKeyPrefix = "user_meta:"

// Redis implements Metadata on a go-redis client, one hash per user.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed metadata store and verifies connectivity.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", addr)
	return &Redis{client: client}, nil
}

// Client exposes the underlying connection for other redis consumers
// (the mail queue shares it).
func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) WeddingID(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	val, err := r.client.HGet(ctx, metaKeyPrefix+userID.String(), "wedding_id").Result()
	if err == redis.Nil {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("hget wedding_id: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		// Unparseable pointer behaves like an absent one.
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (r *Redis) SetWeddingID(ctx context.Context, userID, weddingID uuid.UUID) error {
	if err := r.client.HSet(ctx, metaKeyPrefix+userID.String(), "wedding_id", weddingID.String()).Err(); err != nil {
		return fmt.Errorf("hset wedding_id: %w", err)
	}
	return nil
}

func (r *Redis) ClearWeddingID(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.HDel(ctx, metaKeyPrefix+userID.String(), "wedding_id").Err(); err != nil {
		return fmt.Errorf("hdel wedding_id: %w", err)
	}
	return nil
}
