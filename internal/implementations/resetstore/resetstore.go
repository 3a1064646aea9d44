package resetstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	e "resetpass/internal/core/domain/errors"
	"resetpass/internal/core/domain/reset"
	"time"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "reset-request::"

// Redis keeps pending reset requests keyed by session ID. Expiry is
// delegated to Redis so abandoned requests vanish on their own.
type Redis struct {
	redisClient *redis.Client
}

func NewRedis(redisClient *redis.Client) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient}
}

func (r *Redis) Put(ctx context.Context, id reset.SessionID, request reset.Request, ttl time.Duration) error {
	encoded, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("could not encode reset request: %w", err)
	}
	if err := r.redisClient.Set(ctx, keyPrefix+string(id), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("could not store reset request: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id reset.SessionID) (reset.Request, error) {
	encoded, err := r.redisClient.Get(ctx, keyPrefix+string(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return reset.Request{}, reset.ErrNoPendingRequest
	}
	if err != nil {
		return reset.Request{}, fmt.Errorf("could not read reset request: %w", err)
	}
	var request reset.Request
	if err := json.Unmarshal(encoded, &request); err != nil {
		return reset.Request{}, fmt.Errorf("could not decode reset request: %w", err)
	}
	return request, nil
}

func (r *Redis) Delete(ctx context.Context, id reset.SessionID) error {
	if err := r.redisClient.Del(ctx, keyPrefix+string(id)).Err(); err != nil {
		return fmt.Errorf("could not delete reset request: %w", err)
	}
	return nil
}
