// Package redis provides Redis-backed session and list mirror stores for the storefront.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
)

// ErrNotFound is returned when a session or mirror is not present.
var ErrNotFound = ports.ErrNotFound

// jsonStore keeps JSON-encoded values of one kind under prefix+id.
type jsonStore[T any] struct {
	client redis.UniversalClient
	prefix string
	kind   string
}

func (s jsonStore[T]) key(id string) string { return s.prefix + id }

func (s jsonStore[T]) put(ctx context.Context, id string, v T, ttl time.Duration) error {
	if id == "" {
		return fmt.Errorf("%s ID cannot be empty", s.kind)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.kind, err)
	}
	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.kind, err)
	}
	return nil
}

func (s jsonStore[T]) get(ctx context.Context, id string) (T, error) {
	var v T
	if id == "" {
		return v, ErrNotFound
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, fmt.Errorf("redis get %s: %w", s.kind, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("unmarshal %s: %w", s.kind, err)
	}
	return v, nil
}

func (s jsonStore[T]) del(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}
