package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/adapters/memory"
	redisstore "github.com/DimpleKundu/incubyte-sweet-shop/internal/adapters/redis"
	httpx "github.com/DimpleKundu/incubyte-sweet-shop/internal/http"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
)

// Stores holds the per-visitor state backends selected by SESSION_STORE.
type Stores struct {
	Sessions     ports.SessionStore
	Mirrors      ports.MirrorStore
	HealthChecks []httpx.HealthCheck
}

// NewStores selects Redis or in-memory stores. The Redis client is required
// only for the redis store kind.
func NewStores(cfg config.SessionConfig, client redis.UniversalClient) (Stores, error) {
	switch cfg.Store {
	case config.SessionStoreMemory:
		return Stores{
			Sessions: memory.NewSessionStore(),
			Mirrors:  memory.NewMirrorStore(cfg.MirrorTTL),
		}, nil
	case config.SessionStoreRedis, "":
		if client == nil {
			return Stores{}, errors.New("redis session store requires a redis client")
		}
		return Stores{
			Sessions: redisstore.NewSessionStoreWithPrefix(client, cfg.KeyPrefix),
			Mirrors: redisstore.NewMirrorStore(redisstore.MirrorStoreOptions{
				Client: client,
				Prefix: cfg.KeyPrefix,
				TTL:    cfg.MirrorTTL,
			}),
			HealthChecks: []httpx.HealthCheck{redisHealthCheck(client)},
		}, nil
	default:
		return Stores{}, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

func redisHealthCheck(client redis.UniversalClient) httpx.HealthCheck {
	return httpx.HealthCheck{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}
