// Package testutil provides testing utilities and helpers for the sweet shop storefront.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FixedTimeFunc returns a clock that always reports t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// RedisFixture is a reachable Redis server plus a key prefix owned by one test.
type RedisFixture struct {
	Client *redis.Client
	Prefix string
}

// redisCandidates lists where tests look for Redis when REDIS_ADDR is unset.
var redisCandidates = []string{"localhost:6379", "redis:6379"}

// SetupTestRedis connects to a test Redis and hands out a unique key prefix.
// Keys under the prefix are removed when the test ends. The test is skipped
// when no Redis answers, unless TEST_REQUIRE_REDIS is truthy.
func SetupTestRedis(t testing.TB) RedisFixture {
	t.Helper()

	addrs := redisCandidates
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		addrs = []string{addr}
	}

	var client *redis.Client
	for _, addr := range addrs {
		c := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx).Err()
		cancel()
		if err == nil {
			client = c
			break
		}
		_ = c.Close()
		t.Logf("Redis not available at %s: %v", addr, err)
	}
	if client == nil {
		if envBool("TEST_REQUIRE_REDIS") {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	prefix := "sweetshop:test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			t.Logf("warning: failed to clean test keys under %s: %v", prefix, err)
		}
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})

	return RedisFixture{Client: client, Prefix: prefix}
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
