package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the backing store for sessions and list mirrors.
type SessionStoreKind string

const (
	// SessionStoreRedis keeps sessions in Redis (shared across replicas).
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStoreMemory keeps sessions in process memory (single instance, development).
	SessionStoreMemory SessionStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: redis, memory)", v)
	}
}

const (
	defaultSessionTTL = 60 * time.Minute
	minSessionTTL     = time.Minute
)

// SessionConfig controls how long a signed-in visitor stays signed in and
// where their state is kept.
type SessionConfig struct {
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"redis"`

	// TTL matches the API token lifetime; the session is dropped once it elapses.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"60m"`

	// MirrorTTL bounds how long a dashboard list mirror is kept between requests.
	MirrorTTL time.Duration `env:"SESSION_MIRROR_TTL" envDefault:"60m"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"sweetshop:"`
}

// Sanitize applies guardrails to session durations.
func (c *SessionConfig) Sanitize() {
	if c.Store == "" {
		c.Store = SessionStoreRedis
	}
	if c.TTL <= 0 {
		c.TTL = defaultSessionTTL
	}
	if c.TTL < minSessionTTL {
		c.TTL = minSessionTTL
	}
	if c.MirrorTTL <= 0 || c.MirrorTTL > c.TTL {
		c.MirrorTTL = c.TTL
	}
}

const (
	defaultRestockAmount = 10
	maxRestockAmount     = 10000
)

// DashboardConfig holds inventory dashboard behavior.
type DashboardConfig struct {
	// RestockAmount is the quantity added by the admin restock button.
	RestockAmount int `env:"DASHBOARD_RESTOCK_AMOUNT" envDefault:"10"`
}

// Sanitize clamps RestockAmount to a positive, bounded value.
func (c *DashboardConfig) Sanitize() {
	if c.RestockAmount <= 0 {
		c.RestockAmount = defaultRestockAmount
	}
	if c.RestockAmount > maxRestockAmount {
		c.RestockAmount = maxRestockAmount
	}
}
