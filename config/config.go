// Package config declares the storefront's environment-driven settings. Each
// group lives in its own file and is parsed with github.com/caarlos0/env.
package config

import "strings"

// AppConfig is the root configuration.
type AppConfig struct {
	// IsDev switches on template hot reloading and inline template errors.
	// DEV=true or NODE_ENV=development|dev enables it.
	IsDev   bool   `env:"DEV" envDefault:"false"`
	NodeEnv string `env:"NODE_ENV"`

	ShopAPI   ShopAPIConfig
	Session   SessionConfig
	Dashboard DashboardConfig
	Redis     RedisConfig `envPrefix:"REDIS_"`
	HTTP      HTTPConfig
}

// Sanitize clamps every group to usable values. Call it once after parsing.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.ShopAPI.Sanitize()
	c.Session.Sanitize()
	c.Dashboard.Sanitize()
	c.Redis.Sanitize()

	switch strings.ToLower(strings.TrimSpace(c.NodeEnv)) {
	case "development", "dev":
		c.IsDev = true
	}
}

// UsesRedis reports whether sessions and mirrors live in Redis.
func (c *AppConfig) UsesRedis() bool {
	return c.Session.Store == SessionStoreRedis
}
