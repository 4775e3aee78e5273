package config

import (
	"strings"
	"time"
)

const (
	minShopAPITimeout     = time.Second
	defaultErrorDetailKey = "detail"
)

// ShopAPIConfig describes the remote Sweet Shop REST API.
type ShopAPIConfig struct {
	// BaseURL is the API root including any path prefix (e.g., "http://127.0.0.1:8000/api").
	BaseURL string `env:"SHOP_API_URL,required"`

	// Timeout bounds every outbound API call.
	Timeout time.Duration `env:"SHOP_API_TIMEOUT" envDefault:"10s"`

	// ErrorDetailPath is a JMESPath expression locating the human-readable
	// message inside an API error body.
	ErrorDetailPath string `env:"SHOP_API_ERROR_DETAIL_PATH" envDefault:"detail"`
}

// Sanitize normalises the base URL and enforces a minimum timeout.
func (c *ShopAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout < minShopAPITimeout {
		c.Timeout = minShopAPITimeout
	}
	c.ErrorDetailPath = strings.TrimSpace(c.ErrorDetailPath)
	if c.ErrorDetailPath == "" {
		c.ErrorDetailPath = defaultErrorDetailKey
	}
}
