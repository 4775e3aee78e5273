package config

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig configures the storefront's own listener and cookies.
type HTTPConfig struct {
	Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain scopes the session and CSRF cookies. Empty means host-only.
	CookieDomain string `env:"APP_COOKIE_DOMAIN"`

	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"` // gzip 1..9
}

// Sanitize clamps the gzip level and normalizes the cookie domain.
func (h *HTTPConfig) Sanitize() {
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
	h.CookieDomain = cookieDomain(h.CookieDomain)
}

// cookieDomain lowercases d and drops it when it is a bare public suffix such
// as "com" or "co.uk"; browsers refuse cookies scoped that wide.
func cookieDomain(d string) string {
	d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), ".")
	if d == "" {
		return ""
	}
	if suffix, _ := publicsuffix.PublicSuffix(d); suffix == d {
		return ""
	}
	return d
}
