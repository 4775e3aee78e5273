package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "/dashboard?q=kaju", want: "/dashboard?q=kaju"},
		{in: "", want: "/fallback"},
		{in: "//evil.example.com", want: "/fallback"},
		{in: `/\evil.example.com`, want: "/fallback"},
		{in: "https://evil.example.com/x", want: "/fallback"},
		{in: "dashboard", want: "/fallback"},
		{in: "javascript:alert(1)", want: "/fallback"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localRedirect(tt.in, "/fallback"), "localRedirect(%q)", tt.in)
	}
}

func TestLocalPathOf(t *testing.T) {
	assert.Equal(t, "/dashboard?q=1", localPathOf("https://shop.example.com/dashboard?q=1"))
	assert.Equal(t, "/sweets/new", localPathOf("/sweets/new"))
	assert.Empty(t, localPathOf("//evil.example.com/x"))
	assert.Empty(t, localPathOf("http://%zz"))
	assert.Empty(t, localPathOf(""))
}

func TestSessionCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "https://shop.example.com/login", nil)
	r.TLS = &tls.ConnectionState{}
	sess := domainauth.Session{ID: "sid", ExpiresAt: time.Now().Add(time.Hour)}

	rec := httptest.NewRecorder()
	setSessionCookie(rec, r, "shop.example.com", sess)
	c := findCookie(rec, SessionCookieName)
	require.NotNil(t, c)
	assert.Equal(t, "sid", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.InDelta(t, 3600, c.MaxAge, 5)

	expired := httptest.NewRecorder()
	setSessionCookie(expired, r, "", domainauth.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Hour)})
	assert.Equal(t, 1, findCookie(expired, SessionCookieName).MaxAge)

	cleared := httptest.NewRecorder()
	clearSessionCookie(cleared, r, "")
	c = findCookie(cleared, SessionCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestSessionIDFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, sessionIDFromRequest(r))
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	assert.Equal(t, "abc", sessionIDFromRequest(r))
}
