package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"time"
)

const (
	// DefaultCSRFCookieName names both the token cookie and the hidden form field.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is the header htmx sends the token in (canonical form).
	DefaultCSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes = 32
	csrfCookieTTL  = 12 * time.Hour
)

// CSRFConfig holds configuration for CSRFProtection. Zero fields take the defaults.
type CSRFConfig struct {
	CookieName   string
	HeaderName   string
	CookieDomain string
}

type csrfGuard struct {
	cookie string
	header string
	domain string
}

// CSRFProtection guards state-changing requests with a double-submit cookie.
// Every visitor gets a token cookie on first contact, and templates read the
// token from the request context. Unsafe methods must echo it back in the
// header (htmx) or in the csrf_token field of a form post.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	g := csrfGuard{cookie: cfg.CookieName, header: cfg.HeaderName, domain: cfg.CookieDomain}
	if g.cookie == "" {
		g.cookie = DefaultCSRFCookieName
	}
	if g.header == "" {
		g.header = DefaultCSRFHeaderName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, issued, err := g.token(w, r)
			if err != nil {
				http.Error(w, "unable to issue CSRF token", http.StatusInternalServerError)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			// A token minted on this request cannot have been submitted with it.
			if !isSafeMethod(r.Method) && (issued || !g.matches(r, token)) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// token returns the visitor's token, minting and setting a cookie when absent.
func (g csrfGuard) token(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	if c, err := r.Cookie(g.cookie); err == nil && c.Value != "" {
		return c.Value, false, nil
	}

	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", false, fmt.Errorf("read random bytes: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     g.cookie,
		Value:    token,
		Path:     "/",
		Domain:   g.domain,
		HttpOnly: false, // the layout hands it to htmx
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(csrfCookieTTL / time.Second),
	})
	return token, true, nil
}

func (g csrfGuard) matches(r *http.Request, want string) bool {
	got := r.Header.Get(g.header)
	if got == "" && isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			return false
		}
		got = r.PostFormValue(DefaultCSRFCookieName)
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func isFormPost(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token placed in the request context by CSRFProtection.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
