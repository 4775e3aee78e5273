package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

// isSecureRequest reports whether the visitor reached us over HTTPS, either
// directly or through a proxy that sets X-Forwarded-Proto (possibly a list).
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for proto := range strings.SplitSeq(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

func sessionCookie(r *http.Request, domain, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// setSessionCookie issues the session cookie so it lapses with the session.
func setSessionCookie(w http.ResponseWriter, r *http.Request, domain string, s domainauth.Session) {
	maxAge := max(int(time.Until(s.ExpiresAt).Seconds()), 1)
	http.SetCookie(w, sessionCookie(r, domain, s.ID, maxAge))
}

// clearSessionCookie tells the browser to drop the session cookie now.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	c := sessionCookie(r, domain, "", -1)
	c.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, c)
}

func sessionIDFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// localRedirect returns candidate when it is a path on this site, else
// fallback. Absolute and scheme-relative URLs ("//evil", "/\evil") are refused.
func localRedirect(candidate, fallback string) string {
	if candidate == "" || strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return candidate
}

// localPathOf reduces a full URL header such as Hx-Current-Url or Referer to
// its local path and query, or "" when nothing safe remains.
func localPathOf(raw string) string {
	u, err := url.Parse(raw)
	switch {
	case raw == "" || err != nil:
		return ""
	case u.IsAbs():
		return localRedirect(u.RequestURI(), "")
	case u.Host != "":
		return ""
	default:
		return localRedirect(raw, "")
	}
}
