package httpx

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

// SessionLookup resolves a session cookie value into a live session.
type SessionLookup interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// OptionalSession attaches the visitor's session when there is one and lets
// anonymous requests through untouched.
func OptionalSession(auth SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s := lookupSession(r, auth); s != nil {
				r = r.WithContext(WithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession sends anonymous browsers to the login page and answers other
// clients with 401.
func RequireSession(auth SessionLookup) func(http.Handler) http.Handler {
	return guard(auth, "")
}

// RequireRole is RequireSession plus a role check. Visitors below role get 403.
func RequireRole(auth SessionLookup, role domainauth.Role) func(http.Handler) http.Handler {
	return guard(auth, role)
}

func guard(auth SessionLookup, role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := lookupSession(r, auth)
			switch {
			case s == nil && IsBrowserRequest(r):
				redirectToLogin(w, r)
			case s == nil:
				WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required")
			case role != "" && !s.Role.Satisfies(role) && IsBrowserRequest(r):
				denyBrowser(w, r)
			case role != "" && !s.Role.Satisfies(role):
				WriteError(w, http.StatusForbidden, "insufficient_permissions", "insufficient permissions")
			default:
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
			}
		})
	}
}

// lookupSession returns nil for a missing cookie and for any lookup failure.
func lookupSession(r *http.Request, auth SessionLookup) *domainauth.Session {
	id := sessionIDFromRequest(r)
	if id == "" {
		return nil
	}
	s, err := auth.GetSession(r.Context(), id)
	if err != nil {
		return nil
	}
	return s
}

// redirectToLogin sends the visitor to /login, remembering where they were.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	back := returnPath(r)
	if back == "" {
		back = "/dashboard"
	}
	target := "/login?redirect_uri=" + url.QueryEscape(back)

	if IsHTMX(r) {
		w.Header().Set(hxRedirect, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// returnPath picks the page to come back to after login. For htmx calls that
// is the page the fragment lives on, not the fragment URL. Non-GET requests
// without such a hint have nothing to return to.
func returnPath(r *http.Request) string {
	if IsHTMX(r) {
		for _, h := range []string{"Hx-Current-Url", "Referer"} {
			if p := localPathOf(r.Header.Get(h)); p != "" {
				return p
			}
		}
	}
	if r.Method != http.MethodGet {
		return ""
	}
	return localRedirect(r.URL.RequestURI(), "")
}

func denyBrowser(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		triggerToast(w, "Admins only", "error")
	}
	http.Error(w, "Access Denied: You don't have permission to access this resource", http.StatusForbidden)
}
