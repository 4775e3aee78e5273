package httpx

import (
	"context"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

type sessionKey struct{}

// WithSession attaches the visitor's session to ctx. A nil session leaves ctx as is.
func WithSession(ctx context.Context, s *domainauth.Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) (*domainauth.Session, bool) {
	s, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s, s != nil
}

// CurrentSession returns the session placed by the auth middleware, or nil
// for anonymous requests.
func CurrentSession(ctx context.Context) *domainauth.Session {
	s, _ := sessionFrom(ctx)
	return s
}

// IsAdmin reports whether ctx carries an admin session. The storefront only
// uses this to show admin controls; the Shop API enforces the role itself.
func IsAdmin(ctx context.Context) bool {
	s, ok := sessionFrom(ctx)
	return ok && s.IsAdmin()
}
