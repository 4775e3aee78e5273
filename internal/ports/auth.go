// Package ports defines interfaces (hexagonal ports) for the storefront.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

// ErrNotFound is returned by SessionStore and MirrorStore when nothing is stored under the ID.
var ErrNotFound = errors.New("not found")

// SessionStore persists and retrieves visitor sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// AccountAPI is the account side of the remote Sweet Shop API.
type AccountAPI interface {
	// Register creates an account; the API answers with the new user but the storefront ignores it.
	Register(ctx context.Context, creds domainauth.Credentials) error

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds domainauth.Credentials) (token string, err error)

	// Me returns the user the token belongs to.
	Me(ctx context.Context, token string) (domainauth.User, error)
}
