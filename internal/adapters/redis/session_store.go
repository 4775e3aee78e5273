package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

const sessionKeySpace = "session:"

// SessionStore keeps sessions in Redis. Keys expire at the session's ExpiresAt.
type SessionStore struct {
	store jsonStore[domainauth.Session]
	now   func() time.Time
}

// NewSessionStore creates a Redis session store with un-namespaced keys.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "")
}

// NewSessionStoreWithPrefix creates a Redis session store whose keys are namespaced by prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		store: jsonStore[domainauth.Session]{client: client, prefix: prefix + sessionKeySpace, kind: "session"},
		now:   time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if sess.ID != "" && ttl <= 0 {
		return errors.New("session is expired")
	}
	return s.store.put(ctx, sess.ID, sess, ttl)
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	sess, err := s.store.get(ctx, id)
	if err != nil {
		return domainauth.Session{}, err
	}
	// Key TTL and ExpiresAt can drift by clock skew between replicas.
	if sess.Expired(s.now()) {
		if err := s.store.del(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.store.del(ctx, id)
}
