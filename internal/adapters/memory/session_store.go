package memory

import (
	"context"
	"errors"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
)

// SessionStore keeps sessions in process memory until their ExpiresAt.
type SessionStore struct {
	m *expiring[domainauth.Session]
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{m: newExpiring[domainauth.Session]()}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	switch {
	case sess.ID == "":
		return errors.New("session ID cannot be empty")
	case sess.Expired(s.m.now()):
		return errors.New("session is expired")
	}
	s.m.put(sess.ID, sess, sess.ExpiresAt)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	sess, ok := s.m.get(id)
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.m.drop(id)
	return nil
}

// Len counts stored sessions, including expired ones not yet read.
func (s *SessionStore) Len() int { return s.m.len() }
