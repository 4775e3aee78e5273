package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
)

// MirrorStore keeps each session's sweet list in process memory. Every Save
// restarts the entry's TTL.
type MirrorStore struct {
	m   *expiring[model.Mirror]
	ttl time.Duration
}

// NewMirrorStore creates an in-memory mirror store. A non-positive ttl means one hour.
func NewMirrorStore(ttl time.Duration) *MirrorStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MirrorStore{m: newExpiring[model.Mirror](), ttl: ttl}
}

func (s *MirrorStore) Save(_ context.Context, sessionID string, m model.Mirror) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.Sweets = slices.Clone(m.Sweets)
	if m.Sweets == nil {
		m.Sweets = []model.Sweet{}
	}
	s.m.put(sessionID, m, s.m.now().Add(s.ttl))
	return nil
}

func (s *MirrorStore) Get(_ context.Context, sessionID string) (model.Mirror, error) {
	m, ok := s.m.get(sessionID)
	if !ok {
		return model.Mirror{}, ErrNotFound
	}
	// Callers patch the list in place before saving it back.
	m.Sweets = slices.Clone(m.Sweets)
	return m, nil
}

func (s *MirrorStore) Delete(_ context.Context, sessionID string) error {
	s.m.drop(sessionID)
	return nil
}
