package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
)

const (
	mirrorKeySpace   = "mirror:"
	defaultMirrorTTL = time.Hour
)

// MirrorStore keeps each session's sweet list mirror in Redis. Every save
// restarts the TTL.
type MirrorStore struct {
	store jsonStore[model.Mirror]
	ttl   time.Duration
}

// MirrorStoreOptions configures a MirrorStore.
type MirrorStoreOptions struct {
	Client redis.UniversalClient
	Prefix string
	TTL    time.Duration // defaults to one hour
}

// NewMirrorStore creates a Redis-based mirror store.
func NewMirrorStore(opts MirrorStoreOptions) *MirrorStore {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultMirrorTTL
	}
	return &MirrorStore{
		store: jsonStore[model.Mirror]{client: opts.Client, prefix: opts.Prefix + mirrorKeySpace, kind: "mirror"},
		ttl:   ttl,
	}
}

func (s *MirrorStore) Save(ctx context.Context, sessionID string, m model.Mirror) error {
	return s.store.put(ctx, sessionID, m, s.ttl)
}

// Get returns the stored mirror. An empty list comes back as a non-nil slice.
func (s *MirrorStore) Get(ctx context.Context, sessionID string) (model.Mirror, error) {
	m, err := s.store.get(ctx, sessionID)
	if err != nil {
		return model.Mirror{}, err
	}
	if m.Sweets == nil {
		m.Sweets = []model.Sweet{}
	}
	return m, nil
}

func (s *MirrorStore) Delete(ctx context.Context, sessionID string) error {
	return s.store.del(ctx, sessionID)
}
