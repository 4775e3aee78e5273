package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := testutil.NewSession("abc", domainauth.RoleAdmin)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Validation(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")

	err = store.Save(ctx, domainauth.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_ExpiredOnRead(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	now := testutil.TestTime()
	store.m.now = testutil.FixedTimeFunc(now)

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "s", ExpiresAt: now.Add(time.Minute)}))
	store.m.now = testutil.FixedTimeFunc(now.Add(2 * time.Minute))

	_, err := store.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_SweepsExpiredUnreadSessions(t *testing.T) {
	store := NewSessionStore()
	ctx := t.Context()
	now := testutil.TestTime()
	store.m.now = testutil.FixedTimeFunc(now)

	for i := range 1000 {
		sess := domainauth.Session{ID: fmt.Sprintf("s%d", i), ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, store.Save(ctx, sess))
	}
	require.Equal(t, 1000, store.Len())

	later := now.Add(24 * time.Hour)
	store.m.now = testutil.FixedTimeFunc(later)
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "fresh", ExpiresAt: later.Add(time.Hour)}))

	assert.Equal(t, 1, store.Len())
}

func TestMirrorStore_SweepsExpiredUnreadMirrors(t *testing.T) {
	store := NewMirrorStore(time.Minute)
	ctx := t.Context()
	now := testutil.TestTime()
	store.m.now = testutil.FixedTimeFunc(now)

	require.NoError(t, store.Save(ctx, "gone-1", model.NewMirror(nil, now)))
	require.NoError(t, store.Save(ctx, "gone-2", model.NewMirror(nil, now)))

	store.m.now = testutil.FixedTimeFunc(now.Add(time.Hour))
	require.NoError(t, store.Save(ctx, "kept", model.NewMirror(nil, now)))

	assert.Equal(t, 1, store.m.len())
}

func TestExpiring_SweepIsThrottled(t *testing.T) {
	e := newExpiring[int]()
	now := testutil.TestTime()
	e.now = testutil.FixedTimeFunc(now)

	e.put("a", 1, now.Add(time.Second))
	e.now = testutil.FixedTimeFunc(now.Add(2 * time.Second))
	e.put("b", 2, now.Add(time.Hour))
	assert.Equal(t, 2, e.len(), "no sweep before sweepInterval has passed")

	e.now = testutil.FixedTimeFunc(now.Add(sweepInterval))
	e.put("c", 3, now.Add(time.Hour))
	assert.Equal(t, 2, e.len())
}

func TestMirrorStore_IsolatesCallerCopies(t *testing.T) {
	store := NewMirrorStore(time.Minute)
	ctx := context.Background()

	m := model.NewMirror(testutil.SampleSweets(), time.Now())
	require.NoError(t, store.Save(ctx, "s1", m))

	m.Sweets[0].Quantity = 999

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Sweets[0].Quantity)

	got.Sweets[0].Quantity = 111
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, again.Sweets[0].Quantity)
}

func TestMirrorStore_Expiry(t *testing.T) {
	store := NewMirrorStore(time.Minute)
	ctx := context.Background()
	now := testutil.TestTime()
	store.m.now = testutil.FixedTimeFunc(now)

	require.NoError(t, store.Save(ctx, "s1", model.NewMirror(nil, now)))
	store.m.now = testutil.FixedTimeFunc(now.Add(time.Minute))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMirrorStore_ConcurrentAccess(t *testing.T) {
	store := NewMirrorStore(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "shared", model.NewMirror(testutil.SampleSweets(), time.Now()))
			_, _ = store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, got.Sweets, 3)
}
