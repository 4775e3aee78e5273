// Package memory provides in-process session and mirror stores for single-instance
// deployments and tests.
package memory

import (
	"sync"
	"time"

	"github.com/DimpleKundu/incubyte-sweet-shop/internal/ports"
)

// ErrNotFound is returned when a session or mirror is not present.
var ErrNotFound = ports.ErrNotFound

type slot[V any] struct {
	val   V
	until time.Time
}

// sweepInterval bounds how often put scans the whole map for expired slots.
const sweepInterval = time.Minute

// expiring is a map whose entries vanish once their deadline passes. A read
// evicts the expired entry it finds; put also sweeps every expired entry at
// most once per sweepInterval, so keys nobody reads again do not pile up.
type expiring[V any] struct {
	mu        sync.Mutex
	slots     map[string]slot[V]
	now       func() time.Time
	nextSweep time.Time
}

func newExpiring[V any]() *expiring[V] {
	return &expiring[V]{slots: make(map[string]slot[V]), now: time.Now}
}

func (e *expiring[V]) put(key string, v V, until time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if now := e.now(); !now.Before(e.nextSweep) {
		e.sweep(now)
		e.nextSweep = now.Add(sweepInterval)
	}
	e.slots[key] = slot[V]{val: v, until: until}
}

// sweep drops expired slots. The caller holds mu.
func (e *expiring[V]) sweep(now time.Time) {
	for k, s := range e.slots {
		if !s.until.After(now) {
			delete(e.slots, k)
		}
	}
}

func (e *expiring[V]) get(key string) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.slots[key]
	if ok && !s.until.After(e.now()) {
		delete(e.slots, key)
		ok = false
	}
	return s.val, ok
}

func (e *expiring[V]) drop(key string) {
	e.mu.Lock()
	delete(e.slots, key)
	e.mu.Unlock()
}

func (e *expiring[V]) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.slots)
}
