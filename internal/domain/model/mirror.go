//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"slices"
	"strings"
	"time"
)

// Mirror is the locally held copy of the sweet list for one session.
// It is refreshed on dashboard load and patched after each acknowledged
// mutation; it is only as fresh as the last of those.
type Mirror struct {
	Sweets    []Sweet   `json:"sweets"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewMirror builds a mirror from a freshly fetched list.
func NewMirror(sweets []Sweet, fetchedAt time.Time) Mirror {
	if sweets == nil {
		sweets = []Sweet{}
	}
	return Mirror{Sweets: sweets, FetchedAt: fetchedAt}
}

// Loaded reports whether m holds a fetched list rather than being the zero Mirror.
func (m Mirror) Loaded() bool { return !m.FetchedAt.IsZero() }

// Filter returns the sweets whose name contains query, ignoring case.
// A blank query returns every sweet. Order is preserved.
func (m Mirror) Filter(query string) []Sweet {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Sweet, 0, len(m.Sweets))
	for _, s := range m.Sweets {
		if q == "" || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the sweet with the given ID.
func (m Mirror) Find(id string) (Sweet, bool) {
	i := m.index(id)
	if i < 0 {
		return Sweet{}, false
	}
	return m.Sweets[i], true
}

// ApplyPurchase decrements the quantity of the matching sweet by one.
func (m *Mirror) ApplyPurchase(id string) bool {
	return m.adjust(id, -1)
}

// ApplyRestock increases the quantity of the matching sweet by amount.
func (m *Mirror) ApplyRestock(id string, amount int) bool {
	return m.adjust(id, amount)
}

// Append adds a newly created sweet at the end of the list.
func (m *Mirror) Append(s Sweet) {
	m.Sweets = append(m.Sweets, s)
}

// Replace swaps in the updated sweet with the same ID; it is a no-op when absent.
func (m *Mirror) Replace(s Sweet) bool {
	i := m.index(s.ID)
	if i < 0 {
		return false
	}
	m.Sweets[i] = s
	return true
}

// Remove drops the sweet with the given ID.
func (m *Mirror) Remove(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.Sweets = slices.Delete(m.Sweets, i, i+1)
	return true
}

func (m *Mirror) adjust(id string, delta int) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.Sweets[i].Quantity += delta
	return true
}

func (m Mirror) index(id string) int {
	return slices.IndexFunc(m.Sweets, func(s Sweet) bool { return s.ID == id })
}
