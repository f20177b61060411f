package iocache

import (
	"context"
	"slices"
	"sync"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
)

// MemoryProfileStore keeps profile data for the lifetime of the process.
// It backs the none backend.
type MemoryProfileStore struct {
	mu        sync.Mutex
	favorites []int
	recents   []int
	orders    []schema.Order
}

var _ contract.ProfileStore = &MemoryProfileStore{} // Compile-time check

// NewMemoryProfileStore returns an empty in-memory store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{}
}

// ToggleFavorite implements the ProfileStore interface.
func (m *MemoryProfileStore) ToggleFavorite(_ context.Context, drinkID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.Index(m.favorites, drinkID); i >= 0 {
		m.favorites = slices.Delete(m.favorites, i, i+1)
		return false, nil
	}
	m.favorites = append(m.favorites, drinkID)
	return true, nil
}

// Favorites implements the ProfileStore interface.
func (m *MemoryProfileStore) Favorites(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites), nil
}

// AddRecent implements the ProfileStore interface.
func (m *MemoryProfileStore) AddRecent(_ context.Context, drinkID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.recents, drinkID) {
		return nil
	}
	m.recents = slices.Insert(m.recents, 0, drinkID)
	if len(m.recents) > MaxRecents {
		m.recents = m.recents[:MaxRecents]
	}
	return nil
}

// Recents implements the ProfileStore interface.
func (m *MemoryProfileStore) Recents(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recents), nil
}

// RecordOrder implements the ProfileStore interface.
func (m *MemoryProfileStore) RecordOrder(_ context.Context, order schema.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = slices.Insert(m.orders, 0, order)
	return nil
}

// Orders implements the ProfileStore interface.
func (m *MemoryProfileStore) Orders(_ context.Context, limit int) ([]schema.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.orders)
	if limit > 0 && limit < n {
		n = limit
	}
	return slices.Clone(m.orders[:n]), nil
}

// GetStatus implements the ProfileStore interface.
func (m *MemoryProfileStore) GetStatus(context.Context) (schema.StoreStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := schema.StoreStatus{
		Backend:   string(schema.NoneBackend),
		Favorites: len(m.favorites),
		Recents:   len(m.recents),
		Orders:    len(m.orders),
	}
	if len(m.orders) > 0 {
		status.LastOrderTime = m.orders[0].OrderedAt
	}
	return status, nil
}

// Close implements the ProfileStore interface.
func (m *MemoryProfileStore) Close() error {
	return nil
}
