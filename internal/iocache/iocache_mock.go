package iocache

import (
	"context"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetProfileStore implements the StoreManager interface.
func (m *MockStoreManager) GetProfileStore() contract.ProfileStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ProfileStore)
	return store
}

// MockProfileStore is a mock implementation of ProfileStore for testing.
type MockProfileStore struct {
	mock.Mock
}

var _ contract.ProfileStore = &MockProfileStore{} // Compile-time check

// ToggleFavorite implements the ProfileStore interface.
func (m *MockProfileStore) ToggleFavorite(ctx context.Context, drinkID int) (bool, error) {
	args := m.Called(ctx, drinkID)
	return args.Bool(0), args.Error(1)
}

// Favorites implements the ProfileStore interface.
func (m *MockProfileStore) Favorites(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int)
	return ids, args.Error(1)
}

// AddRecent implements the ProfileStore interface.
func (m *MockProfileStore) AddRecent(ctx context.Context, drinkID int) error {
	args := m.Called(ctx, drinkID)
	return args.Error(0)
}

// Recents implements the ProfileStore interface.
func (m *MockProfileStore) Recents(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int)
	return ids, args.Error(1)
}

// RecordOrder implements the ProfileStore interface.
func (m *MockProfileStore) RecordOrder(ctx context.Context, order schema.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// Orders implements the ProfileStore interface.
func (m *MockProfileStore) Orders(ctx context.Context, limit int) ([]schema.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]schema.Order)
	return orders, args.Error(1)
}

// GetStatus implements the ProfileStore interface.
func (m *MockProfileStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ProfileStore interface.
func (m *MockProfileStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
