// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/moodmixer/schema"
)

// ProfileStore persists favorites, recently viewed drinks and order history.
// This allows the persistence layer to be mocked for testing.
type ProfileStore interface {
	// ToggleFavorite adds or removes a drink and reports whether it is now a favorite.
	ToggleFavorite(ctx context.Context, drinkID int) (bool, error)

	// Favorites returns favorite drink ids, oldest first.
	Favorites(ctx context.Context) ([]int, error)

	// AddRecent records a view at the front of the recents list, unless it is already present.
	AddRecent(ctx context.Context, drinkID int) error

	// Recents returns recently viewed drink ids, newest first.
	Recents(ctx context.Context) ([]int, error)

	// RecordOrder appends a completed order.
	RecordOrder(ctx context.Context, order schema.Order) error

	// Orders returns the most recent orders, newest first. A limit of zero returns all.
	Orders(ctx context.Context, limit int) ([]schema.Order, error)

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// OutputWriter renders engine results for the CLI.
// This allows output to be swapped out in orchestration tests.
type OutputWriter interface {
	WriteRecommendations(results []schema.ScoredDrink, summary string, cfg *Config) error
	WriteSearchResults(results []schema.SearchResult, cfg *Config) error
	WriteDrinks(drinks []schema.Drink, title string, cfg *Config) error
	WriteMood(states []schema.DimensionState, stats string, cfg *Config) error
	WriteBarMatches(matches []schema.BarMatch, cfg *Config) error
	WriteOrders(orders []schema.Order, cfg *Config) error
}

// StoreManager hands out the active profile store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetProfileStore() ProfileStore
}
