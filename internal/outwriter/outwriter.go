// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRecommendations prints ranked drinks using the configured output format.
func (ow *OutWriter) WriteRecommendations(results []schema.ScoredDrink, summary string, cfg *contract.Config) error {
	return WriteRecommendations(results, summary, cfg)
}

// WriteSearchResults prints search hits using the configured output format.
func (ow *OutWriter) WriteSearchResults(results []schema.SearchResult, cfg *contract.Config) error {
	return WriteSearchResults(results, cfg)
}

// WriteDrinks prints a titled drink list using the configured output format.
func (ow *OutWriter) WriteDrinks(drinks []schema.Drink, title string, cfg *contract.Config) error {
	return WriteDrinks(drinks, title, cfg)
}

// WriteMood prints the mood vector using the configured output format.
func (ow *OutWriter) WriteMood(states []schema.DimensionState, stats string, cfg *contract.Config) error {
	return WriteMood(states, stats, cfg)
}

// WriteBarMatches prints bar matches using the configured output format.
func (ow *OutWriter) WriteBarMatches(matches []schema.BarMatch, cfg *contract.Config) error {
	return WriteBarMatches(matches, cfg)
}

// WriteOrders prints order history using the configured output format.
func (ow *OutWriter) WriteOrders(orders []schema.Order, cfg *contract.Config) error {
	return WriteOrders(orders, cfg)
}
