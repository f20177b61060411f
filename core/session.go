package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/core/mood"
	"github.com/huangsam/moodmixer/internal/catalog"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/internal/pos"
	"github.com/huangsam/moodmixer/schema"
)

// ErrNoStore is returned by profile operations when no store is configured.
var ErrNoStore = errors.New("profile store is not initialized")

// ErrUnknownOccasion is returned for an occasion name that has no preset.
var ErrUnknownOccasion = errors.New("unknown occasion")

// Session is one user's mood vector bound to a catalog, a scorer and a profile store.
// It is not safe for concurrent use; the web layer locks around each session.
type Session struct {
	Model     schema.MoodModel
	Vector    *mood.Vector
	Scorer    *algo.Scorer
	Poll      *algo.Poll
	Catalog   []schema.Drink
	Bars      []schema.Bar
	Store     contract.ProfileStore
	Limit     int
	GroupSize int
	Occasion  string

	rng *rand.Rand
}

// NewRand returns a PCG source for seed. A zero seed uses the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSession builds a session from cfg. The occasion preset, when set, is applied.
func NewSession(cfg *contract.Config, drinks []schema.Drink, bars []schema.Bar, store contract.ProfileStore) *Session {
	model := cfg.Model
	if len(model.Dimensions) == 0 {
		model, _ = schema.GetModel(schema.ClassicModel)
	}
	rng := NewRand(cfg.Seed)

	scorer := algo.NewScorer(model, cfg.Policy, rng)
	if len(cfg.ComputedWeights) > 0 {
		scorer.Weights = cfg.ComputedWeights
	}
	scorer.GroupSize = max(cfg.GroupSize, 1)

	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = algo.DefaultRecommendationLimit
	}

	s := &Session{
		Model:     model,
		Vector:    mood.NewVector(model),
		Scorer:    scorer,
		Poll:      algo.NewPoll(),
		Catalog:   drinks,
		Bars:      bars,
		Store:     store,
		Limit:     limit,
		GroupSize: scorer.GroupSize,
		rng:       rng,
	}
	// Configs from ProcessAndValidate carry a known occasion; hand-built ones may not.
	if cfg.Occasion != "" {
		if err := s.ApplyOccasion(cfg.Occasion); err != nil {
			logging.Warn().Err(err).Msg("Ignoring configured occasion")
		}
	}
	return s
}

// LoadSession reads the configured catalog and bar files and builds a session.
func LoadSession(cfg *contract.Config, store contract.ProfileStore) *Session {
	return NewSession(cfg, catalog.LoadDrinksOrSample(cfg.CatalogFile), catalog.LoadBarsOrSample(cfg.BarsFile), store)
}

// --- Mood ---

// SetMood sets one dimension by name and propagates the change. Names from the
// other built-in model resolve by meaning.
func (s *Session) SetMood(name string, value int) error {
	dim, ok := s.Model.Resolve(schema.Dimension(strings.ToLower(strings.TrimSpace(name))))
	if !ok {
		return fmt.Errorf("%w: %s", mood.ErrUnknownDimension, name)
	}
	return s.Vector.Set(dim, value)
}

// Reset puts the mood back to neutral and forgets the occasion.
func (s *Session) Reset() {
	s.Vector.Reset()
	s.Occasion = ""
}

// Randomize draws a random mood.
func (s *Session) Randomize() {
	s.Vector.Randomize(s.rng)
}

// ApplyOccasion applies an occasion preset.
func (s *Session) ApplyOccasion(name string) error {
	preset, ok := schema.Occasions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOccasion, name)
	}
	s.Vector.ApplyPreset(preset.ToValues(s.Model))
	s.Occasion = name
	return nil
}

// SetGroupSize changes the party size used to scale scores.
func (s *Session) SetGroupSize(size int) {
	s.GroupSize = max(size, 1)
	s.Scorer.GroupSize = s.GroupSize
}

// Vote records a poll vote and applies the winning vibe once there is consensus.
// It returns the applied vibe, if any.
func (s *Session) Vote(voter, vibe string) (string, bool, error) {
	if err := s.Poll.Vote(voter, vibe); err != nil {
		return "", false, err
	}
	winner, ok := s.Poll.Consensus()
	if ok {
		s.Vector.ApplyPreset(schema.Vibes[winner].ToValues(s.Model))
	}
	return winner, ok, nil
}

// MoodState returns the vector in model order.
func (s *Session) MoodState() []schema.DimensionState {
	return s.Vector.Snapshot()
}

// Stats returns the status line for the current mood.
func (s *Session) Stats() string {
	return algo.StatusText(s.Model.Dimensions, s.Vector.Values())
}

// --- Drinks ---

// Recommend scores the catalog against the current mood.
func (s *Session) Recommend() []schema.ScoredDrink {
	return s.Scorer.Recommend(s.Vector.Values(), s.Catalog, s.Limit)
}

// Summary combines the result count with the status line.
func (s *Session) Summary(results []schema.ScoredDrink) string {
	return fmt.Sprintf("%s | %s", algo.CountText(len(results)), s.Stats())
}

// Search ranks drinks by keyword relevance.
func (s *Session) Search(query string) []schema.SearchResult {
	return algo.Search(s.Catalog, query, algo.DefaultSearchLimit)
}

// Browse filters the catalog.
func (s *Session) Browse(f algo.Filters) []schema.Drink {
	return algo.Filter(s.Catalog, f)
}

// Drink looks a drink up by id.
func (s *Session) Drink(id int) (schema.Drink, error) {
	d, ok := algo.FindDrink(s.Catalog, id)
	if !ok {
		return schema.Drink{}, fmt.Errorf("%w: %d", catalog.ErrDrinkNotFound, id)
	}
	return d, nil
}

// View returns a drink and records it as recently viewed.
func (s *Session) View(ctx context.Context, id int) (schema.Drink, error) {
	d, err := s.Drink(id)
	if err != nil {
		return schema.Drink{}, err
	}
	if s.Store != nil {
		if err := s.Store.AddRecent(ctx, id); err != nil {
			return schema.Drink{}, fmt.Errorf("failed to record recent drink: %w", err)
		}
	}
	return d, nil
}

// Surprise picks a random drink that is not already a favorite.
func (s *Session) Surprise(ctx context.Context) (schema.Drink, error) {
	var favorites []int
	if s.Store != nil {
		var err error
		if favorites, err = s.Store.Favorites(ctx); err != nil {
			return schema.Drink{}, fmt.Errorf("failed to read favorites: %w", err)
		}
	}
	return algo.Surprise(s.Catalog, favorites, s.rng)
}

// ToggleFavorite flips a drink's favorite flag and reports whether it is now a favorite.
func (s *Session) ToggleFavorite(ctx context.Context, id int) (bool, error) {
	if s.Store == nil {
		return false, ErrNoStore
	}
	if _, err := s.Drink(id); err != nil {
		return false, err
	}
	return s.Store.ToggleFavorite(ctx, id)
}

// Favorites returns favorite drinks, oldest first.
func (s *Session) Favorites(ctx context.Context) ([]schema.Drink, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	ids, err := s.Store.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveDrinks(ids), nil
}

// Recents returns recently viewed drinks, newest first.
func (s *Session) Recents(ctx context.Context) ([]schema.Drink, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	ids, err := s.Store.Recents(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveDrinks(ids), nil
}

// resolveDrinks maps ids to catalog drinks, dropping ids the catalog no longer has.
func (s *Session) resolveDrinks(ids []int) []schema.Drink {
	out := make([]schema.Drink, 0, len(ids))
	for _, id := range ids {
		if d, ok := algo.FindDrink(s.Catalog, id); ok {
			out = append(out, d)
		}
	}
	return out
}

// ShareDrink returns the share text for a drink.
func (s *Session) ShareDrink(id int) (string, error) {
	d, err := s.Drink(id)
	if err != nil {
		return "", err
	}
	return algo.DrinkShareText(s.Model, d), nil
}

// ShareVibe returns the share text for the current mood.
func (s *Session) ShareVibe() string {
	return algo.VibeShareText(s.Model, s.Vector.Values(), s.GroupSize, s.Occasion)
}

// --- Bars ---

// MatchBars ranks the bars that serve cocktails against the current mood.
func (s *Session) MatchBars() []schema.BarMatch {
	return algo.MatchBars(s.Model, s.Vector.Values(), algo.AvailableBars(s.Bars), 0)
}

// Bar looks a bar up by id.
func (s *Session) Bar(id string) (schema.Bar, error) {
	bar, ok := algo.FindBar(s.Bars, id)
	if !ok {
		return schema.Bar{}, fmt.Errorf("%w: %s", catalog.ErrBarNotFound, id)
	}
	return bar, nil
}

// OrderTarget resolves a drink and a bar for an order. The bar must serve cocktails.
func (s *Session) OrderTarget(drinkID int, barID string) (schema.Drink, schema.Bar, error) {
	d, err := s.Drink(drinkID)
	if err != nil {
		return schema.Drink{}, schema.Bar{}, err
	}
	bar, err := s.Bar(barID)
	if err != nil {
		return schema.Drink{}, schema.Bar{}, err
	}
	if _, ok := algo.FindBar(algo.AvailableBars(s.Bars), barID); !ok {
		return schema.Drink{}, schema.Bar{}, fmt.Errorf("%w: %s", pos.ErrBarUnavailable, bar.Name)
	}
	return d, bar, nil
}
