package core

import (
	"context"
	"testing"

	"github.com/huangsam/moodmixer/core/algo"
	"github.com/huangsam/moodmixer/core/mood"
	"github.com/huangsam/moodmixer/internal/catalog"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/iocache"
	"github.com/huangsam/moodmixer/internal/pos"
	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionConfig(t *testing.T) *contract.Config {
	t.Helper()
	model, ok := schema.GetModel(schema.ClassicModel)
	require.True(t, ok)
	return &contract.Config{
		ModelName:   schema.ClassicModel,
		Model:       model,
		Policy:      schema.DominantPolicy,
		ResultLimit: contract.DefaultResultLimit,
		GroupSize:   1,
		Seed:        42,
		Precision:   1,
		Output:      schema.JSONOut,
		Pricing:     schema.DifficultyPricing,
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(sessionConfig(t), catalog.SampleDrinks(), catalog.SampleBars(), iocache.NewMemoryProfileStore())
}

func drinkNames(results []schema.ScoredDrink) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Drink.Name
	}
	return names
}

func TestSessionSetMood(t *testing.T) {
	tests := []struct {
		name    string
		dim     string
		value   int
		wantErr bool
	}{
		{"classic name", "energetic", 9, false},
		{"social alias resolves by meaning", "Energy", 9, false},
		{"padded name", "  energetic ", 9, false},
		{"unknown", "grumpy", 9, true},
		{"social only name has no classic twin", "social", 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			err := s.SetMood(tt.dim, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, mood.ErrUnknownDimension)
				return
			}
			require.NoError(t, err)
			energetic, _ := s.Vector.Get(schema.Energetic)
			cozy, _ := s.Vector.Get(schema.Cozy)
			assert.Equal(t, 9, energetic)
			assert.Equal(t, 4, cozy)
		})
	}
}

func TestSessionRecommendRanksByMood(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SetMood("energetic", 10))

	results := s.Recommend()
	assert.Equal(t, []string{"Classic Margarita", "Mojito", "Old Fashioned"}, drinkNames(results))
	assert.InDelta(t, 8.45, results[0].Score, 0.01)
	assert.Contains(t, s.Summary(results), "3 recommendations | Dominant: energetic (10/10)")
}

func TestSessionGroupSizeScalesScores(t *testing.T) {
	solo := newTestSession(t)
	group := newTestSession(t)
	group.SetGroupSize(2)
	for _, s := range []*Session{solo, group} {
		require.NoError(t, s.SetMood("energetic", 10))
	}

	soloResults := solo.Recommend()
	groupResults := group.Recommend()
	assert.Equal(t, drinkNames(soloResults), drinkNames(groupResults))
	for i := range soloResults {
		assert.InDelta(t, soloResults[i].Score*1.2, groupResults[i].Score, 1e-9)
	}

	group.SetGroupSize(0)
	assert.Equal(t, 1, group.GroupSize)
}

func TestSessionOccasion(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.ApplyOccasion("date-night"))
	assert.Equal(t, map[schema.Dimension]int{
		schema.Energetic:   4,
		schema.Relaxed:     5,
		schema.Romantic:    9,
		schema.Adventurous: 3,
		schema.Celebratory: 4,
		schema.Cozy:        7,
	}, s.Vector.Values())
	assert.Contains(t, s.ShareVibe(), "Group: 1 people, date-night")

	assert.ErrorIs(t, s.ApplyOccasion("funeral"), ErrUnknownOccasion)

	s.Reset()
	assert.Empty(t, s.Occasion)
	assert.InDelta(t, 5.0, s.Vector.Average(), 1e-9)
}

func TestNewSessionAppliesConfiguredOccasion(t *testing.T) {
	cfg := sessionConfig(t)
	cfg.Occasion = "brunch"
	s := NewSession(cfg, catalog.SampleDrinks(), nil, nil)
	assert.Equal(t, "brunch", s.Occasion)
	cozy, _ := s.Vector.Get(schema.Cozy)
	assert.Equal(t, 8, cozy)
}

func TestNewSessionIgnoresUnknownOccasion(t *testing.T) {
	cfg := sessionConfig(t)
	cfg.Occasion = "funeral"
	s := NewSession(cfg, catalog.SampleDrinks(), nil, nil)
	assert.Empty(t, s.Occasion)
	for _, st := range s.MoodState() {
		assert.Equal(t, schema.NeutralMoodValue, st.Value, st.Dimension)
	}
}

func TestSessionDefaultsWhenConfigIsSparse(t *testing.T) {
	s := NewSession(&contract.Config{}, catalog.SampleDrinks(), nil, nil)
	assert.Equal(t, schema.ClassicModel, s.Model.Name)
	assert.Equal(t, algo.DefaultRecommendationLimit, s.Limit)
	assert.Equal(t, 1, s.GroupSize)
}

func TestSessionVote(t *testing.T) {
	s := newTestSession(t)

	_, agreed, err := s.Vote("ann", "cozy")
	require.NoError(t, err)
	assert.False(t, agreed, "a single vote never reaches consensus")

	winner, agreed, err := s.Vote("bo", "cozy")
	require.NoError(t, err)
	assert.True(t, agreed)
	assert.Equal(t, "cozy", winner)
	cozy, _ := s.Vector.Get(schema.Cozy)
	assert.Equal(t, 9, cozy)

	_, _, err = s.Vote("cy", "rave")
	assert.ErrorIs(t, err, algo.ErrUnknownVibe)
}

func TestSessionRandomizeIsSeeded(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	a.Randomize()
	b.Randomize()
	assert.Equal(t, a.Vector.Values(), b.Vector.Values())
	for _, v := range a.Vector.Values() {
		assert.GreaterOrEqual(t, v, schema.MinMoodValue)
		assert.LessOrEqual(t, v, schema.MaxMoodValue)
	}
}

func TestSessionFavoritesAndRecents(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	added, err := s.ToggleFavorite(ctx, 2)
	require.NoError(t, err)
	assert.True(t, added)

	_, err = s.ToggleFavorite(ctx, 99)
	assert.ErrorIs(t, err, catalog.ErrDrinkNotFound)

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Old Fashioned", favs[0].Name)

	for _, id := range []int{1, 3} {
		_, err := s.View(ctx, id)
		require.NoError(t, err)
	}
	recents, err := s.Recents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mojito", recents[0].Name)
	assert.Equal(t, "Classic Margarita", recents[1].Name)

	_, err = s.View(ctx, 42)
	assert.ErrorIs(t, err, catalog.ErrDrinkNotFound)
}

func TestSessionResolveDropsUnknownIDs(t *testing.T) {
	store := &iocache.MockProfileStore{}
	store.On("Favorites", mock.Anything).Return([]int{3, 404, 1}, nil)

	s := NewSession(sessionConfig(t), catalog.SampleDrinks(), nil, store)
	favs, err := s.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, 3, favs[0].ID)
	assert.Equal(t, 1, favs[1].ID)
	store.AssertExpectations(t)
}

func TestSessionWithoutStore(t *testing.T) {
	ctx := context.Background()
	s := NewSession(sessionConfig(t), catalog.SampleDrinks(), nil, nil)

	_, err := s.ToggleFavorite(ctx, 1)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.Favorites(ctx)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = s.Recents(ctx)
	assert.ErrorIs(t, err, ErrNoStore)

	d, err := s.Surprise(ctx)
	require.NoError(t, err, "surprise works without favorites")
	assert.NotZero(t, d.ID)

	_, err = s.View(ctx, 1)
	assert.NoError(t, err)
}

func TestSessionSurpriseSkipsFavorites(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	for _, id := range []int{1, 3} {
		_, err := s.ToggleFavorite(ctx, id)
		require.NoError(t, err)
	}
	d, err := s.Surprise(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ID)

	_, err = s.ToggleFavorite(ctx, 2)
	require.NoError(t, err)
	_, err = s.Surprise(ctx)
	assert.ErrorIs(t, err, algo.ErrNothingNew)
}

func TestSessionSearchAndBrowse(t *testing.T) {
	s := newTestSession(t)

	hits := s.Search("rum")
	require.NotEmpty(t, hits)
	assert.Equal(t, "Mojito", hits[0].Drink.Name)

	easy := s.Browse(algo.Filters{Difficulty: "Easy", Spirit: algo.FilterAll})
	assert.Len(t, easy, 2)
}

func TestSessionShareDrink(t *testing.T) {
	s := newTestSession(t)
	text, err := s.ShareDrink(2)
	require.NoError(t, err)
	assert.Contains(t, text, `Just discovered "Old Fashioned"`)
	assert.Contains(t, text, "Perfect for: relaxed, romantic, cozy")

	_, err = s.ShareDrink(0)
	assert.ErrorIs(t, err, catalog.ErrDrinkNotFound)
}

func TestSessionBars(t *testing.T) {
	s := newTestSession(t)
	matches := s.MatchBars()
	require.Len(t, matches, 2, "only bars that serve cocktails")

	ids := []string{matches[0].Bar.ID, matches[1].Bar.ID}
	assert.ElementsMatch(t, []string{"copper-still", "skyline"}, ids)

	bar, err := s.Bar("skyline")
	require.NoError(t, err)
	assert.Equal(t, "Skyline Lounge", bar.Name)

	_, err = s.Bar("nowhere")
	assert.ErrorIs(t, err, catalog.ErrBarNotFound)
}

func TestSessionOrderTarget(t *testing.T) {
	s := newTestSession(t)

	d, bar, err := s.OrderTarget(2, "copper-still")
	require.NoError(t, err)
	assert.Equal(t, "Old Fashioned", d.Name)
	assert.Equal(t, "The Copper Still", bar.Name)

	_, _, err = s.OrderTarget(2, "velvet-cellar")
	assert.ErrorIs(t, err, pos.ErrBarUnavailable)
	_, _, err = s.OrderTarget(2, "nowhere")
	assert.ErrorIs(t, err, catalog.ErrBarNotFound)
	_, _, err = s.OrderTarget(99, "skyline")
	assert.ErrorIs(t, err, catalog.ErrDrinkNotFound)
}
