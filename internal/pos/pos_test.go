package pos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/moodmixer/internal/iocache"
	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f"}
	tests := []struct {
		name     string
		policy   schema.PricingPolicy
		drink    schema.Drink
		bar      schema.Bar
		expected float64
	}{
		{"easy at neutral bar", schema.DifficultyPricing, schema.Drink{Difficulty: "Easy"}, schema.Bar{Type: "Wine Bar"}, 8},
		{"medium at craft bar", schema.DifficultyPricing, schema.Drink{Difficulty: "Medium"}, schema.Bar{Type: "Craft Cocktail Bar"}, 11},
		{"hard at upscale lounge", schema.DifficultyPricing, schema.Drink{Difficulty: "Hard"}, schema.Bar{Type: "Upscale Lounge"}, 13},
		{"easy at sports bar", schema.DifficultyPricing, schema.Drink{Difficulty: "Easy"}, schema.Bar{Type: "Sports Bar"}, 7},
		{"hard at pub", schema.DifficultyPricing, schema.Drink{Difficulty: "Hard"}, schema.Bar{Type: "Irish Pub"}, 10},
		{"empty policy uses difficulty", "", schema.Drink{Difficulty: "Hard"}, schema.Bar{}, 11},
		{"few ingredients", schema.IngredientsPricing, schema.Drink{Ingredients: many[:5], Difficulty: "Hard"}, schema.Bar{Type: "Upscale"}, 8},
		{"many ingredients", schema.IngredientsPricing, schema.Drink{Ingredients: many}, schema.Bar{}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Price(tt.policy, tt.drink, tt.bar), 1e-9)
		})
	}
}

func TestQuote(t *testing.T) {
	term := NewTerminal(nil, "", 0)
	assert.Equal(t, "$11.00", term.Quote(schema.Drink{Difficulty: "Hard"}, schema.Bar{}))
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	drink := schema.Drink{ID: 1, Name: "Classic Margarita", Difficulty: "Medium"}
	bar := schema.Bar{ID: "skyline", Name: "Skyline Lounge", Type: "Upscale Cocktail Lounge", MerchantID: "toast-1"}

	store := iocache.NewMemoryProfileStore()
	term := NewTerminal(store, schema.DifficultyPricing, 0)
	fixed := time.Date(2026, 5, 1, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))
	term.now = func() time.Time { return fixed }

	order, err := term.PlaceOrder(ctx, drink, bar)
	require.NoError(t, err)

	_, err = uuid.Parse(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, 1, order.DrinkID)
	assert.Equal(t, "Skyline Lounge", order.BarName)
	assert.Equal(t, "toast-1", order.MerchantID)
	assert.InDelta(t, 11.0, order.Price, 1e-9)
	assert.Equal(t, time.UTC, order.OrderedAt.Location())
	assert.True(t, fixed.Equal(order.OrderedAt))

	history, err := store.Orders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.OrderID, history[0].OrderID)
}

func TestPlaceOrderHonorsDelay(t *testing.T) {
	term := NewTerminal(nil, schema.DifficultyPricing, 20*time.Millisecond)
	start := time.Now()
	_, err := term.PlaceOrder(context.Background(), schema.Drink{ID: 1}, schema.Bar{ID: "b"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPlaceOrderCancelled(t *testing.T) {
	store := iocache.NewMemoryProfileStore()

	t.Run("during delay", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		term := NewTerminal(store, schema.DifficultyPricing, time.Minute)
		_, err := term.PlaceOrder(ctx, schema.Drink{ID: 1}, schema.Bar{ID: "b"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		term := NewTerminal(store, schema.DifficultyPricing, 0)
		_, err := term.PlaceOrder(ctx, schema.Drink{ID: 1}, schema.Bar{ID: "b"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	history, err := store.Orders(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlaceOrderStoreFailure(t *testing.T) {
	store := &iocache.MockProfileStore{}
	store.On("RecordOrder", mock.Anything, mock.AnythingOfType("schema.Order")).Return(assert.AnError)

	term := NewTerminal(store, schema.DifficultyPricing, 0)
	_, err := term.PlaceOrder(context.Background(), schema.Drink{ID: 1}, schema.Bar{ID: "b"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to record order")
	store.AssertExpectations(t)
}

func TestConfirmation(t *testing.T) {
	got := Confirmation(schema.Order{OrderID: "o-1", DrinkName: "Mojito", BarName: "Final Score", Price: 7})
	assert.Equal(t, "Order o-1 confirmed: Mojito at Final Score for $7.00", got)
}
