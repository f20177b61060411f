// Package pos prices drinks and simulates point-of-sale orders.
package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/schema"
)

// Price constants.
const (
	BasePrice             = 8.0
	HardSurcharge         = 3.0
	MediumSurcharge       = 1.0
	PremiumBarSurcharge   = 2.0
	CasualBarDiscount     = 1.0
	IngredientThreshold   = 5
	IngredientsMultiplier = 1.5
)

// ErrBarUnavailable is returned when a bar cannot serve cocktails.
var ErrBarUnavailable = errors.New("bar does not serve cocktails")

// Price returns the drink price at bar under policy.
func Price(policy schema.PricingPolicy, drink schema.Drink, bar schema.Bar) float64 {
	if policy == schema.IngredientsPricing {
		if len(drink.Ingredients) > IngredientThreshold {
			return BasePrice * IngredientsMultiplier
		}
		return BasePrice
	}

	price := BasePrice
	switch drink.Difficulty {
	case "Hard":
		price += HardSurcharge
	case "Medium":
		price += MediumSurcharge
	}
	barType := strings.ToLower(bar.Type)
	switch {
	case strings.Contains(barType, "upscale"), strings.Contains(barType, "craft"):
		price += PremiumBarSurcharge
	case strings.Contains(barType, "sports"), strings.Contains(barType, "pub"):
		price -= CasualBarDiscount
	}
	return price
}

// Terminal simulates a point-of-sale system that records completed orders.
type Terminal struct {
	store  contract.ProfileStore
	policy schema.PricingPolicy
	delay  time.Duration
	now    func() time.Time
}

// NewTerminal creates a terminal. A nil store keeps orders unrecorded.
func NewTerminal(store contract.ProfileStore, policy schema.PricingPolicy, delay time.Duration) *Terminal {
	if policy == "" {
		policy = schema.DifficultyPricing
	}
	return &Terminal{store: store, policy: policy, delay: delay, now: time.Now}
}

// Quote returns the formatted price for a drink at a bar.
func (t *Terminal) Quote(drink schema.Drink, bar schema.Bar) string {
	return contract.FormatPrice(Price(t.policy, drink, bar))
}

// PlaceOrder waits out the processing delay and records the order.
func (t *Terminal) PlaceOrder(ctx context.Context, drink schema.Drink, bar schema.Bar) (schema.Order, error) {
	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return schema.Order{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return schema.Order{}, err
	}

	order := schema.Order{
		OrderID:    uuid.NewString(),
		DrinkID:    drink.ID,
		DrinkName:  drink.Name,
		BarID:      bar.ID,
		BarName:    bar.Name,
		Price:      Price(t.policy, drink, bar),
		MerchantID: bar.MerchantID,
		OrderedAt:  t.now().UTC(),
	}
	if t.store != nil {
		if err := t.store.RecordOrder(ctx, order); err != nil {
			return schema.Order{}, fmt.Errorf("failed to record order: %w", err)
		}
	}
	logging.Info().
		Str("order_id", order.OrderID).
		Str("drink", order.DrinkName).
		Str("bar", order.BarName).
		Float64("price", order.Price).
		Msg("Order placed")
	return order, nil
}

// Confirmation renders the customer-facing order summary.
func Confirmation(order schema.Order) string {
	return fmt.Sprintf("Order %s confirmed: %s at %s for %s", order.OrderID, order.DrinkName, order.BarName, contract.FormatPrice(order.Price))
}
