package mood

import (
	"math"

	"github.com/huangsam/moodmixer/schema"
)

// influenceScale converts a raw effect into the influence indicator.
const influenceScale = 0.1

// Effect is the change one propagation pass applies to a single target.
type Effect struct {
	Target    schema.Dimension
	Amount    float64
	NewValue  int
	Influence float64
}

// PlanPropagation computes the effects of moving src from oldValue to newValue.
// Targets are read from the given values only, so the result does not depend
// on iteration order. Targets with a zero coefficient are skipped.
func PlanPropagation(model schema.MoodModel, values map[schema.Dimension]int, src schema.Dimension, oldValue, newValue int) []Effect {
	delta := newValue - oldValue
	if delta == 0 {
		return nil
	}
	strength := math.Abs(float64(delta)) / float64(schema.MaxMoodValue)

	effects := make([]Effect, 0, len(model.Dimensions)-1)
	for _, target := range model.Dimensions {
		if target == src {
			continue
		}
		coef := model.Coefficient(src, target)
		if coef == 0 {
			continue
		}
		amount := float64(delta) * coef * strength
		effects = append(effects, Effect{
			Target:    target,
			Amount:    amount,
			NewValue:  clampValue(roundHalfUp(float64(valueOr(values, target)) + amount)),
			Influence: 1 + amount*influenceScale,
		})
	}
	return effects
}

// propagate applies one single-pass propagation from src.
func (v *Vector) propagate(src schema.Dimension, oldValue, newValue int) {
	for _, e := range PlanPropagation(v.model, v.Values(), src, oldValue, newValue) {
		v.states[e.Target] = State{Value: e.NewValue, Influence: e.Influence}
	}
}

// roundHalfUp rounds x to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
