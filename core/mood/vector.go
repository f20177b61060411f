// Package mood holds the mood state vector and its propagation engine.
package mood

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/huangsam/moodmixer/schema"
)

// ErrUnknownDimension is returned when a dimension is not part of the vector's model.
var ErrUnknownDimension = errors.New("unknown mood dimension")

// Influence thresholds used for trend display.
const (
	trendUpThreshold   = 1.05
	trendDownThreshold = 0.95
)

// State is the value and last influence of one dimension.
type State struct {
	Value     int
	Influence float64
}

// Vector is a six-dimension mood state bound to one model.
// It is not safe for concurrent use; callers that share a vector must lock around it.
type Vector struct {
	model  schema.MoodModel
	states map[schema.Dimension]State
}

// NewVector creates a vector with every dimension at the neutral state.
func NewVector(model schema.MoodModel) *Vector {
	v := &Vector{
		model:  model,
		states: make(map[schema.Dimension]State, len(model.Dimensions)),
	}
	v.Reset()
	return v
}

// Model returns the model the vector was built with.
func (v *Vector) Model() schema.MoodModel {
	return v.model
}

// Get returns the value of dim.
func (v *Vector) Get(dim schema.Dimension) (int, bool) {
	s, ok := v.states[dim]
	return s.Value, ok
}

// Influence returns the last influence recorded for dim.
func (v *Vector) Influence(dim schema.Dimension) float64 {
	return v.states[dim].Influence
}

// Set clamps value into range, stores it and propagates the change.
// Setting a dimension to its current value does nothing.
func (v *Vector) Set(dim schema.Dimension, value int) error {
	current, ok := v.states[dim]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
	}
	value = clampValue(value)
	if value == current.Value {
		return nil
	}
	v.states[dim] = State{Value: value, Influence: current.Influence}
	v.propagate(dim, current.Value, value)
	return nil
}

// Reset puts every dimension back to the neutral state.
func (v *Vector) Reset() {
	for _, dim := range v.model.Dimensions {
		v.states[dim] = State{Value: schema.NeutralMoodValue, Influence: schema.NeutralInfluence}
	}
}

// Randomize draws every value uniformly from [1,10] and then propagates
// each dimension in model order against the neutral baseline.
func (v *Vector) Randomize(rng *rand.Rand) {
	for _, dim := range v.model.Dimensions {
		v.states[dim] = State{
			Value:     rng.IntN(schema.MaxMoodValue) + schema.MinMoodValue,
			Influence: schema.NeutralInfluence,
		}
	}
	for _, dim := range v.model.Dimensions {
		v.propagate(dim, schema.NeutralMoodValue, v.states[dim].Value)
	}
}

// ApplyPreset writes values directly without propagation.
// Dimensions outside the model are ignored.
func (v *Vector) ApplyPreset(values map[schema.Dimension]int) {
	for dim, value := range values {
		if _, ok := v.states[dim]; !ok {
			continue
		}
		v.states[dim] = State{Value: clampValue(value), Influence: schema.NeutralInfluence}
	}
}

// Values returns a copy of the current values.
func (v *Vector) Values() map[schema.Dimension]int {
	out := make(map[schema.Dimension]int, len(v.states))
	for dim, s := range v.states {
		out[dim] = s.Value
	}
	return out
}

// Snapshot returns every dimension's state in model order.
func (v *Vector) Snapshot() []schema.DimensionState {
	out := make([]schema.DimensionState, 0, len(v.model.Dimensions))
	for _, dim := range v.model.Dimensions {
		s := v.states[dim]
		out = append(out, schema.DimensionState{
			Dimension: dim,
			Value:     s.Value,
			Influence: s.Influence,
			Trend:     trendOf(s.Influence),
		})
	}
	return out
}

// Average returns the mean value across all dimensions.
func (v *Vector) Average() float64 {
	return Average(v.model.Dimensions, v.Values())
}

// Dominant returns the highest dimension, first in model order on ties.
func (v *Vector) Dominant() (schema.Dimension, int) {
	return Dominant(v.model.Dimensions, v.Values())
}

// Trend reports the display direction for dim's last influence.
func (v *Vector) Trend(dim schema.Dimension) schema.Trend {
	return trendOf(v.states[dim].Influence)
}

// Average returns the mean of values over dims. Missing keys count as neutral.
func Average(dims []schema.Dimension, values map[schema.Dimension]int) float64 {
	if len(dims) == 0 {
		return 0
	}
	sum := 0
	for _, dim := range dims {
		sum += valueOr(values, dim)
	}
	return float64(sum) / float64(len(dims))
}

// Dominant returns the highest value over dims, first in order on ties.
func Dominant(dims []schema.Dimension, values map[schema.Dimension]int) (schema.Dimension, int) {
	var best schema.Dimension
	bestValue := -1
	for _, dim := range dims {
		if val := valueOr(values, dim); val > bestValue {
			best, bestValue = dim, val
		}
	}
	return best, bestValue
}

func valueOr(values map[schema.Dimension]int, dim schema.Dimension) int {
	if val, ok := values[dim]; ok {
		return val
	}
	return schema.NeutralMoodValue
}

func trendOf(influence float64) schema.Trend {
	switch {
	case influence > trendUpThreshold:
		return schema.TrendUp
	case influence < trendDownThreshold:
		return schema.TrendDown
	default:
		return schema.TrendSteady
	}
}

func clampValue(value int) int {
	return min(max(value, schema.MinMoodValue), schema.MaxMoodValue)
}
