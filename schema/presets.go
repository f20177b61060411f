package schema

import (
	"slices"
	"sort"
)

// Preset holds six values in social model order.
type Preset [6]int

// Occasions are quick-start presets keyed by occasion name.
// Values follow the social model order.
var Occasions = map[string]Preset{
	"brunch":      {6, 7, 3, 4, 5, 8},
	"happy-hour":  {7, 8, 5, 3, 6, 4},
	"night-out":   {8, 9, 7, 5, 8, 3},
	"date-night":  {4, 6, 3, 9, 4, 7},
	"celebration": {9, 9, 6, 4, 10, 2},
}

// Vibes are the group poll options keyed by vibe name.
var Vibes = map[string]Preset{
	"high-energy":  {9, 8, 7, 3, 8, 2},
	"chill-social": {5, 9, 4, 6, 5, 7},
	"adventure":    {8, 7, 9, 4, 6, 3},
	"romantic":     {3, 5, 2, 9, 4, 8},
	"celebration":  {9, 9, 6, 4, 10, 2},
	"cozy":         {3, 6, 2, 7, 3, 9},
}

// groupMultipliers scale scores by party size.
var groupMultipliers = map[int]float64{
	1:  1.0,
	2:  1.2,
	4:  1.5,
	8:  1.8,
	15: 2.0,
}

// GroupMultiplier returns the score multiplier for a group size.
// Unlisted sizes fall back to 1.0.
func GroupMultiplier(size int) float64 {
	if m, ok := groupMultipliers[size]; ok {
		return m
	}
	return 1.0
}

// GroupSizes returns the sizes that carry a multiplier, ascending.
func GroupSizes() []int {
	sizes := make([]int, 0, len(groupMultipliers))
	for s := range groupMultipliers {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

// OccasionNames returns the occasion keys sorted by name.
func OccasionNames() []string {
	return sortedKeys(Occasions)
}

// VibeNames returns the vibe keys sorted by name.
func VibeNames() []string {
	return sortedKeys(Vibes)
}

// presetOrder is the dimension order preset values are written in.
var presetOrder = []Dimension{Energy, Social, Adventure, Romance, Celebration, Comfort}

// ToValues maps the preset onto the model by meaning. Model dimensions
// with no counterpart in the preset stay neutral.
func (p Preset) ToValues(m MoodModel) map[Dimension]int {
	out := make(map[Dimension]int, len(m.Dimensions))
	for _, dim := range m.Dimensions {
		out[dim] = NeutralMoodValue
	}
	for i, src := range presetOrder {
		if dim, ok := m.Resolve(src); ok {
			out[dim] = p[i]
		}
	}
	return out
}

func sortedKeys(m map[string]Preset) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
