package schema

import (
	"fmt"
	"maps"
	"slices"
)

// Matrix maps source -> target -> coupling coefficient.
type Matrix map[Dimension]map[Dimension]float64

// MoodModel is an ordered dimension set with its interaction matrix.
type MoodModel struct {
	Name       ModelName   `json:"name"`
	Dimensions []Dimension `json:"dimensions"`
	Matrix     Matrix      `json:"matrix"`
}

// Coefficient returns M[src][dst], or zero when absent.
func (m MoodModel) Coefficient(src, dst Dimension) float64 {
	return m.Matrix[src][dst]
}

// Has reports whether dim belongs to the model.
func (m MoodModel) Has(dim Dimension) bool {
	return slices.Contains(m.Dimensions, dim)
}

// Index returns the position of dim in the model order, or -1.
func (m MoodModel) Index(dim Dimension) int {
	return slices.Index(m.Dimensions, dim)
}

// Clone returns a deep copy so overrides never leak into the built-ins.
func (m MoodModel) Clone() MoodModel {
	clone := MoodModel{
		Name:       m.Name,
		Dimensions: slices.Clone(m.Dimensions),
		Matrix:     make(Matrix, len(m.Matrix)),
	}
	for src, row := range m.Matrix {
		clone.Matrix[src] = maps.Clone(row)
	}
	return clone
}

// WithOverrides returns a copy with the given coefficients replaced.
func (m MoodModel) WithOverrides(overrides Matrix) (MoodModel, error) {
	out := m.Clone()
	for src, row := range overrides {
		if !out.Has(src) {
			return MoodModel{}, fmt.Errorf("unknown source dimension '%s' for model %s", src, m.Name)
		}
		for dst, coef := range row {
			if !out.Has(dst) {
				return MoodModel{}, fmt.Errorf("unknown target dimension '%s' for model %s", dst, m.Name)
			}
			if src == dst {
				return MoodModel{}, fmt.Errorf("dimension '%s' cannot couple to itself", src)
			}
			if coef < -1 || coef > 1 {
				return MoodModel{}, fmt.Errorf("coefficient %s->%s must be within [-1,1] (received %.2f)", src, dst, coef)
			}
			if out.Matrix[src] == nil {
				out.Matrix[src] = make(map[Dimension]float64)
			}
			out.Matrix[src][dst] = coef
		}
	}
	return out, nil
}

// GetModel returns a fresh copy of a built-in model.
func GetModel(name ModelName) (MoodModel, bool) {
	switch name {
	case ClassicModel:
		return classicModel(), true
	case SocialModel:
		return socialModel(), true
	default:
		return MoodModel{}, false
	}
}

func classicModel() MoodModel {
	return MoodModel{
		Name:       ClassicModel,
		Dimensions: []Dimension{Energetic, Relaxed, Romantic, Adventurous, Celebratory, Cozy},
		Matrix: Matrix{
			Energetic:   {Relaxed: -0.4, Romantic: -0.3, Adventurous: 0.7, Celebratory: 0.6, Cozy: -0.5},
			Relaxed:     {Energetic: -0.3, Romantic: 0.4, Adventurous: -0.2, Celebratory: 0.2, Cozy: 0.8},
			Romantic:    {Energetic: -0.4, Relaxed: 0.3, Adventurous: -0.3, Celebratory: 0.3, Cozy: 0.7},
			Adventurous: {Energetic: 0.6, Relaxed: -0.4, Romantic: -0.2, Celebratory: 0.5, Cozy: -0.6},
			Celebratory: {Energetic: 0.8, Relaxed: -0.3, Romantic: 0.2, Adventurous: 0.4, Cozy: -0.4},
			Cozy:        {Energetic: -0.5, Relaxed: 0.7, Romantic: 0.6, Adventurous: -0.7, Celebratory: -0.3},
		},
	}
}

func socialModel() MoodModel {
	return MoodModel{
		Name:       SocialModel,
		Dimensions: []Dimension{Energy, Social, Adventure, Romance, Celebration, Comfort},
		Matrix: Matrix{
			Energy:      {Social: 0.8, Adventure: 0.9, Romance: -0.3, Celebration: 0.7, Comfort: -0.4},
			Social:      {Energy: 0.6, Adventure: 0.5, Romance: 0.4, Celebration: 0.8, Comfort: 0.3},
			Adventure:   {Energy: 0.7, Social: 0.6, Romance: -0.2, Celebration: 0.5, Comfort: -0.6},
			Romance:     {Energy: -0.4, Social: 0.2, Adventure: -0.3, Celebration: 0.3, Comfort: 0.8},
			Celebration: {Energy: 0.9, Social: 0.9, Adventure: 0.4, Romance: 0.2, Comfort: -0.2},
			Comfort:     {Energy: -0.5, Social: 0.1, Adventure: -0.7, Romance: 0.6, Celebration: -0.3},
		},
	}
}

// semanticAliases maps classic dimensions onto their social counterparts.
var semanticAliases = map[Dimension]Dimension{
	Energetic:   Energy,
	Adventurous: Adventure,
	Romantic:    Romance,
	Celebratory: Celebration,
	Cozy:        Comfort,
}

// Resolve finds the model dimension that means the same as dim, if any.
// A classic name resolves to its social twin and vice versa.
func (m MoodModel) Resolve(dim Dimension) (Dimension, bool) {
	if m.Has(dim) {
		return dim, true
	}
	if alias, ok := semanticAliases[dim]; ok && m.Has(alias) {
		return alias, true
	}
	for classic, social := range semanticAliases {
		if social == dim && m.Has(classic) {
			return classic, true
		}
	}
	return "", false
}
