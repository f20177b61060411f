package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinModels(t *testing.T) {
	for _, name := range []ModelName{ClassicModel, SocialModel} {
		t.Run(string(name), func(t *testing.T) {
			m, ok := GetModel(name)
			require.True(t, ok)
			assert.Len(t, m.Dimensions, 6)
			for _, src := range m.Dimensions {
				_, self := m.Matrix[src][src]
				assert.False(t, self, "no self coupling for %s", src)
				assert.Len(t, m.Matrix[src], 5, "dense row for %s", src)
				for _, coef := range m.Matrix[src] {
					assert.GreaterOrEqual(t, coef, -1.0)
					assert.LessOrEqual(t, coef, 1.0)
				}
			}
		})
	}

	_, ok := GetModel("unknown")
	assert.False(t, ok)
}

func TestGetModelReturnsCopy(t *testing.T) {
	m, _ := GetModel(ClassicModel)
	m.Matrix[Energetic][Cozy] = 0.9

	fresh, _ := GetModel(ClassicModel)
	assert.Equal(t, -0.5, fresh.Coefficient(Energetic, Cozy))
}

func TestWithOverrides(t *testing.T) {
	base, _ := GetModel(ClassicModel)

	tests := []struct {
		name      string
		overrides Matrix
		errMsg    string
	}{
		{name: "valid", overrides: Matrix{Energetic: {Cozy: -0.9}}},
		{name: "unknown source", overrides: Matrix{"sleepy": {Cozy: 0.1}}, errMsg: "unknown source dimension"},
		{name: "unknown target", overrides: Matrix{Energetic: {Social: 0.1}}, errMsg: "unknown target dimension"},
		{name: "self coupling", overrides: Matrix{Cozy: {Cozy: 0.1}}, errMsg: "cannot couple to itself"},
		{name: "out of range", overrides: Matrix{Cozy: {Relaxed: 1.5}}, errMsg: "must be within [-1,1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.WithOverrides(tt.overrides)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, -0.9, got.Coefficient(Energetic, Cozy))
			assert.Equal(t, -0.5, base.Coefficient(Energetic, Cozy), "base must be untouched")
		})
	}
}

func TestResolve(t *testing.T) {
	classic, _ := GetModel(ClassicModel)
	social, _ := GetModel(SocialModel)

	dim, ok := social.Resolve(Energetic)
	assert.True(t, ok)
	assert.Equal(t, Energy, dim)

	dim, ok = classic.Resolve(Comfort)
	assert.True(t, ok)
	assert.Equal(t, Cozy, dim)

	_, ok = classic.Resolve(Social)
	assert.False(t, ok)
}

func TestPresetToValues(t *testing.T) {
	social, _ := GetModel(SocialModel)
	got := Occasions["brunch"].ToValues(social)
	assert.Equal(t, map[Dimension]int{
		Energy: 6, Social: 7, Adventure: 3, Romance: 4, Celebration: 5, Comfort: 8,
	}, got)

	classic, _ := GetModel(ClassicModel)
	got = Occasions["brunch"].ToValues(classic)
	assert.Equal(t, map[Dimension]int{
		Energetic: 6, Relaxed: 5, Romantic: 4, Adventurous: 3, Celebratory: 5, Cozy: 8,
	}, got)
}

func TestGroupMultiplier(t *testing.T) {
	tests := []struct {
		size int
		want float64
	}{
		{1, 1.0}, {2, 1.2}, {3, 1.0}, {4, 1.5}, {8, 1.8}, {15, 2.0}, {0, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupMultiplier(tt.size), "size %d", tt.size)
	}
	assert.Equal(t, []int{1, 2, 4, 8, 15}, GroupSizes())
}

func TestDrinkMoodValue(t *testing.T) {
	d := Drink{Moods: map[Dimension]int{Energetic: 9}}
	assert.True(t, d.HasProfile())
	assert.Equal(t, 9, d.MoodValue(Energetic))
	assert.Equal(t, NeutralMoodValue, d.MoodValue(Cozy))
	assert.False(t, Drink{}.HasProfile())
}
