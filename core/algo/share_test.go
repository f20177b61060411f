package algo

import (
	"testing"

	"github.com/huangsam/moodmixer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrinkShareText(t *testing.T) {
	d := schema.Drink{
		Name:        "Espresso Martini",
		Description: "Coffee and vodka.",
		Moods:       map[schema.Dimension]int{schema.Cozy: 7, schema.Energetic: 9, schema.Relaxed: 3},
	}
	want := "Just discovered \"Espresso Martini\" on ThinkDrink!\n\n" +
		"Coffee and vodka.\n\n" +
		"Perfect for: energetic, cozy\n\n" +
		"Join me at the bars! #ThinkDrink #Cocktails"
	assert.Equal(t, want, DrinkShareText(classicModel(t), d))
}

func TestVibeShareText(t *testing.T) {
	social, ok := schema.GetModel(schema.SocialModel)
	require.True(t, ok)

	tests := []struct {
		name     string
		model    schema.MoodModel
		values   map[schema.Dimension]int
		occasion string
		want     string
	}{
		{
			name:     "social model",
			model:    social,
			values:   map[schema.Dimension]int{schema.Energy: 8, schema.Social: 9, schema.Adventure: 4},
			occasion: "birthday",
			want: "Setting the vibe with ThinkDrink!\n\n" +
				"Energy: 8/10\nSocial: 9/10\nAdventure: 4/10\n\n" +
				"Group: 4 people, birthday\n\n" +
				"Join me at the bars! #ThinkDrink #Cocktails",
		},
		{
			name:   "classic falls back to celebratory",
			model:  classicModel(t),
			values: neutralUser(map[schema.Dimension]int{schema.Energetic: 7, schema.Celebratory: 6, schema.Adventurous: 2}),
			want: "Setting the vibe with ThinkDrink!\n\n" +
				"Energy: 7/10\nSocial: 6/10\nAdventure: 2/10\n\n" +
				"Group: 4 people, hangout\n\n" +
				"Join me at the bars! #ThinkDrink #Cocktails",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VibeShareText(tt.model, tt.values, 4, tt.occasion))
		})
	}
}

func TestStatusText(t *testing.T) {
	dims := classicModel(t).Dimensions
	tests := []struct {
		name   string
		values map[schema.Dimension]int
		want   string
	}{
		{name: "dominant", values: neutralUser(map[schema.Dimension]int{schema.Energetic: 9}), want: "Dominant: energetic (9/10) - 5.7 avg intensity"},
		{name: "relaxed", values: profile(3, 3, 3, 3, 3, 3), want: "Relaxed mood (3.0/10 avg) - Great for chill drinks"},
		{name: "balanced", values: neutralUser(nil), want: "Balanced mood (5.0/10 avg) - Mix of recommendations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusText(dims, tt.values))
		})
	}

	assert.Equal(t, "1 recommendation", CountText(1))
	assert.Equal(t, "0 recommendations", CountText(0))
	assert.Equal(t, "6 recommendations", CountText(6))
}
