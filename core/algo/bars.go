package algo

import (
	"math"
	"strings"

	"github.com/huangsam/moodmixer/schema"
)

// Bar type bonuses.
const (
	barTypeBonus      = 20
	barSpecialtyBonus = 15
	barBaseMatch      = 60
)

// NoFactorsText is shown when no bar type bonus applies.
const NoFactorsText = "Good vibes match!"

// BarMoodMatch is the percentage overlap between the user mood and a bar profile.
// A missing bar value counts as neutral.
func BarMoodMatch(dims []schema.Dimension, user map[schema.Dimension]int, bar schema.Bar) int {
	if len(dims) == 0 {
		return 0
	}
	overlap := 0
	for _, dim := range dims {
		barValue, ok := bar.MoodProfile[dim]
		if !ok {
			barValue = schema.NeutralMoodValue
		}
		overlap += min(userValue(user, dim), barValue)
	}
	return int(math.Floor(float64(overlap)/float64(10*len(dims))*100 + 0.5))
}

// BarTypeMatch scores a bar's type and specialty against the mood.
// Dimension names resolve by meaning so both models can use it.
func BarTypeMatch(model schema.MoodModel, user map[schema.Dimension]int, bar schema.Bar) (int, []string) {
	wants := func(dim schema.Dimension) bool {
		resolved, ok := model.Resolve(dim)
		return ok && userValue(user, resolved) >= strongMood
	}
	barType := strings.ToLower(bar.Type)

	score := 0
	factors := make([]string, 0)
	if strings.Contains(barType, "cocktail") && wants(schema.Energetic) {
		score += barTypeBonus
		factors = append(factors, "High energy + Cocktail bar")
	}
	if strings.Contains(barType, "wine") && wants(schema.Romantic) {
		score += barTypeBonus
		factors = append(factors, "Romantic mood + Wine bar")
	}
	if strings.Contains(barType, "brewery") && wants(schema.Social) {
		score += barTypeBonus
		factors = append(factors, "Social mood + Brewery")
	}
	if bar.Specialty != "" && wants(schema.Adventurous) {
		score += barSpecialtyBonus
		factors = append(factors, "Adventurous + Specialty drinks")
	}
	return max(barBaseMatch, score), factors
}

// MatchBars scores every bar and ranks them by mood match.
func MatchBars(model schema.MoodModel, user map[schema.Dimension]int, bars []schema.Bar, limit int) []schema.BarMatch {
	out := make([]schema.BarMatch, 0, len(bars))
	for _, bar := range bars {
		typeMatch, factors := BarTypeMatch(model, user, bar)
		text := NoFactorsText
		if len(factors) > 0 {
			text = strings.Join(factors, ", ")
		}
		out = append(out, schema.BarMatch{
			Bar:        bar,
			MoodMatch:  BarMoodMatch(model.Dimensions, user, bar),
			TypeMatch:  typeMatch,
			Factors:    factors,
			FactorText: text,
		})
	}
	return RankBars(out, limit)
}

// AvailableBars returns the bars able to make mixed drinks.
func AvailableBars(bars []schema.Bar) []schema.Bar {
	out := make([]schema.Bar, 0, len(bars))
	for _, bar := range bars {
		if len(bar.SignatureDrinks) > 0 ||
			strings.Contains(bar.Type, "Craft") ||
			strings.Contains(bar.Type, "Cocktail") ||
			strings.Contains(bar.Type, "Upscale") {
			out = append(out, bar)
		}
	}
	return out
}

// FindBar looks a bar up by id.
func FindBar(bars []schema.Bar, id string) (schema.Bar, bool) {
	for _, bar := range bars {
		if bar.ID == id {
			return bar, true
		}
	}
	return schema.Bar{}, false
}

// FindDrink looks a drink up by id.
func FindDrink(catalog []schema.Drink, id int) (schema.Drink, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return schema.Drink{}, false
}
