// Package algo scores, ranks and searches the drink catalog.
package algo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/huangsam/moodmixer/core/mood"
	"github.com/huangsam/moodmixer/schema"
)

// DefaultRecommendationLimit is the number of drinks a recommendation pass returns.
const DefaultRecommendationLimit = 6

// Thresholds shared by the scoring terms.
const (
	strongMood         = 7  // user value that activates the dominant term
	wantMood           = 6  // user or item value counted as "wants"
	avoidMood          = 4  // user or item value counted as "avoids"
	matchReasonCount   = 3  // combination count that earns its own reason
	intensityReasonMin = 8  // intensity match that earns its own reason
	unratedScoreRange  = 10 // random score range for drinks with no profile
)

// Reasons attached to scored drinks.
const (
	ReasonNoMoodData = "No mood data"
	ReasonIntensity  = "Matches your intensity level"
	ReasonOverall    = "Good overall match"
)

// Scorer ranks drinks against a mood vector.
type Scorer struct {
	Model     schema.MoodModel
	Policy    schema.ScoringPolicy
	Weights   map[schema.WeightKey]float64
	GroupSize int
	Rand      *rand.Rand // source for unrated drink scores
}

// NewScorer creates a scorer with default weights and a single-person group.
func NewScorer(model schema.MoodModel, policy schema.ScoringPolicy, rng *rand.Rand) *Scorer {
	return &Scorer{
		Model:     model,
		Policy:    policy,
		Weights:   schema.GetDefaultWeights(),
		GroupSize: 1,
		Rand:      rng,
	}
}

// Recommend scores the catalog, ranks it and keeps the top limit drinks.
// The dominant policy drops drinks that do not score above zero.
func (s *Scorer) Recommend(user map[schema.Dimension]int, catalog []schema.Drink, limit int) []schema.ScoredDrink {
	scored := make([]schema.ScoredDrink, 0, len(catalog))
	for _, d := range catalog {
		sd := s.Score(user, d)
		if s.Policy != schema.SimplePolicy && sd.Score <= 0 {
			continue
		}
		scored = append(scored, sd)
	}
	return RankDrinks(scored, limit)
}

// Score computes one drink's match against the user values.
func (s *Scorer) Score(user map[schema.Dimension]int, d schema.Drink) schema.ScoredDrink {
	var sd schema.ScoredDrink
	if s.Policy == schema.SimplePolicy {
		sd = s.scoreSimple(user, d)
	} else {
		sd = s.scoreDominant(user, d)
	}
	sd.Score *= schema.GroupMultiplier(s.GroupSize)
	return sd
}

// scoreDominant is the weighted four-term formula.
func (s *Scorer) scoreDominant(user map[schema.Dimension]int, d schema.Drink) schema.ScoredDrink {
	dims := s.Model.Dimensions
	dom, domValue := mood.Dominant(dims, user)
	domValue = clampMood(domValue)
	if !d.HasProfile() {
		return schema.ScoredDrink{
			Drink:        d,
			Score:        s.randomScore(),
			Reason:       ReasonNoMoodData,
			DominantMood: dom,
		}
	}

	w := s.weights()
	total := 0.0

	if domValue >= strongMood {
		total += float64(drinkValue(d, dom)) * (float64(domValue) / 10) * w[schema.WeightDominant]
	}

	similarity, contributing := 0.0, 0
	for _, dim := range dims {
		u, i := float64(userValue(user, dim)), float64(drinkValue(d, dim))
		switch {
		case u >= wantMood:
			similarity += math.Max(0, 10-math.Abs(u-i))
			contributing++
		case u <= avoidMood:
			similarity += math.Max(0, 10-math.Abs((10-u)-i))
			contributing++
		}
	}
	if contributing > 0 {
		total += similarity / float64(contributing) * w[schema.WeightSimilarity]
	}

	intensity := intensityMatch(dims, user, d)
	total += intensity * w[schema.WeightIntensity]

	matching := matchingMoods(dims, user, d)
	total += float64(matching) / float64(len(dims)) * 10 * w[schema.WeightCombination]

	return schema.ScoredDrink{
		Drink:          d,
		Score:          total,
		Reason:         matchReason(d, dom, matching, intensity),
		DominantMood:   dom,
		IntensityMatch: intensity,
		MatchingMoods:  matching,
	}
}

// scoreSimple averages per-dimension closeness over the drink's rated dimensions.
func (s *Scorer) scoreSimple(user map[schema.Dimension]int, d schema.Drink) schema.ScoredDrink {
	dims := s.Model.Dimensions
	dom, _ := mood.Dominant(dims, user)
	if !d.HasProfile() {
		return schema.ScoredDrink{Drink: d, Reason: ReasonNoMoodData, DominantMood: dom}
	}

	sum, rated := 0.0, 0
	for _, dim := range dims {
		i, ok := d.Moods[dim]
		if !ok || i == 0 {
			continue
		}
		sum += 10 - math.Abs(float64(clampMood(i)-userValue(user, dim)))
		rated++
	}
	score := 0.0
	if rated > 0 {
		score = sum / float64(rated)
	}

	intensity := intensityMatch(dims, user, d)
	matching := matchingMoods(dims, user, d)
	return schema.ScoredDrink{
		Drink:          d,
		Score:          score,
		Reason:         matchReason(d, dom, matching, intensity),
		DominantMood:   dom,
		IntensityMatch: intensity,
		MatchingMoods:  matching,
	}
}

func (s *Scorer) weights() map[schema.WeightKey]float64 {
	if len(s.Weights) == 0 {
		return schema.GetDefaultWeights()
	}
	return s.Weights
}

func (s *Scorer) randomScore() float64 {
	if s.Rand == nil {
		return rand.Float64() * unratedScoreRange
	}
	return s.Rand.Float64() * unratedScoreRange
}

// intensityMatch compares the overall intensity of user and drink.
func intensityMatch(dims []schema.Dimension, user map[schema.Dimension]int, d schema.Drink) float64 {
	if len(dims) == 0 {
		return 0
	}
	diff := 0
	for _, dim := range dims {
		diff += userValue(user, dim) - drinkValue(d, dim)
	}
	return math.Max(0, 10-math.Abs(float64(diff)/float64(len(dims))))
}

// matchingMoods counts dimensions where user and drink both want or both avoid.
func matchingMoods(dims []schema.Dimension, user map[schema.Dimension]int, d schema.Drink) int {
	count := 0
	for _, dim := range dims {
		u, i := userValue(user, dim), drinkValue(d, dim)
		if (u >= wantMood && i >= wantMood) || (u <= avoidMood && i <= avoidMood) {
			count++
		}
	}
	return count
}

// matchReason picks the display reason in priority order.
func matchReason(d schema.Drink, dom schema.Dimension, matching int, intensity float64) string {
	switch {
	case d.Moods[dom] >= strongMood:
		return fmt.Sprintf("Perfect for %s mood", dom)
	case matching >= matchReasonCount:
		return fmt.Sprintf("Matches %d mood preferences", matching)
	case intensity >= intensityReasonMin:
		return ReasonIntensity
	default:
		return ReasonOverall
	}
}

// userValue and drinkValue read a dimension clamped into the mood range.
func userValue(user map[schema.Dimension]int, dim schema.Dimension) int {
	if v, ok := user[dim]; ok {
		return clampMood(v)
	}
	return schema.NeutralMoodValue
}

func drinkValue(d schema.Drink, dim schema.Dimension) int {
	return clampMood(d.MoodValue(dim))
}

func clampMood(v int) int {
	return min(max(v, schema.MinMoodValue), schema.MaxMoodValue)
}
