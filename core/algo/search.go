package algo

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/huangsam/moodmixer/schema"
)

// DefaultSearchLimit is the number of hits a search returns.
const DefaultSearchLimit = 10

// DefaultCategory is assumed for drinks without a category.
const DefaultCategory = "Cocktail"

// FilterAll disables a filter.
const FilterAll = "all"

// ErrNothingNew is returned by Surprise when every drink is already a favorite.
var ErrNothingNew = errors.New("no new drinks to discover")

// Per-term search weights.
const (
	nameContainsPoints = 100
	namePrefixPoints   = 50
	categoryPoints     = 30
	spiritPoints       = 25
	ingredientPoints   = 20
	flavorPoints       = 15
	glassPoints        = 10
	descriptionPoints  = 5
)

// Search ranks drinks by keyword relevance and keeps the top limit hits.
// Each whitespace-separated term scores independently.
func Search(catalog []schema.Drink, query string, limit int) []schema.SearchResult {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []schema.SearchResult{}
	}
	results := make([]schema.SearchResult, 0)
	for _, d := range catalog {
		if score := searchScore(d, terms); score > 0 {
			results = append(results, schema.SearchResult{Drink: d, Score: score})
		}
	}
	return RankSearchResults(results, limit)
}

func searchScore(d schema.Drink, terms []string) int {
	name := strings.ToLower(d.Name)
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}
	category = strings.ToLower(category)
	spirit := strings.ToLower(d.Spirit)
	flavor := strings.ToLower(d.Flavor)
	glass := strings.ToLower(d.Glass)
	description := strings.ToLower(d.Description)

	score := 0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += nameContainsPoints
		}
		if strings.HasPrefix(name, term) {
			score += namePrefixPoints
		}
		if strings.Contains(category, term) {
			score += categoryPoints
		}
		if strings.Contains(spirit, term) {
			score += spiritPoints
		}
		if slices.ContainsFunc(d.Ingredients, func(ing string) bool {
			return strings.Contains(strings.ToLower(ing), term)
		}) {
			score += ingredientPoints
		}
		if strings.Contains(flavor, term) {
			score += flavorPoints
		}
		if strings.Contains(glass, term) {
			score += glassPoints
		}
		if strings.Contains(description, term) {
			score += descriptionPoints
		}
	}
	return score
}

// Filters narrows the catalog browse view.
type Filters struct {
	Spirit     string `json:"spirit"`
	Difficulty string `json:"difficulty"`
	Search     string `json:"search"`
	Field      string `json:"field"` // all, name, spirit, description, flavor or glass
}

// Filter returns the drinks that pass every active filter, in catalog order.
func Filter(catalog []schema.Drink, f Filters) []schema.Drink {
	out := make([]schema.Drink, 0, len(catalog))
	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, d := range catalog {
		if active(f.Spirit) && d.Spirit != f.Spirit {
			continue
		}
		if active(f.Difficulty) && d.Difficulty != f.Difficulty {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(searchField(d, f.Field)), term) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func active(filter string) bool {
	return filter != "" && filter != FilterAll
}

func searchField(d schema.Drink, field string) string {
	switch field {
	case "name":
		return d.Name
	case "spirit":
		return d.Spirit
	case "description":
		return d.Description
	case "flavor":
		return d.Flavor
	case "glass":
		return d.Glass
	default:
		parts := append([]string{d.Name, d.Spirit, d.Description, d.Flavor}, d.Ingredients...)
		return strings.Join(parts, " ")
	}
}

// Spirits returns the distinct spirits in catalog order.
func Spirits(catalog []schema.Drink) []string {
	return distinct(catalog, func(d schema.Drink) string { return d.Spirit })
}

// Difficulties returns the distinct difficulty levels in catalog order.
func Difficulties(catalog []schema.Drink) []string {
	return distinct(catalog, func(d schema.Drink) string { return d.Difficulty })
}

func distinct(catalog []schema.Drink, key func(schema.Drink) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, d := range catalog {
		k := key(d)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Surprise picks a random drink that is not a favorite.
func Surprise(catalog []schema.Drink, favorites []int, rng *rand.Rand) (schema.Drink, error) {
	candidates := make([]schema.Drink, 0, len(catalog))
	for _, d := range catalog {
		if !slices.Contains(favorites, d.ID) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return schema.Drink{}, ErrNothingNew
	}
	return candidates[rng.IntN(len(candidates))], nil
}
