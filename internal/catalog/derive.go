package catalog

import (
	"strings"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
)

// Derivation limits.
const (
	maxDescriptionLen = 200
	maxGarnishLen     = 50
)

var spiritKeywords = []string{"vodka", "gin", "rum", "whiskey", "tequila", "bourbon", "scotch", "brandy", "cognac"}

var flavorKeywords = []struct {
	label string
	words []string
}{
	{"Sweet", []string{"sweet", "sugar", "syrup", "honey", "simple"}},
	{"Sour", []string{"sour", "lemon", "lime", "citrus"}},
	{"Bitter", []string{"bitter", "bitters"}},
	{"Spicy", []string{"spicy", "pepper", "hot"}},
	{"Creamy", []string{"creamy", "cream", "milk"}},
}

var garnishKeywords = []string{"garnish", "decorate", "sprinkle", "top with", "add"}

// spreadsheet column name -> classic dimension
var moodColumns = map[string]schema.Dimension{
	"thirsty":     schema.Energetic,
	"calm":        schema.Relaxed,
	"fancy":       schema.Romantic,
	"adventurous": schema.Adventurous,
	"dark":        schema.Cozy,
	"celebration": schema.Celebratory,
	"celebrate":   schema.Celebratory,
}

func joinedLower(ingredients []string) string {
	return strings.ToLower(strings.Join(ingredients, " "))
}

// DeriveSpirit picks the first known spirit keyword found in the ingredients.
func DeriveSpirit(ingredients []string) string {
	text := joinedLower(ingredients)
	for _, spirit := range spiritKeywords {
		if strings.Contains(text, spirit) {
			return strings.ToUpper(spirit[:1]) + spirit[1:]
		}
	}
	return "Mixed"
}

// DeriveDifficulty grades by ingredient count.
func DeriveDifficulty(ingredients []string) string {
	switch n := len(ingredients); {
	case n <= 3:
		return "Easy"
	case n <= 5:
		return "Medium"
	default:
		return "Hard"
	}
}

// DeriveFlavor lists the flavor groups hinted at by the ingredients.
func DeriveFlavor(ingredients []string) string {
	text := joinedLower(ingredients)
	flavors := make([]string, 0, len(flavorKeywords))
	for _, group := range flavorKeywords {
		for _, word := range group.words {
			if strings.Contains(text, word) {
				flavors = append(flavors, group.label)
				break
			}
		}
	}
	if len(flavors) == 0 {
		return "Balanced"
	}
	return strings.Join(flavors, ", ")
}

// DeriveGarnish pulls the garnish phrase out of the instructions.
func DeriveGarnish(instructions string) string {
	text := strings.ToLower(instructions)
	for _, word := range garnishKeywords {
		_, after, found := strings.Cut(text, word)
		if !found {
			continue
		}
		part, _, _ := strings.Cut(after, ".")
		part = strings.TrimSpace(part)
		if head, cut := contract.TruncateRunes(part, maxGarnishLen); cut {
			return head + "..."
		}
		return part
	}
	return "None"
}

// DeriveDescription truncates instructions into a short description.
func DeriveDescription(instructions string) string {
	if head, cut := contract.TruncateRunes(instructions, maxDescriptionLen); cut {
		return head + "..."
	}
	return instructions
}

// ConvertMoods maps spreadsheet score columns onto classic dimensions.
// Unmapped dimensions stay neutral.
func ConvertMoods(scores map[string]float64) map[schema.Dimension]int {
	moods := make(map[schema.Dimension]int, 6)
	model, _ := schema.GetModel(schema.ClassicModel)
	for _, dim := range model.Dimensions {
		moods[dim] = schema.NeutralMoodValue
	}
	// celebration wins over celebrate when both exist
	for _, col := range []string{"thirsty", "calm", "fancy", "adventurous", "dark", "celebrate", "celebration"} {
		if v, ok := scores[col]; ok {
			moods[moodColumns[col]] = clampScore(v)
		}
	}
	return moods
}

func clampScore(v float64) int {
	return min(schema.MaxMoodValue, max(schema.MinMoodValue, int(v)))
}
