package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/moodmixer/schema"
)

// minTSVFields is the column count up to and including the cozy score.
const minTSVFields = 13

// tsv column -> classic dimension, starting at column 8
var tsvMoodColumns = []schema.Dimension{schema.Energetic, schema.Relaxed, schema.Romantic, schema.Celebratory, schema.Cozy}

// ordered spirit rules for the tab-separated dump
var tsvSpirits = []struct {
	words  []string
	spirit string
}{
	{[]string{"vodka"}, "Vodka"},
	{[]string{"rum"}, "Rum"},
	{[]string{"gin"}, "Gin"},
	{[]string{"whiskey", "whisky"}, "Whiskey"},
	{[]string{"tequila"}, "Tequila"},
	{[]string{"brandy", "cognac"}, "Brandy"},
	{[]string{"scotch"}, "Whiskey"},
	{[]string{"schnapps", "liqueur"}, "Liqueur"},
}

// main ingredient keyword -> description suffix
var tsvMainSpirits = []struct {
	words []string
	label string
}{
	{[]string{"rum"}, "rum"},
	{[]string{"vodka"}, "vodka"},
	{[]string{"gin"}, "gin"},
	{[]string{"whiskey", "whisky", "scotch"}, "whiskey"},
	{[]string{"tequila"}, "tequila"},
	{[]string{"cognac", "brandy"}, "brandy"},
}

// ParseTSV reads the tab-separated cocktail dump. Lines with too few fields
// and lines without a numeric id (the header) are skipped.
func ParseTSV(r io.Reader) ([]schema.Drink, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	drinks := make([]schema.Drink, 0)
	for {
		parts, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tsv: %w", err)
		}
		if len(parts) < minTSVFields {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		drinks = append(drinks, tsvDrink(id, parts))
	}
	return drinks, nil
}

func tsvDrink(id int, parts []string) schema.Drink {
	category := strings.TrimSpace(parts[2])
	ingredients := splitPipes(parts[5])

	moods := map[schema.Dimension]int{schema.Adventurous: schema.NeutralMoodValue}
	for i, dim := range tsvMoodColumns {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[8+i]), 64)
		if err != nil {
			v = schema.NeutralMoodValue
		}
		moods[dim] = clampScore(v)
	}

	spirit := tsvSpirit(ingredients)
	return schema.Drink{
		ID:           id,
		Name:         strings.TrimSpace(parts[1]),
		Category:     category,
		Alcoholic:    strings.TrimSpace(parts[3]),
		Glass:        strings.TrimSpace(parts[4]),
		Ingredients:  ingredients,
		Instructions: strings.ReplaceAll(parts[6], `\n`, " "),
		Spirit:       spirit,
		Difficulty:   tsvDifficulty(len(ingredients)),
		Description:  tsvDescription(category, ingredients),
		Flavor:       fmt.Sprintf("%s, %s", spirit, category),
		Garnish:      "None specified",
		Moods:        moods,
	}
}

func tsvSpirit(ingredients []string) string {
	text := joinedLower(ingredients)
	for _, rule := range tsvSpirits {
		for _, word := range rule.words {
			if strings.Contains(text, word) {
				return rule.spirit
			}
		}
	}
	return "Mixed"
}

func tsvDifficulty(n int) string {
	switch {
	case n <= 3:
		return "Easy"
	case n >= 6:
		return "Hard"
	default:
		return "Medium"
	}
}

func tsvDescription(category string, ingredients []string) string {
	desc := fmt.Sprintf("A %s cocktail", strings.ToLower(category))
	if len(ingredients) == 0 {
		return desc
	}
	lead := strings.ToLower(ingredients[0])
	for _, rule := range tsvMainSpirits {
		for _, word := range rule.words {
			if strings.Contains(lead, word) {
				return desc + " with " + rule.label
			}
		}
	}
	return desc + " with " + lead
}
