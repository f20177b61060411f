package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/huangsam/moodmixer/schema"
)

// ParseMenu scrapes `.drink` cards from a bar menu page. Scraped drinks carry
// no mood data.
func ParseMenu(r io.Reader) ([]schema.Drink, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	drinks := make([]schema.Drink, 0)
	doc.Find(".drink").Each(func(_ int, card *goquery.Selection) {
		name := first(card.Find(".name"))
		if name == "" {
			return
		}
		ingredients := make([]string, 0)
		card.Find("li.ingredient").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				ingredients = append(ingredients, text)
			}
		})

		spirit := first(card.Find(".spirit"))
		if spirit == "" {
			spirit = DeriveSpirit(ingredients)
		}
		drinks = append(drinks, schema.Drink{
			Name:        name,
			Category:    "Cocktail",
			Spirit:      spirit,
			Difficulty:  DeriveDifficulty(ingredients),
			Description: first(card.Find(".description")),
			Ingredients: ingredients,
			Flavor:      DeriveFlavor(ingredients),
			Glass:       first(card.Find(".glass")),
			Garnish:     "None",
		})
	})
	return drinks, nil
}

func first(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}
