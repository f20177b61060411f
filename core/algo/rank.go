package algo

import (
	"sort"

	"github.com/huangsam/moodmixer/schema"
)

// RankDrinks sorts drinks by score in descending order and returns the top
// 'limit' drinks. Equal scores keep catalog order. A limit of zero or less
// keeps everything.
func RankDrinks(drinks []schema.ScoredDrink, limit int) []schema.ScoredDrink {
	sort.SliceStable(drinks, func(i, j int) bool {
		return drinks[i].Score > drinks[j].Score
	})
	if limit > 0 && len(drinks) > limit {
		return drinks[:limit]
	}
	return drinks
}

// RankSearchResults sorts search hits by relevance in descending order
// and returns the top 'limit' hits.
func RankSearchResults(results []schema.SearchResult, limit int) []schema.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// RankBars sorts bars by mood match in descending order.
func RankBars(bars []schema.BarMatch, limit int) []schema.BarMatch {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].MoodMatch > bars[j].MoodMatch
	})
	if limit > 0 && len(bars) > limit {
		return bars[:limit]
	}
	return bars
}
