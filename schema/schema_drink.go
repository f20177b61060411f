package schema

import "time"

// Drink is a catalog item. A nil Moods means the drink has no mood profile.
type Drink struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Category     string            `json:"category,omitempty"`
	Alcoholic    string            `json:"alcoholic,omitempty"`
	Spirit       string            `json:"spirit"`
	Difficulty   string            `json:"difficulty"`
	Description  string            `json:"description"`
	Ingredients  []string          `json:"ingredients"`
	Flavor       string            `json:"flavor"`
	Instructions string            `json:"instructions"`
	Glass        string            `json:"glass"`
	Garnish      string            `json:"garnish"`
	Moods        map[Dimension]int `json:"moods,omitempty"`
}

// HasProfile reports whether the drink carries mood data.
func (d Drink) HasProfile() bool {
	return d.Moods != nil
}

// MoodValue returns the profile value for dim, treating a missing key as neutral.
func (d Drink) MoodValue(dim Dimension) int {
	if v, ok := d.Moods[dim]; ok {
		return v
	}
	return NeutralMoodValue
}

// Bar is a venue that can serve drinks and accept simulated orders.
type Bar struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Address         string            `json:"address"`
	Hours           string            `json:"hours"`
	Specialty       string            `json:"specialty"`
	SignatureDrinks []string          `json:"signature_drinks"`
	MoodProfile     map[Dimension]int `json:"mood_profile"`
	MerchantID      string            `json:"toast_merchant_id"`
}

// ScoredDrink is a drink with its match score against the current mood.
type ScoredDrink struct {
	Drink          Drink     `json:"drink"`
	Score          float64   `json:"score"`
	Reason         string    `json:"reason"`
	DominantMood   Dimension `json:"dominant_mood"`
	IntensityMatch float64   `json:"intensity_match"`
	MatchingMoods  int       `json:"matching_moods"`
}

// SearchResult is a drink with its keyword relevance.
type SearchResult struct {
	Drink Drink `json:"drink"`
	Score int   `json:"score"`
}

// BarMatch describes how well a bar fits the current mood.
type BarMatch struct {
	Bar        Bar      `json:"bar"`
	MoodMatch  int      `json:"mood_match"`
	TypeMatch  int      `json:"type_match"`
	Factors    []string `json:"factors"`
	FactorText string   `json:"factor_text"`
}

// Order is a simulated point-of-sale order.
type Order struct {
	OrderID    string    `json:"order_id"`
	DrinkID    int       `json:"drink_id"`
	DrinkName  string    `json:"drink_name"`
	BarID      string    `json:"bar_id"`
	BarName    string    `json:"bar_name"`
	Price      float64   `json:"price"`
	MerchantID string    `json:"merchant_id"`
	OrderedAt  time.Time `json:"ordered_at"`
}

// DimensionState is the exported view of one mood dimension.
type DimensionState struct {
	Dimension Dimension `json:"dimension"`
	Value     int       `json:"value"`
	Influence float64   `json:"influence"`
	Trend     Trend     `json:"trend"`
}
