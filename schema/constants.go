package schema

// Custom string types for type safety.
type (
	// Dimension is one named axis of the mood vector.
	Dimension string

	// ModelName identifies a built-in mood model.
	ModelName string

	// ScoringPolicy selects the recommendation formula.
	ScoringPolicy string

	// WeightKey represents keys used in dominant-policy weights.
	WeightKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the profile store.
	DatabaseBackend string

	// PricingPolicy selects how drink prices are derived.
	PricingPolicy string

	// Trend is the display direction of a dimension's last influence.
	Trend string
)

// Dimensions of the classic model.
const (
	Energetic   Dimension = "energetic"
	Relaxed     Dimension = "relaxed"
	Romantic    Dimension = "romantic"
	Adventurous Dimension = "adventurous"
	Celebratory Dimension = "celebratory"
	Cozy        Dimension = "cozy"
)

// Dimensions of the social model.
const (
	Energy      Dimension = "energy"
	Social      Dimension = "social"
	Adventure   Dimension = "adventure"
	Romance     Dimension = "romance"
	Celebration Dimension = "celebration"
	Comfort     Dimension = "comfort"
)

// All built-in mood models.
const (
	ClassicModel ModelName = "classic" // default
	SocialModel  ModelName = "social"
)

// All scoring policies supported.
const (
	DominantPolicy ScoringPolicy = "dominant" // default
	SimplePolicy   ScoringPolicy = "simple"
)

// Weight keys used by the dominant policy.
const (
	WeightDominant    WeightKey = "dominant"
	WeightSimilarity  WeightKey = "similarity"
	WeightIntensity   WeightKey = "intensity"
	WeightCombination WeightKey = "combination"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All profile store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"
	NoneBackend       DatabaseBackend = "none"
)

// All pricing policies supported.
const (
	DifficultyPricing  PricingPolicy = "difficulty" // default
	IngredientsPricing PricingPolicy = "ingredients"
)

// Influence trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// Mood bounds and defaults.
const (
	MinMoodValue     = 1
	MaxMoodValue     = 10
	NeutralMoodValue = 5
	NeutralInfluence = 1.0
)

// ValidModels lists all valid mood models.
var ValidModels = map[ModelName]struct{}{
	ClassicModel: {},
	SocialModel:  {},
}

// ValidScoringPolicies lists all valid scoring policies.
var ValidScoringPolicies = map[ScoringPolicy]struct{}{
	DominantPolicy: {},
	SimplePolicy:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid profile store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidPricingPolicies lists all valid pricing policies.
var ValidPricingPolicies = map[PricingPolicy]struct{}{
	DifficultyPricing:  {},
	IngredientsPricing: {},
}

// AllWeightKeys returns the dominant-policy weight keys in formula order.
var AllWeightKeys = []WeightKey{WeightDominant, WeightSimilarity, WeightIntensity, WeightCombination}

// GetDefaultWeights returns the default weight map for the dominant policy.
func GetDefaultWeights() map[WeightKey]float64 {
	return map[WeightKey]float64{
		WeightDominant:    0.4,
		WeightSimilarity:  0.3,
		WeightIntensity:   0.2,
		WeightCombination: 0.1,
	}
}
