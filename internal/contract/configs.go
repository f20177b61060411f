package contract

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/huangsam/moodmixer/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 6
	MaxResultLimit     = 100
	DefaultPrecision   = 1
	DefaultGroupSize   = 1
	MaxGroupSize       = 50
	DefaultOrderDelay  = 1500 * time.Millisecond
	DefaultListenAddr  = ":8080"
	DefaultRateLimit   = 120 // requests per minute per IP
	DefaultMaxSessions = 1000
	DefaultSessionTTL  = 30 * time.Minute
	DefaultStoreKey    = "moodmixer"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// WeightsRawInput holds custom dominant-policy weights from the YAML config file.
// Use float64 pointers so missing keys keep their defaults.
type WeightsRawInput struct {
	Dominant    *float64 `mapstructure:"dominant"`
	Similarity  *float64 `mapstructure:"similarity"`
	Intensity   *float64 `mapstructure:"intensity"`
	Combination *float64 `mapstructure:"combination"`
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	ModelName   schema.ModelName
	Model       schema.MoodModel // built-in model with matrix overrides applied
	Policy      schema.ScoringPolicy
	ResultLimit int
	GroupSize   int
	Occasion    string
	Seed        uint64 // 0 picks a time-based seed

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseEmojis  bool
	UseColors  bool

	CatalogFile string
	BarsFile    string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	StoreKeyPrefix string

	Pricing    schema.PricingPolicy
	OrderDelay time.Duration

	ListenAddr  string
	RateLimit   int
	CORSOrigins []string
	MaxSessions int           // web sessions kept in memory
	SessionTTL  time.Duration // idle time before a web session is dropped

	LogLevel  string
	LogFormat string

	// CustomWeights holds only the weights set in the config file.
	CustomWeights map[schema.WeightKey]float64

	// ComputedWeights is the final weight map, computed from defaults + custom overrides.
	ComputedWeights map[schema.WeightKey]float64

	// MatrixOverrides are the coefficient overrides applied to Model.
	MatrixOverrides schema.Matrix
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Model          string `mapstructure:"model"`
	Policy         string `mapstructure:"policy"`
	Limit          int    `mapstructure:"limit"`
	GroupSize      int    `mapstructure:"group-size"`
	Occasion       string `mapstructure:"occasion"`
	Seed           uint64 `mapstructure:"seed"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	Catalog        string `mapstructure:"catalog"`
	Bars           string `mapstructure:"bars"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	StoreKeyPrefix string `mapstructure:"store-key-prefix"`
	LogLevel       string `mapstructure:"log-level"`
	LogFormat      string `mapstructure:"log-format"`

	// --- Fields from orderCmd.Flags() ---
	Pricing    string `mapstructure:"pricing"`
	OrderDelay string `mapstructure:"order-delay"`

	// --- Fields from serveCmd.Flags() ---
	Addr        string `mapstructure:"addr"`
	RateLimit   int    `mapstructure:"rate-limit"`
	CORSOrigins string `mapstructure:"cors-origins"`
	MaxSessions int    `mapstructure:"max-sessions"`
	SessionTTL  string `mapstructure:"session-ttl"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Interaction matrix overrides from config file ---
	Matrix map[string]map[string]float64 `mapstructure:"matrix"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Model = c.Model.Clone()
	if c.CORSOrigins != nil {
		clone.CORSOrigins = make([]string, len(c.CORSOrigins))
		copy(clone.CORSOrigins, c.CORSOrigins)
	}
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.WeightKey]float64, len(c.CustomWeights))
		maps.Copy(clone.CustomWeights, c.CustomWeights)
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[schema.WeightKey]float64, len(c.ComputedWeights))
		maps.Copy(clone.ComputedWeights, c.ComputedWeights)
	}
	if c.MatrixOverrides != nil {
		clone.MatrixOverrides = make(schema.Matrix, len(c.MatrixOverrides))
		for src, row := range c.MatrixOverrides {
			clone.MatrixOverrides[src] = maps.Clone(row)
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processModel(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processStore(cfg, input); err != nil {
		return err
	}
	if err := processOrders(cfg, input); err != nil {
		return err
	}
	return processServer(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the networked backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with 'redis://' or 'rediss://'")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Seed = input.Seed
	cfg.CatalogFile = strings.TrimSpace(input.Catalog)
	cfg.BarsFile = strings.TrimSpace(input.Bars)
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = input.LogFormat

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.GroupSize < 1 || input.GroupSize > MaxGroupSize {
		return fmt.Errorf("group size must be between 1 and %d (received %d)", MaxGroupSize, input.GroupSize)
	}
	cfg.GroupSize = input.GroupSize

	cfg.Occasion = strings.ToLower(strings.TrimSpace(input.Occasion))
	if cfg.Occasion != "" {
		if _, ok := schema.Occasions[cfg.Occasion]; !ok {
			return fmt.Errorf("invalid occasion '%s'. must be %s", input.Occasion, strings.Join(schema.OccasionNames(), ", "))
		}
	}

	cfg.Policy = schema.ScoringPolicy(strings.ToLower(input.Policy))
	if _, ok := schema.ValidScoringPolicies[cfg.Policy]; !ok {
		return fmt.Errorf("invalid policy '%s'. must be dominant, simple", input.Policy)
	}

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processModel resolves the mood model and applies matrix overrides.
func processModel(cfg *Config, input *ConfigRawInput) error {
	cfg.ModelName = schema.ModelName(strings.ToLower(input.Model))
	model, ok := schema.GetModel(cfg.ModelName)
	if !ok {
		return fmt.Errorf("invalid model '%s'. must be classic, social", input.Model)
	}

	overrides := make(schema.Matrix)
	for src, row := range input.Matrix {
		srcDim := schema.Dimension(strings.ToLower(src))
		overrides[srcDim] = make(map[schema.Dimension]float64, len(row))
		for dst, coef := range row {
			overrides[srcDim][schema.Dimension(strings.ToLower(dst))] = coef
		}
	}
	if len(overrides) > 0 {
		var err error
		model, err = model.WithOverrides(overrides)
		if err != nil {
			return fmt.Errorf("invalid matrix override: %w", err)
		}
		cfg.MatrixOverrides = overrides
	}
	cfg.Model = model
	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into the map of provided weights.
func ProcessWeightsRawInput(weights WeightsRawInput) map[schema.WeightKey]float64 {
	result := make(map[schema.WeightKey]float64)
	if weights.Dominant != nil {
		result[schema.WeightDominant] = *weights.Dominant
	}
	if weights.Similarity != nil {
		result[schema.WeightSimilarity] = *weights.Similarity
	}
	if weights.Intensity != nil {
		result[schema.WeightIntensity] = *weights.Intensity
	}
	if weights.Combination != nil {
		result[schema.WeightCombination] = *weights.Combination
	}
	return result
}

// processCustomWeights merges custom weights over the defaults and checks
// that the final weights sum to 1.0.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	custom := ProcessWeightsRawInput(input.Weights)
	computed := schema.GetDefaultWeights()
	maps.Copy(computed, custom)

	sum := 0.0
	for key, w := range computed {
		if w < 0 {
			return fmt.Errorf("weight %s cannot be negative (received %.3f)", key, w)
		}
		sum += w
	}
	if len(custom) > 0 && (sum < 0.999 || sum > 1.001) {
		return fmt.Errorf("custom weights for policy %s must sum to 1.0, got %.3f", schema.DominantPolicy, sum)
	}
	cfg.CustomWeights = custom
	cfg.ComputedWeights = computed
	return nil
}

// processStore validates the profile store backend.
func processStore(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	cfg.StoreKeyPrefix = input.StoreKeyPrefix
	if cfg.StoreKeyPrefix == "" {
		cfg.StoreKeyPrefix = DefaultStoreKey
	}
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processOrders handles pricing policy and the simulated POS delay.
func processOrders(cfg *Config, input *ConfigRawInput) error {
	cfg.Pricing = schema.PricingPolicy(strings.ToLower(input.Pricing))
	if cfg.Pricing == "" {
		cfg.Pricing = schema.DifficultyPricing
	}
	if _, ok := schema.ValidPricingPolicies[cfg.Pricing]; !ok {
		return fmt.Errorf("invalid pricing '%s'. must be difficulty, ingredients", input.Pricing)
	}

	cfg.OrderDelay = DefaultOrderDelay
	if input.OrderDelay != "" {
		d, err := time.ParseDuration(input.OrderDelay)
		if err != nil {
			return fmt.Errorf("invalid order delay '%s': %w", input.OrderDelay, err)
		}
		if d < 0 {
			return fmt.Errorf("order delay cannot be negative (received %s)", d)
		}
		cfg.OrderDelay = d
	}
	return nil
}

// processServer handles the HTTP listener settings.
func processServer(cfg *Config, input *ConfigRawInput) error {
	cfg.ListenAddr = strings.TrimSpace(input.Addr)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	cfg.RateLimit = input.RateLimit
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative (received %d)", input.RateLimit)
	}
	cfg.MaxSessions = input.MaxSessions
	if cfg.MaxSessions == 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.MaxSessions < 0 {
		return fmt.Errorf("max sessions cannot be negative (received %d)", input.MaxSessions)
	}
	cfg.SessionTTL = DefaultSessionTTL
	if input.SessionTTL != "" {
		d, err := time.ParseDuration(input.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid session ttl '%s': %w", input.SessionTTL, err)
		}
		if d <= 0 {
			return fmt.Errorf("session ttl must be positive (received %s)", input.SessionTTL)
		}
		cfg.SessionTTL = d
	}
	cfg.CORSOrigins = nil
	for origin := range strings.SplitSeq(input.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
		}
	}
	return nil
}
