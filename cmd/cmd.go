// Package cmd defines the command-line interface for moodmixer.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(barsCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(surpriseCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the favorites subcommands to the parent favorites command
	favoritesCmd.AddCommand(favoritesToggleCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("model", string(schema.ClassicModel), "Mood model: classic or social")
	rootCmd.PersistentFlags().String("policy", string(schema.DominantPolicy), "Scoring policy: dominant or simple")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().IntP("group-size", "g", contract.DefaultGroupSize, "Party size used to scale scores")
	rootCmd.PersistentFlags().String("occasion", "", "Occasion preset: brunch, happy-hour, night-out, date-night, celebration")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for randomize, surprise and unrated drinks (0 = time based)")
	rootCmd.PersistentFlags().Bool("randomize", false, "Start from a random mood before applying assignments")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Show mood emojis in text output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON drink catalog (defaults to the built-in sample)")
	rootCmd.PersistentFlags().String("bars", "", "Path to a JSON bar list (defaults to the built-in sample)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Profile store backend: sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Connection string for mysql/postgresql/redis (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("store-key-prefix", contract.DefaultStoreKey, "Key prefix for the redis backend")
	rootCmd.PersistentFlags().String("pricing", string(schema.DifficultyPricing), "Order pricing: difficulty or ingredients")
	rootCmd.PersistentFlags().String("order-delay", contract.DefaultOrderDelay.String(), "Simulated point-of-sale delay")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultListenAddr, "Address for the HTTP server to listen on")
	serveCmd.Flags().Int("rate-limit", contract.DefaultRateLimit, "Requests per minute allowed per client IP")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins")
	serveCmd.Flags().Int("max-sessions", contract.DefaultMaxSessions, "Maximum web sessions kept in memory")
	serveCmd.Flags().String("session-ttl", contract.DefaultSessionTTL.String(), "Idle time before a web session is dropped")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Command-local flags are read from the command itself
	shareCmd.Flags().Int("drink", 0, "Catalog id of the drink to share (default shares the vibe)")
	searchCmd.Flags().String("spirit", "", "Only drinks with this base spirit")
	searchCmd.Flags().String("difficulty", "", "Only drinks with this difficulty")
	searchCmd.Flags().String("field", "all", "Field to match when browsing: all, name, spirit, description, flavor, glass")
	importCmd.Flags().String("format", "", "Input format: json, xlsx, tsv, html (default detected from the extension)")
	importCmd.Flags().String("sheet", "", "Worksheet to read for xlsx input")
	importCmd.Flags().String("into", "", "Catalog file to merge into (defaults to --catalog)")
	exportCmd.Flags().String("sheet", "", "Worksheet to write for xlsx output")
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}

// parseDrinkID converts a positional argument into a catalog id.
func parseDrinkID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid drink id '%s'. must be a positive integer", arg)
	}
	return id, nil
}
