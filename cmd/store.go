package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/iocache"
	"github.com/huangsam/moodmixer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig loads only the store settings from file, env and flags.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, redis, none", backend)
	}
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.StoreKeyPrefix = viper.GetString("store-key-prefix")
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup loads store settings and opens the store.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := iocache.InitStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreKeyPrefix); err != nil {
		return fmt.Errorf("failed to initialize profile store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeConfigWrapper loads store settings without opening the store, so
// migrations can run against a fresh database.
func storeConfigWrapper(_ *cobra.Command, _ []string) error {
	return storeConfig()
}

// storeCmd focused on profile store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the mood commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the profile store (favorites, recents, orders)",
	Long: `Manage the store that keeps favorites, recently viewed drinks and orders.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None (in-memory)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored profile data
  migrate - Run database schema migrations
  export  - Export order history to Parquet

Examples:
  # Check store status
  moodmixer store status

  # Use Redis instead of SQLite
  MOODMIXER_STORE_BACKEND=redis MOODMIXER_STORE_DB_CONNECT="redis://localhost:6379/0" moodmixer store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, row counts, last activity and size.

Examples:
  moodmixer store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetProfileStore()
		if store == nil {
			contract.LogFatal("Failed to get store status", fmt.Errorf("profile store is not initialized"))
		}
		status, err := store.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites, recents and orders",
	Long: `Delete all profile data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the profile tables
For Redis: Deletes the keys under --store-key-prefix

Examples:
  # Clear SQLite store (default)
  moodmixer store clear

  # Clear MySQL store (set connection string via env variable)
  MOODMIXER_STORE_BACKEND=mysql MOODMIXER_STORE_DB_CONNECT="..." moodmixer store clear`,
	PreRunE: storeConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, iocache.GetDBFilePath(), cfg.StoreDBConnect, cfg.StoreKeyPrefix); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the profile store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Apply the embedded schema migrations to a SQL backend.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  moodmixer store migrate

  # Migrate to specific version
  moodmixer store migrate --target-version 1

  # Rollback all migrations
  moodmixer store migrate --target-version 0`,
	PreRunE: storeConfigWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion, _ := cmd.Flags().GetInt("target-version")
		if err := iocache.Migrate(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Migration failed", err)
		}
	},
}

// storeExportCmd exports order history to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export order history to Parquet for analytics",
	Long: `Write every recorded order to a Parquet file for pandas, DuckDB or Spark.

Examples:
  moodmixer store export --output-file orders.parquet`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExportOrders(rootCtx, os.Stdout, iocache.Manager.GetProfileStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export orders", err)
		}
	},
}
