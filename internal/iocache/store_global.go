package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/redis/go-redis/v9"
)

// Global Manager instance for main logic.
var (
	Manager   = &ProfileStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for profile storage.
func GetDBFilePath() string {
	return contract.GetDBFilePath()
}

// InitStore initializes the global store manager.
// An empty backend leaves the manager without a store.
func InitStore(backend schema.DatabaseBackend, connStr, keyPrefix string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewProfileStore(backend, connStr, keyPrefix)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize profile store: %w", err)
			return
		}

		Manager.Lock()
		Manager.profile = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.profile != nil {
			_ = Manager.profile.Close()
		}
	})
}

// ClearStore removes all profile data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the profile tables.
// For Redis, it deletes the namespaced keys.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr, keyPrefix string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return clearSQLTables("pgx", connStr)

	case schema.RedisBackend:
		return clearRedisKeys(connStr, keyPrefix)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// clearSQLTables connects to the SQL database and drops the profile tables.
func clearSQLTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range profileTables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}

func clearRedisKeys(connStr, keyPrefix string) error {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return fmt.Errorf("invalid redis connection string: %w", err)
	}
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	store := newRedisProfileStore(client, keyPrefix)
	return store.clear(context.Background())
}
