package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for the profile store.
const (
	favoritesTable = "moodmixer_favorites"
	recentsTable   = "moodmixer_recents"
	ordersTable    = "moodmixer_orders"
)

// MaxRecents caps the recently viewed list.
const MaxRecents = 10

var profileTables = []string{favoritesTable, recentsTable, ordersTable}

// ProfileStoreImpl stores profile data in a SQL database.
type ProfileStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ProfileStore = &ProfileStoreImpl{} // Compile-time check

// NewProfileStore initializes and returns a new ProfileStore based on the backend type.
// keyPrefix namespaces the Redis keys and is ignored by the SQL backends.
func NewProfileStore(backend schema.DatabaseBackend, connStr, keyPrefix string) (contract.ProfileStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.RedisBackend:
		return NewRedisProfileStore(connStr, keyPrefix)

	case schema.NoneBackend:
		return NewMemoryProfileStore(), nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, redis, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if err := createProfileTables(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ProfileStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// createProfileTables runs every up migration in order. Each file holds a
// single idempotent CREATE TABLE statement.
func createProfileTables(db *sql.DB) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		query, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders for backends that use numbered parameters.
func (ps *ProfileStoreImpl) rebind(query string) string {
	if ps.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// nextStamp returns a nanosecond timestamp strictly after every stamp in column.
func (ps *ProfileStoreImpl) nextStamp(ctx context.Context, table, column string) (int64, error) {
	var last int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", column, table)
	if err := ps.db.QueryRowContext(ctx, query).Scan(&last); err != nil {
		return 0, err
	}
	return max(time.Now().UnixNano(), last+1), nil
}

func (ps *ProfileStoreImpl) queryIDs(ctx context.Context, query string) ([]int, error) {
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ToggleFavorite implements the ProfileStore interface.
func (ps *ProfileStoreImpl) ToggleFavorite(ctx context.Context, drinkID int) (bool, error) {
	res, err := ps.db.ExecContext(ctx, ps.rebind(fmt.Sprintf("DELETE FROM %s WHERE drink_id = ?", favoritesTable)), drinkID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return false, nil
	}

	ts, err := ps.nextStamp(ctx, favoritesTable, "created_at")
	if err != nil {
		return false, fmt.Errorf("failed to read favorites: %w", err)
	}
	query := ps.rebind(fmt.Sprintf("INSERT INTO %s (drink_id, created_at) VALUES (?, ?)", favoritesTable))
	if _, err := ps.db.ExecContext(ctx, query, drinkID, ts); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// Favorites implements the ProfileStore interface.
func (ps *ProfileStoreImpl) Favorites(ctx context.Context) ([]int, error) {
	ids, err := ps.queryIDs(ctx, fmt.Sprintf("SELECT drink_id FROM %s ORDER BY created_at ASC", favoritesTable))
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// AddRecent implements the ProfileStore interface.
func (ps *ProfileStoreImpl) AddRecent(ctx context.Context, drinkID int) error {
	var count int
	query := ps.rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE drink_id = ?", recentsTable))
	if err := ps.db.QueryRowContext(ctx, query, drinkID).Scan(&count); err != nil {
		return fmt.Errorf("failed to read recents: %w", err)
	}
	if count > 0 {
		return nil
	}

	ts, err := ps.nextStamp(ctx, recentsTable, "viewed_at")
	if err != nil {
		return fmt.Errorf("failed to read recents: %w", err)
	}
	insert := ps.rebind(fmt.Sprintf("INSERT INTO %s (drink_id, viewed_at) VALUES (?, ?)", recentsTable))
	if _, err := ps.db.ExecContext(ctx, insert, drinkID, ts); err != nil {
		return fmt.Errorf("failed to add recent: %w", err)
	}

	ids, err := ps.Recents(ctx)
	if err != nil {
		return err
	}
	if len(ids) <= MaxRecents {
		return nil
	}
	remove := ps.rebind(fmt.Sprintf("DELETE FROM %s WHERE drink_id = ?", recentsTable))
	for _, id := range ids[MaxRecents:] {
		if _, err := ps.db.ExecContext(ctx, remove, id); err != nil {
			return fmt.Errorf("failed to trim recents: %w", err)
		}
	}
	return nil
}

// Recents implements the ProfileStore interface.
func (ps *ProfileStoreImpl) Recents(ctx context.Context) ([]int, error) {
	ids, err := ps.queryIDs(ctx, fmt.Sprintf("SELECT drink_id FROM %s ORDER BY viewed_at DESC", recentsTable))
	if err != nil {
		return nil, fmt.Errorf("failed to list recents: %w", err)
	}
	return ids, nil
}

// RecordOrder implements the ProfileStore interface.
func (ps *ProfileStoreImpl) RecordOrder(ctx context.Context, order schema.Order) error {
	query := ps.rebind(fmt.Sprintf(`INSERT INTO %s (order_id, drink_id, drink_name, bar_id, bar_name, price, merchant_id, ordered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, ordersTable))
	merchant := sql.NullString{String: order.MerchantID, Valid: order.MerchantID != ""}
	_, err := ps.db.ExecContext(ctx, query,
		order.OrderID, order.DrinkID, order.DrinkName, order.BarID, order.BarName,
		order.Price, merchant, order.OrderedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record order %s: %w", order.OrderID, err)
	}
	return nil
}

// Orders implements the ProfileStore interface.
func (ps *ProfileStoreImpl) Orders(ctx context.Context, limit int) ([]schema.Order, error) {
	query := fmt.Sprintf(`SELECT order_id, drink_id, drink_name, bar_id, bar_name, price, merchant_id, ordered_at
		FROM %s ORDER BY ordered_at DESC`, ordersTable)
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := ps.db.QueryContext(ctx, ps.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]schema.Order, 0)
	for rows.Next() {
		var o schema.Order
		var merchant sql.NullString
		var orderedAt int64
		if err := rows.Scan(&o.OrderID, &o.DrinkID, &o.DrinkName, &o.BarID, &o.BarName, &o.Price, &merchant, &orderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.MerchantID = merchant.String
		o.OrderedAt = time.Unix(0, orderedAt).UTC()
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Close closes the underlying DB connection.
func (ps *ProfileStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the profile store.
func (ps *ProfileStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}
	if ps.db == nil {
		return status, nil
	}

	counts := []struct {
		table string
		dest  *int
	}{
		{favoritesTable, &status.Favorites},
		{recentsTable, &status.Recents},
		{ordersTable, &status.Orders},
	}
	for _, c := range counts {
		if err := ps.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table)).Scan(c.dest); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	if status.Orders > 0 {
		var lastTs int64
		if err := ps.db.QueryRowContext(ctx, fmt.Sprintf("SELECT MAX(ordered_at) FROM %s", ordersTable)).Scan(&lastTs); err != nil {
			return status, fmt.Errorf("failed to get last order time: %w", err)
		}
		status.LastOrderTime = time.Unix(0, lastTs).UTC()
	}

	status.TableSizeBytes = ps.estimateSize(ctx, status)
	return status, nil
}

// estimateSize asks the database for its footprint and falls back to a rough
// per-row estimate.
func (ps *ProfileStoreImpl) estimateSize(ctx context.Context, status schema.StoreStatus) int64 {
	fallback := int64(status.Favorites+status.Recents+status.Orders) * 100
	var size int64

	switch ps.backend {
	case schema.SQLiteBackend:
		row := ps.db.QueryRowContext(ctx, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		query := `SELECT COALESCE(SUM(data_length + index_length), 0) FROM information_schema.tables
			WHERE table_schema = ? AND table_name IN (?, ?, ?)`
		row := ps.db.QueryRowContext(ctx, query, cfg.DBName, favoritesTable, recentsTable, ordersTable)
		if err := row.Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		for _, table := range profileTables {
			var tableSize int64
			if err := ps.db.QueryRowContext(ctx, "SELECT pg_total_relation_size($1)", table).Scan(&tableSize); err != nil {
				return fallback
			}
			size += tableSize
		}
		return size

	default:
		return fallback
	}
}
