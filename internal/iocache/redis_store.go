package iocache

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/schema"
	"github.com/redis/go-redis/v9"
)

// RedisProfileStore keeps profile data in Redis lists.
// Keys are namespaced as "{prefix}:profile:{name}".
type RedisProfileStore struct {
	client *redis.Client
	prefix string
}

var _ contract.ProfileStore = &RedisProfileStore{} // Compile-time check

// NewRedisProfileStore connects to the Redis URL in connStr.
func NewRedisProfileStore(connStr, keyPrefix string) (*RedisProfileStore, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w. Check format: redis://[:password@]host:port/db", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return newRedisProfileStore(client, keyPrefix), nil
}

func newRedisProfileStore(client *redis.Client, keyPrefix string) *RedisProfileStore {
	if keyPrefix == "" {
		keyPrefix = contract.DefaultStoreKey
	}
	return &RedisProfileStore{client: client, prefix: keyPrefix}
}

func (r *RedisProfileStore) key(name string) string {
	return fmt.Sprintf("%s:profile:%s", r.prefix, name)
}

func (r *RedisProfileStore) ids(ctx context.Context, name string) ([]int, error) {
	items, err := r.client.LRange(ctx, r.key(name), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(items))
	for _, item := range items {
		id, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("corrupt %s entry %q: %w", name, item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ToggleFavorite implements the ProfileStore interface.
func (r *RedisProfileStore) ToggleFavorite(ctx context.Context, drinkID int) (bool, error) {
	removed, err := r.client.LRem(ctx, r.key("favorites"), 0, drinkID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	if removed > 0 {
		return false, nil
	}
	if err := r.client.RPush(ctx, r.key("favorites"), drinkID).Err(); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// Favorites implements the ProfileStore interface.
func (r *RedisProfileStore) Favorites(ctx context.Context) ([]int, error) {
	ids, err := r.ids(ctx, "favorites")
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

// AddRecent implements the ProfileStore interface.
func (r *RedisProfileStore) AddRecent(ctx context.Context, drinkID int) error {
	ids, err := r.ids(ctx, "recents")
	if err != nil {
		return fmt.Errorf("failed to read recents: %w", err)
	}
	if slices.Contains(ids, drinkID) {
		return nil
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key("recents"), drinkID)
		pipe.LTrim(ctx, r.key("recents"), 0, MaxRecents-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add recent: %w", err)
	}
	return nil
}

// Recents implements the ProfileStore interface.
func (r *RedisProfileStore) Recents(ctx context.Context) ([]int, error) {
	ids, err := r.ids(ctx, "recents")
	if err != nil {
		return nil, fmt.Errorf("failed to list recents: %w", err)
	}
	return ids, nil
}

// RecordOrder implements the ProfileStore interface.
func (r *RedisProfileStore) RecordOrder(ctx context.Context, order schema.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order %s: %w", order.OrderID, err)
	}
	if err := r.client.LPush(ctx, r.key("orders"), data).Err(); err != nil {
		return fmt.Errorf("failed to record order %s: %w", order.OrderID, err)
	}
	return nil
}

// Orders implements the ProfileStore interface.
func (r *RedisProfileStore) Orders(ctx context.Context, limit int) ([]schema.Order, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	items, err := r.client.LRange(ctx, r.key("orders"), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]schema.Order, 0, len(items))
	for _, item := range items {
		var o schema.Order
		if err := json.Unmarshal([]byte(item), &o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// GetStatus implements the ProfileStore interface.
func (r *RedisProfileStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: string(schema.RedisBackend)}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return status, nil
	}
	status.Connected = true

	counts := []struct {
		name string
		dest *int
	}{
		{"favorites", &status.Favorites},
		{"recents", &status.Recents},
		{"orders", &status.Orders},
	}
	for _, c := range counts {
		n, err := r.client.LLen(ctx, r.key(c.name)).Result()
		if err != nil {
			return status, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
		*c.dest = int(n)

		// MEMORY USAGE is optional on some servers
		if size, err := r.client.MemoryUsage(ctx, r.key(c.name)).Result(); err == nil {
			status.TableSizeBytes += size
		}
	}

	if status.Orders > 0 {
		latest, err := r.Orders(ctx, 1)
		if err != nil {
			return status, err
		}
		status.LastOrderTime = latest[0].OrderedAt
	}
	return status, nil
}

// Close implements the ProfileStore interface.
func (r *RedisProfileStore) Close() error {
	return r.client.Close()
}

func (r *RedisProfileStore) clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key("favorites"), r.key("recents"), r.key("orders")).Err(); err != nil {
		return fmt.Errorf("failed to delete redis keys: %w", err)
	}
	return nil
}
