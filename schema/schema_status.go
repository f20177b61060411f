package schema

import "time"

// StoreStatus represents the status of the profile store.
type StoreStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	Favorites      int       `json:"favorites"`
	Recents        int       `json:"recents"`
	Orders         int       `json:"orders"`
	LastOrderTime  time.Time `json:"last_order_time"`
	TableSizeBytes int64     `json:"table_size_bytes"`
}
