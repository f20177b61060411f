// Package iocache persists favorites, recently viewed drinks and order history.
package iocache

import (
	"sync"

	"github.com/huangsam/moodmixer/internal/contract"
)

// ProfileStoreManager manages the active ProfileStore instance.
type ProfileStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	profile      contract.ProfileStore
}

var _ contract.StoreManager = &ProfileStoreManager{} // Compile-time check

// GetProfileStore returns the profile store.
func (mgr *ProfileStoreManager) GetProfileStore() contract.ProfileStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.profile
}
