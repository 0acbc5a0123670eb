package state

import (
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// SnapshotSchemaVersion is the current version of the cached snapshot shape.
// Bump it when Snapshot changes so stale cache entries self-invalidate.
const SnapshotSchemaVersion = "1.0"

// Snapshot is the full game state for one user, assembled from the catalog
// tables and the user-scoped rows. It is what the UI renders from and what
// the cache holds between mutations.
type Snapshot struct {
	Version       string                  `json:"version"`
	Authenticated bool                    `json:"authenticated"`
	Profile       *domain.Profile         `json:"profile,omitempty"`
	Quests        []domain.Quest          `json:"quests"`
	UserQuests    []domain.UserQuest      `json:"user_quests"`
	Inventory     []domain.InventoryEntry `json:"inventory"`
	ShopItems     []domain.Item           `json:"shop_items"`
	Sets          []domain.CosmeticSet    `json:"sets"`
	Claims        []domain.SetClaim       `json:"claims"`
	LoadedAt      time.Time               `json:"loaded_at"`
}

// emptySnapshot is what anonymous sessions see: the public catalog surface
// only, nothing user-scoped.
func emptySnapshot() *Snapshot {
	return &Snapshot{
		Version:       SnapshotSchemaVersion,
		Authenticated: false,
		Quests:        []domain.Quest{},
		UserQuests:    []domain.UserQuest{},
		Inventory:     []domain.InventoryEntry{},
		ShopItems:     []domain.Item{},
		Sets:          []domain.CosmeticSet{},
		Claims:        []domain.SetClaim{},
		LoadedAt:      time.Now(),
	}
}
