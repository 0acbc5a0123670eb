package domain

import "time"

// ItemCategory groups catalog entries by how the engine treats them
type ItemCategory string

const (
	CategoryCosmetic ItemCategory = "cosmetic"
	CategoryBadge    ItemCategory = "badge"
	CategoryModifier ItemCategory = "modifier"
	CategoryOther    ItemCategory = "other"
)

// Rarity is the visual rarity tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Item is a static catalog entry. Shared read-only reference data.
type Item struct {
	ID          string       `json:"item_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cost        int          `json:"cost"`
	Category    ItemCategory `json:"category"`
	Rarity      Rarity       `json:"rarity"`
	Slot        *EquipSlot   `json:"slot,omitempty"` // nil for non-equippable items
	InShop      bool         `json:"in_shop"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Equippable reports whether the item can be assigned to a cosmetic slot
func (i *Item) Equippable() bool {
	return i.Slot != nil && i.Slot.IsValid()
}

// InventoryEntry is an ownership record linking a user to a catalog item.
// Owning at least one unit is the canonical ownership predicate; duplicate
// grants only bump the display count.
type InventoryEntry struct {
	UserID     string    `json:"user_id"`
	ItemID     string    `json:"item_id"`
	Count      int       `json:"count"`
	AcquiredAt time.Time `json:"acquired_at"`

	// Joined from the item catalog during snapshot assembly. Entries whose
	// item no longer exists in the catalog are dropped, not surfaced.
	Item *Item `json:"item,omitempty"`
}
