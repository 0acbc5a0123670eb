package domain

import "time"

// EquipSlot identifies a cosmetic slot on the profile
type EquipSlot string

const (
	SlotHead  EquipSlot = "head"
	SlotFace  EquipSlot = "face"
	SlotBody  EquipSlot = "body"
	SlotBadge EquipSlot = "badge"
)

// IsValid reports whether the slot is one of the known cosmetic slots
func (s EquipSlot) IsValid() bool {
	switch s {
	case SlotHead, SlotFace, SlotBody, SlotBadge:
		return true
	}
	return false
}

// Profile is the per-user game profile. One row per user, created on first
// successful authentication. Entrobucks never goes negative; Level and XP are
// kept consistent via the leveling formula in internal/progression.
type Profile struct {
	UserID            string     `json:"user_id"`
	Username          string     `json:"username"`
	Entrobucks        int        `json:"entrobucks"`
	XP                int        `json:"xp"`
	Level             int        `json:"level"`
	EquippedHead      *string    `json:"equipped_head,omitempty"`
	EquippedFace      *string    `json:"equipped_face,omitempty"`
	EquippedBody      *string    `json:"equipped_body,omitempty"`
	EquippedBadge     *string    `json:"equipped_badge,omitempty"`
	ModifierExpiresAt *time.Time `json:"modifier_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ModifierActive reports whether the drop-rate modifier is live at the given time
func (p *Profile) ModifierActive(now time.Time) bool {
	return p.ModifierExpiresAt != nil && p.ModifierExpiresAt.After(now)
}

// EquippedItem returns the item name equipped in the given slot, if any
func (p *Profile) EquippedItem(slot EquipSlot) *string {
	switch slot {
	case SlotHead:
		return p.EquippedHead
	case SlotFace:
		return p.EquippedFace
	case SlotBody:
		return p.EquippedBody
	case SlotBadge:
		return p.EquippedBadge
	}
	return nil
}

// SetEquippedItem assigns the item name (nil to unequip) for the given slot
func (p *Profile) SetEquippedItem(slot EquipSlot, itemName *string) {
	switch slot {
	case SlotHead:
		p.EquippedHead = itemName
	case SlotFace:
		p.EquippedFace = itemName
	case SlotBody:
		p.EquippedBody = itemName
	case SlotBadge:
		p.EquippedBadge = itemName
	}
}
