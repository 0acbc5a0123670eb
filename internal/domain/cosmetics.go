package domain

import "time"

// CosmeticSet is a named collection of catalog items. Owning every member
// unlocks a one-time XP bonus claim.
type CosmeticSet struct {
	ID       string   `json:"set_id"`
	Name     string   `json:"name"`
	RewardXP int      `json:"reward_xp"`
	Hidden   bool     `json:"hidden"`
	ItemIDs  []string `json:"item_ids"`
}

// SetClaim records that a user already claimed a set bonus. At most one claim
// per (user, set).
type SetClaim struct {
	UserID    string    `json:"user_id"`
	SetID     string    `json:"set_id"`
	ClaimedAt time.Time `json:"claimed_at"`
}
