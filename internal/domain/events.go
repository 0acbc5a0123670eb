package domain

// Event type names published on the internal bus
const (
	EventTypeQuestCompleted    = "quest.completed"
	EventTypeItemBought        = "item.bought"
	EventTypeItemDropped       = "item.dropped"
	EventTypeModifierActivated = "modifier.activated"
	EventTypeLevelUp           = "profile.levelup"
	EventTypeRewardRepaired    = "reward.repaired"
	EventTypeSnapshotReloaded  = "state.reloaded"
	EventTypeSetClaimed        = "set.claimed"
	EventTypePongWin           = "minigame.pong_win"
)

// QuestCompletedPayload is the typed payload for quest completion events
type QuestCompletedPayload struct {
	UserID           string `json:"user_id"`
	QuestID          string `json:"quest_id"`
	QuestTitle       string `json:"quest_title"`
	RewardXP         int    `json:"reward_xp"`
	RewardEntrobucks int    `json:"reward_entrobucks"`
	RewardItem       string `json:"reward_item,omitempty"`
	Timestamp        int64  `json:"timestamp"`
}

// ItemBoughtPayload is the typed payload for shop purchases
type ItemBoughtPayload struct {
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Cost      int    `json:"cost"`
	Timestamp int64  `json:"timestamp"`
}

// ItemDroppedPayload is the typed payload for minigame drop rolls that landed
type ItemDroppedPayload struct {
	UserID     string `json:"user_id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	Rarity     string `json:"rarity"`
	Difficulty string `json:"difficulty"`
	Boosted    bool   `json:"boosted"` // true when the drop-rate modifier was live
	Timestamp  int64  `json:"timestamp"`
}

// PongWinPayload is the typed payload for pong round wins
type PongWinPayload struct {
	UserID     string `json:"user_id"`
	Difficulty string `json:"difficulty"`
	Dropped    bool   `json:"dropped"` // whether the win's drop roll landed
	Timestamp  int64  `json:"timestamp"`
}

// ModifierActivatedPayload is the typed payload for modifier activations
type ModifierActivatedPayload struct {
	UserID    string `json:"user_id"`
	ItemName  string `json:"item_name"`
	ExpiresAt int64  `json:"expires_at"`
}

// LevelUpPayload is the typed payload for profile level changes
type LevelUpPayload struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Source   string `json:"source,omitempty"`
}

// RewardRepairedPayload is the typed payload for verification-sweep repairs
type RewardRepairedPayload struct {
	UserID     string   `json:"user_id"`
	QuestID    string   `json:"quest_id"`
	QuestTitle string   `json:"quest_title"`
	Items      []string `json:"items"`
	Timestamp  int64    `json:"timestamp"`
}

// SnapshotReloadedPayload is the typed payload for snapshot invalidations
type SnapshotReloadedPayload struct {
	UserID    string `json:"user_id"`
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SetClaimedPayload is the typed payload for cosmetic set bonus claims
type SetClaimedPayload struct {
	UserID   string `json:"user_id"`
	SetID    string `json:"set_id"`
	SetName  string `json:"set_name"`
	RewardXP int    `json:"reward_xp"`
}
