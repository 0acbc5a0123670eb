package domain

import "time"

// QuestStatus is the per-user quest state. not_started is implicit: no row.
type QuestStatus string

const (
	QuestStatusInProgress QuestStatus = "in_progress"
	QuestStatusCompleted  QuestStatus = "completed"
)

// Quest type constants
const (
	QuestTypeMain = "main"
	QuestTypeSide = "side"
)

// CompletedProgress is the progress value persisted on completion. Completed
// quests record 100 (a percentage convention) regardless of the raw
// target-based counter used while in progress.
const CompletedProgress = 100

// Quest is a static quest definition. Read-only catalog from the engine's
// perspective.
type Quest struct {
	ID               string    `json:"quest_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Type             string    `json:"quest_type"`
	RewardEntrobucks int       `json:"reward_entrobucks"`
	RewardXP         int       `json:"reward_xp"`
	RewardItem       *string   `json:"reward_item,omitempty"` // item ID (UUID) or exact item name
	Target           *int      `json:"target,omitempty"`      // nil for trigger-completed quests
	Hidden           bool      `json:"hidden"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserQuest joins a user to a quest. Progress is monotonically non-decreasing
// while status != completed; once completed the status never regresses.
type UserQuest struct {
	UserID      string      `json:"user_id"`
	QuestID     string      `json:"quest_id"`
	Status      QuestStatus `json:"status"`
	Progress    int         `json:"progress"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Joined fields from the quest catalog
	Title  string `json:"title,omitempty"`
	Target *int   `json:"target,omitempty"`
}

// Completed reports whether the quest has reached its terminal state
func (uq *UserQuest) Completed() bool {
	return uq.Status == QuestStatusCompleted
}
