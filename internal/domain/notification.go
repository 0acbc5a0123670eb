package domain

// NotificationType tags a user-facing notification for rendering
type NotificationType string

const (
	NotificationInfo   NotificationType = "info"
	NotificationError  NotificationType = "error"
	NotificationReward NotificationType = "reward"
)

// RewardPayload carries structured reward data alongside a notification
type RewardPayload struct {
	XP         int    `json:"xp,omitempty"`
	Entrobucks int    `json:"entrobucks,omitempty"`
	ItemName   string `json:"item_name,omitempty"`
}

// Notification is a user-facing message emitted by the engine
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	Reward  *RewardPayload   `json:"reward,omitempty"`
}

// NewRewardNotification builds a reward notification with structured data
func NewRewardNotification(message string, xp, entrobucks int, itemName string) Notification {
	return Notification{
		Type:    NotificationReward,
		Message: message,
		Reward: &RewardPayload{
			XP:         xp,
			Entrobucks: entrobucks,
			ItemName:   itemName,
		},
	}
}
