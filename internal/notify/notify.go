package notify

import (
	"context"
	"log/slog"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Notifier delivers user-facing notifications. Delivery is best effort;
// implementations never block the calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID string, notification domain.Notification)
}

// LogNotifier writes notifications to the log. Used in tests and when no
// push transport is wired.
type LogNotifier struct{}

// Notify logs the notification
func (LogNotifier) Notify(_ context.Context, userID string, notification domain.Notification) {
	slog.Info("user notification",
		"user_id", userID,
		"type", notification.Type,
		"message", notification.Message)
}
