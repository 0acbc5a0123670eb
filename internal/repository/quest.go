package repository

import (
	"context"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Quest defines the interface for quest catalog and per-user progress persistence
type Quest interface {
	// Catalog (read-only reference data)
	GetQuests(ctx context.Context) ([]domain.Quest, error)
	GetQuestByID(ctx context.Context, questID string) (*domain.Quest, error)

	// User quest progress
	GetUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error)
	InsertUserQuest(ctx context.Context, userQuest domain.UserQuest) error
	UpdateQuestProgress(ctx context.Context, userID, questID string, progress int) error

	// UpsertCompleted marks the quest completed with the terminal progress
	// value, keyed on (user, quest) so re-completion is idempotent at the
	// store level.
	UpsertCompleted(ctx context.Context, userID, questID string, progress int) error
}
