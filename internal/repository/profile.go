package repository

import (
	"context"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Profile defines the interface for profile persistence
type Profile interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	UpdateEntrobucks(ctx context.Context, userID string, balance int) error
	UpdateLeveling(ctx context.Context, userID string, level, xp int) error
	UpdateEquippedSlot(ctx context.Context, userID string, slot domain.EquipSlot, itemName *string) error
	UpdateModifierExpiry(ctx context.Context, userID string, expiresAt *time.Time) error
}
