package repository

import (
	"context"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Cosmetics defines the interface for cosmetic sets and set bonus claims
type Cosmetics interface {
	// GetSets returns the set catalog joined with member item IDs
	GetSets(ctx context.Context) ([]domain.CosmeticSet, error)
	GetClaims(ctx context.Context, userID string) ([]domain.SetClaim, error)
	// InsertClaim enforces at most one claim per (user, set)
	InsertClaim(ctx context.Context, claim domain.SetClaim) error
}
