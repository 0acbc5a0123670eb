package repository

import (
	"context"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Ledger defines the interface for the append-only transaction audit trail.
// The engine only appends; reads exist for the admin surface.
type Ledger interface {
	Append(ctx context.Context, entry domain.Transaction) error
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}
