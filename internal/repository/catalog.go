package repository

import (
	"context"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Item defines the interface for the item catalog
type Item interface {
	GetItems(ctx context.Context) ([]domain.Item, error)
	GetShopItems(ctx context.Context) ([]domain.Item, error)
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	// GetItemByName matches the exact name, case-insensitively
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
}

// Inventory defines the interface for per-user item ownership
type Inventory interface {
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	InsertEntry(ctx context.Context, userID, itemID string) error
	DeleteEntry(ctx context.Context, userID, itemID string) error
}
