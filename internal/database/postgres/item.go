package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// ItemRepository implements the item catalog repository for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `item_id, item_name, item_description, cost, category, rarity, slot, in_shop, created_at`

func scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Cost,
		&item.Category,
		&item.Rarity,
		&item.Slot,
		&item.InShop,
		&item.CreatedAt,
	)
	return item, err
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// GetItems returns the full item catalog
func (r *ItemRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_name`)
}

// GetShopItems returns only purchasable items
func (r *ItemRepository) GetShopItems(ctx context.Context) ([]domain.Item, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE in_shop ORDER BY cost, item_name`)
}

// GetItemByID retrieves a single catalog entry by ID
func (r *ItemRepository) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	id, err := parseID(itemID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// GetItemByName retrieves a catalog entry by exact name, case-insensitively
func (r *ItemRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE LOWER(item_name) = LOWER($1)`
	item, err := scanItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}

	return &item, nil
}
