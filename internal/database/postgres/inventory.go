package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory returns a user's ownership rows joined with the item catalog.
// Rows whose catalog entry was deleted are dropped by the inner join.
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ui.user_id, ui.item_id, ui.item_count, ui.acquired_at,
		       i.item_id, i.item_name, i.item_description, i.cost,
		       i.category, i.rarity, i.slot, i.in_shop, i.created_at
		FROM user_items ui
		JOIN items i ON i.item_id = ui.item_id
		WHERE ui.user_id = $1 AND ui.item_count > 0
		ORDER BY ui.acquired_at
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var entry domain.InventoryEntry
		var item domain.Item
		err := rows.Scan(
			&entry.UserID,
			&entry.ItemID,
			&entry.Count,
			&entry.AcquiredAt,
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
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entry.Item = &item
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// InsertEntry grants one unit of the item, bumping the count on repeat grants
func (r *InventoryRepository) InsertEntry(ctx context.Context, userID, itemID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	iid, err := parseID(itemID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_items (user_id, item_id, item_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_id) DO UPDATE
		SET item_count = user_items.item_count + 1
	`
	if _, err := r.db.Exec(ctx, query, uid, iid); err != nil {
		return fmt.Errorf("failed to insert inventory entry: %w", err)
	}
	return nil
}

// DeleteEntry removes a user's ownership row entirely
func (r *InventoryRepository) DeleteEntry(ctx context.Context, userID, itemID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	iid, err := parseID(itemID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM user_items WHERE user_id = $1 AND item_id = $2`, uid, iid)
	if err != nil {
		return fmt.Errorf("failed to delete inventory entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotOwned
	}
	return nil
}
