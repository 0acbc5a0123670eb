package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// LedgerRepository implements the append-only transaction ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append records a ledger entry
func (r *LedgerRepository) Append(ctx context.Context, entry domain.Transaction) error {
	id, err := parseID(entry.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (user_id, tx_type, amount, description, item_name)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.Exec(ctx, query, id, entry.Type, entry.Amount, entry.Description, entry.ItemName); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListRecent returns the user's newest ledger entries, newest first
func (r *LedgerRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, tx_type, amount, description, item_name, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		var entry domain.Transaction
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.Amount,
			&entry.Description,
			&entry.ItemName,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
