package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// ProceduresRepository calls the server-side mutation functions installed by
// the migrations. Each function runs inside its own transaction with the
// profile row locked, so concurrent callers serialize at the database.
type ProceduresRepository struct {
	db *pgxpool.Pool
}

// NewProceduresRepository creates a new ProceduresRepository
func NewProceduresRepository(db *pgxpool.Pool) *ProceduresRepository {
	return &ProceduresRepository{db: db}
}

// AddXP pools XP into the profile and resolves level-ups in the database
func (r *ProceduresRepository) AddXP(ctx context.Context, userID string, amount int) (int, int, error) {
	id, err := parseID(userID)
	if err != nil {
		return 0, 0, err
	}

	var level, xp int
	err = r.db.QueryRow(ctx, `SELECT new_level, new_xp FROM add_xp($1, $2)`, id, amount).Scan(&level, &xp)
	if err != nil {
		if strings.Contains(err.Error(), "profile not found") {
			return 0, 0, domain.ErrProfileNotFound
		}
		return 0, 0, fmt.Errorf("add_xp failed: %w", err)
	}
	return level, xp, nil
}

// AddItem grants one unit of the item via the upsert function
func (r *ProceduresRepository) AddItem(ctx context.Context, userID, itemID string) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	iid, err := parseID(itemID)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `SELECT add_item($1, $2)`, uid, iid); err != nil {
		return fmt.Errorf("add_item failed: %w", err)
	}
	return nil
}

// UseDuplicationGlitch consumes one unit and stamps the modifier expiry
// atomically. The function raises when the user does not own the item.
func (r *ProceduresRepository) UseDuplicationGlitch(ctx context.Context, userID, itemID string, duration time.Duration) (time.Time, error) {
	uid, err := parseID(userID)
	if err != nil {
		return time.Time{}, err
	}
	iid, err := parseID(itemID)
	if err != nil {
		return time.Time{}, err
	}

	var expiresAt time.Time
	err = r.db.QueryRow(ctx,
		`SELECT use_duplication_glitch($1, $2, $3)`,
		uid, iid, int(duration.Seconds()),
	).Scan(&expiresAt)
	if err != nil {
		if strings.Contains(err.Error(), "item not owned") {
			return time.Time{}, domain.ErrNotOwned
		}
		return time.Time{}, fmt.Errorf("use_duplication_glitch failed: %w", err)
	}
	return expiresAt, nil
}
