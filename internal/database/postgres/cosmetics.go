package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// CosmeticsRepository implements the cosmetic set repository for PostgreSQL
type CosmeticsRepository struct {
	db *pgxpool.Pool
}

// NewCosmeticsRepository creates a new CosmeticsRepository
func NewCosmeticsRepository(db *pgxpool.Pool) *CosmeticsRepository {
	return &CosmeticsRepository{db: db}
}

// GetSets returns the set catalog with member item IDs assembled in order
func (r *CosmeticsRepository) GetSets(ctx context.Context) ([]domain.CosmeticSet, error) {
	query := `SELECT set_id, set_name, reward_xp, hidden FROM cosmetic_sets ORDER BY set_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cosmetic sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.CosmeticSet
	index := make(map[string]int)
	for rows.Next() {
		var set domain.CosmeticSet
		if err := rows.Scan(&set.ID, &set.Name, &set.RewardXP, &set.Hidden); err != nil {
			return nil, fmt.Errorf("failed to scan cosmetic set: %w", err)
		}
		index[set.ID] = len(sets)
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	memberRows, err := r.db.Query(ctx, `SELECT set_id, item_id FROM cosmetic_set_items`)
	if err != nil {
		return nil, fmt.Errorf("failed to query set members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var setID, itemID string
		if err := memberRows.Scan(&setID, &itemID); err != nil {
			return nil, fmt.Errorf("failed to scan set member: %w", err)
		}
		if i, ok := index[setID]; ok {
			sets[i].ItemIDs = append(sets[i].ItemIDs, itemID)
		}
	}
	if err = memberRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sets, nil
}

// GetClaims returns the user's recorded set bonus claims
func (r *CosmeticsRepository) GetClaims(ctx context.Context, userID string) ([]domain.SetClaim, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT user_id, set_id, claimed_at FROM user_set_claims WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query set claims: %w", err)
	}
	defer rows.Close()

	var claims []domain.SetClaim
	for rows.Next() {
		var claim domain.SetClaim
		if err := rows.Scan(&claim.UserID, &claim.SetID, &claim.ClaimedAt); err != nil {
			return nil, fmt.Errorf("failed to scan set claim: %w", err)
		}
		claims = append(claims, claim)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return claims, nil
}

// InsertClaim records a set bonus claim. The primary key on (user, set)
// makes a repeat claim surface as ErrSetAlreadyClaimed.
func (r *CosmeticsRepository) InsertClaim(ctx context.Context, claim domain.SetClaim) error {
	uid, err := parseID(claim.UserID)
	if err != nil {
		return err
	}
	sid, err := parseID(claim.SetID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_set_claims (user_id, set_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, set_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, uid, sid)
	if err != nil {
		return fmt.Errorf("failed to insert set claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSetAlreadyClaimed
	}
	return nil
}
