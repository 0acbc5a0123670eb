package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// ProfileRepository implements the profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, username, entrobucks, xp, level,
	equipped_head, equipped_face, equipped_body, equipped_badge,
	modifier_expires_at, created_at, updated_at`

// GetProfile retrieves a profile by user ID
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var p domain.Profile
	err = r.db.QueryRow(ctx, query, id).Scan(
		&p.UserID,
		&p.Username,
		&p.Entrobucks,
		&p.XP,
		&p.Level,
		&p.EquippedHead,
		&p.EquippedFace,
		&p.EquippedBody,
		&p.EquippedBadge,
		&p.ModifierExpiresAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// CreateProfile inserts a new profile row, created on first authentication
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (username, entrobucks, xp, level)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.Username,
		profile.Entrobucks,
		profile.XP,
		profile.Level,
	).Scan(&profile.UserID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// UpdateEntrobucks persists a new currency balance
func (r *ProfileRepository) UpdateEntrobucks(ctx context.Context, userID string, balance int) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET entrobucks = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update entrobucks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// UpdateLeveling persists a new level/xp pair
func (r *ProfileRepository) UpdateLeveling(ctx context.Context, userID string, level, xp int) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET level = $2, xp = $3, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, level, xp)
	if err != nil {
		return fmt.Errorf("failed to update leveling: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// slotColumns whitelists the equip-slot columns; slot values never reach SQL
// text directly.
var slotColumns = map[domain.EquipSlot]string{
	domain.SlotHead:  "equipped_head",
	domain.SlotFace:  "equipped_face",
	domain.SlotBody:  "equipped_body",
	domain.SlotBadge: "equipped_badge",
}

// UpdateEquippedSlot assigns (or clears, with nil) a cosmetic slot
func (r *ProfileRepository) UpdateEquippedSlot(ctx context.Context, userID string, slot domain.EquipSlot, itemName *string) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	column, ok := slotColumns[slot]
	if !ok {
		return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidInput, slot)
	}

	query := fmt.Sprintf(`UPDATE profiles SET %s = $2, updated_at = NOW() WHERE user_id = $1`, column)
	tag, err := r.db.Exec(ctx, query, id, itemName)
	if err != nil {
		return fmt.Errorf("failed to update equipped slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// UpdateModifierExpiry persists the modifier expiry timestamp (nil clears it)
func (r *ProfileRepository) UpdateModifierExpiry(ctx context.Context, userID string, expiresAt *time.Time) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET modifier_expires_at = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update modifier expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
