package repository

import (
	"context"
	"time"
)

// Procedures defines the interface for atomic server-side mutations
// implemented as database functions.
type Procedures interface {
	// AddXP pools XP into the profile and resolves level-ups inside the
	// database (same formula as internal/progression). Returns the new
	// level and remaining XP.
	AddXP(ctx context.Context, userID string, amount int) (level, xp int, err error)

	// AddItem grants one unit of the item, bumping the display count when
	// the user already owns it.
	AddItem(ctx context.Context, userID, itemID string) error

	// UseDuplicationGlitch consumes one unit of the modifier item and stamps
	// the profile's modifier expiry atomically. Returns the new expiry.
	UseDuplicationGlitch(ctx context.Context, userID, itemID string, duration time.Duration) (time.Time, error)
}
