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

// SessionRepository implements session token resolution for PostgreSQL
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSession resolves a bearer token. A missing or expired token returns
// (nil, nil); the request proceeds anonymously.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	query := `
		SELECT s.token, s.user_id, p.username, s.expires_at
		FROM sessions s
		JOIN profiles p ON p.user_id = s.user_id
		WHERE s.token = $1
	`

	var session domain.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.Username,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}
