package repository

import (
	"context"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Session defines the interface for auth session resolution
type Session interface {
	// GetSession resolves a bearer token. A missing or expired token returns
	// (nil, nil): the caller treats it as anonymous, not as an error.
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}
