package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// parseID validates that a string identifier is a well-formed UUID before it
// reaches a query parameter.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return parsed, nil
}
