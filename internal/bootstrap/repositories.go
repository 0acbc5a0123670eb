package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entroverse/entroverse-api/internal/database/postgres"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Profile    repository.Profile
	Quest      repository.Quest
	Item       repository.Item
	Inventory  repository.Inventory
	Cosmetics  repository.Cosmetics
	Ledger     repository.Ledger
	Procedures repository.Procedures
	Session    repository.Session
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profile:    postgres.NewProfileRepository(dbPool),
		Quest:      postgres.NewQuestRepository(dbPool),
		Item:       postgres.NewItemRepository(dbPool),
		Inventory:  postgres.NewInventoryRepository(dbPool),
		Cosmetics:  postgres.NewCosmeticsRepository(dbPool),
		Ledger:     postgres.NewLedgerRepository(dbPool),
		Procedures: postgres.NewProceduresRepository(dbPool),
		Session:    postgres.NewSessionRepository(dbPool),
	}
}
