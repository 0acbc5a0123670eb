package economy

import (
	"context"
	"fmt"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
	"github.com/entroverse/entroverse-api/internal/notify"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// Service defines the interface for the entrobucks economy
type Service interface {
	GetShopItems(ctx context.Context) ([]domain.Item, error)
	AddEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error)
	SpendEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error)
	CreditQuestReward(ctx context.Context, userID string, amount int, description string) (int, error)
	BuyItem(ctx context.Context, userID, itemName string) (*domain.Item, error)
}

// Publisher is the subset of the event publisher the service uses
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Reloader rebuilds a user's state snapshot after a mutation
type Reloader interface {
	Reload(ctx context.Context, userID, reason string)
}

type service struct {
	profiles   repository.Profile
	items      repository.Item
	inventory  repository.Inventory
	procedures repository.Procedures
	ledger     repository.Ledger
	publisher  Publisher
	notifier   notify.Notifier
	reloader   Reloader
}

// NewService creates a new economy service
func NewService(
	profiles repository.Profile,
	items repository.Item,
	inventory repository.Inventory,
	procedures repository.Procedures,
	ledger repository.Ledger,
	publisher Publisher,
	notifier notify.Notifier,
	reloader Reloader,
) Service {
	return &service{
		profiles:   profiles,
		items:      items,
		inventory:  inventory,
		procedures: procedures,
		ledger:     ledger,
		publisher:  publisher,
		notifier:   notifier,
		reloader:   reloader,
	}
}

func (s *service) GetShopItems(ctx context.Context) ([]domain.Item, error) {
	return s.items.GetShopItems(ctx)
}

// AddEntrobucks credits the balance and appends an earn entry to the ledger
func (s *service) AddEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := profile.Entrobucks + amount
	if err := s.profiles.UpdateEntrobucks(ctx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to credit entrobucks: %w", err)
	}

	s.appendLedger(ctx, domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionEarn,
		Amount:      amount,
		Description: reason,
	})
	metrics.EntrobucksEarned.Add(float64(amount))

	log.Info("Entrobucks credited", "user_id", userID, "amount", amount, "balance", newBalance, "reason", reason)
	return newBalance, nil
}

// SpendEntrobucks debits the balance, rejecting overdrafts with a typed error
func (s *service) SpendEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}

	if profile.Entrobucks < amount {
		return profile.Entrobucks, fmt.Errorf("%w: have %d, need %d",
			domain.ErrInsufficientEntrobucks, profile.Entrobucks, amount)
	}

	newBalance := profile.Entrobucks - amount
	if err := s.profiles.UpdateEntrobucks(ctx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to debit entrobucks: %w", err)
	}

	s.appendLedger(ctx, domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionSpend,
		Amount:      -amount,
		Description: reason,
	})
	metrics.EntrobucksSpent.Add(float64(amount))

	log.Info("Entrobucks debited", "user_id", userID, "amount", amount, "balance", newBalance, "reason", reason)
	return newBalance, nil
}

// CreditQuestReward credits entrobucks earned from a quest with its own
// ledger entry type, so quest income stays distinguishable in the audit trail
func (s *service) CreditQuestReward(ctx context.Context, userID string, amount int, description string) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := profile.Entrobucks + amount
	if err := s.profiles.UpdateEntrobucks(ctx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to credit entrobucks: %w", err)
	}

	s.appendLedger(ctx, domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionQuestComplete,
		Amount:      amount,
		Description: description,
	})
	metrics.EntrobucksEarned.Add(float64(amount))

	log.Info("Quest reward credited", "user_id", userID, "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// appendLedger records a transaction. The ledger is an audit trail, not the
// source of truth for balances, so a failed append is logged and swallowed.
func (s *service) appendLedger(ctx context.Context, entry domain.Transaction) {
	if err := s.ledger.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Error("Failed to append ledger entry",
			"user_id", entry.UserID, "tx_type", entry.Type, "error", err)
	}
}
