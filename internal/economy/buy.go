package economy

import (
	"context"
	"fmt"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
)

const (
	purchaseResultOK       = "success"
	purchaseResultRejected = "rejected"
	purchaseResultFailed   = "error"
)

// BuyItem purchases a shop item: spend first, then grant, with a
// compensating refund when the grant fails so the balance never drifts.
func (s *service) BuyItem(ctx context.Context, userID, itemName string) (*domain.Item, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyItem called", "user_id", userID, "item", itemName)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByName(ctx, itemName)
	if err != nil {
		metrics.Purchases.WithLabelValues(purchaseResultRejected).Inc()
		return nil, err
	}
	if !item.InShop {
		metrics.Purchases.WithLabelValues(purchaseResultRejected).Inc()
		return nil, fmt.Errorf("%w: %s is not for sale", domain.ErrItemNotFound, item.Name)
	}

	// A consumed modifier loses its inventory row, making it buyable again
	owned, err := s.ownsItem(ctx, userID, item.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		metrics.Purchases.WithLabelValues(purchaseResultRejected).Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyOwned, item.Name)
	}

	if profile.Entrobucks < item.Cost {
		metrics.Purchases.WithLabelValues(purchaseResultRejected).Inc()
		return nil, fmt.Errorf("%w: %s costs %d, have %d",
			domain.ErrInsufficientEntrobucks, item.Name, item.Cost, profile.Entrobucks)
	}

	newBalance := profile.Entrobucks - item.Cost
	if err := s.profiles.UpdateEntrobucks(ctx, userID, newBalance); err != nil {
		metrics.Purchases.WithLabelValues(purchaseResultFailed).Inc()
		return nil, fmt.Errorf("failed to debit entrobucks: %w", err)
	}
	s.appendLedger(ctx, domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionPurchase,
		Amount:      -item.Cost,
		Description: fmt.Sprintf("bought %s", item.Name),
		ItemName:    &item.Name,
	})

	if err := s.procedures.AddItem(ctx, userID, item.ID); err != nil {
		log.Error("Item grant failed after debit, refunding", "user_id", userID, "item", item.Name, "error", err)
		s.refund(ctx, userID, profile.Entrobucks, item.Cost, item.Name)
		metrics.Purchases.WithLabelValues(purchaseResultFailed).Inc()
		return nil, fmt.Errorf("failed to grant item: %w", err)
	}

	metrics.Purchases.WithLabelValues(purchaseResultOK).Inc()
	metrics.EntrobucksSpent.Add(float64(item.Cost))

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewItemBoughtEvent(userID, *item))
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.NewRewardNotification(
			fmt.Sprintf("You bought %s", item.Name), 0, 0, item.Name))
	}
	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "purchase")
	}

	log.Info("Item purchased", "user_id", userID, "item", item.Name, "cost", item.Cost, "balance", newBalance)
	return item, nil
}

// refund restores the pre-purchase balance and records the compensating
// counter-entry in the ledger.
func (s *service) refund(ctx context.Context, userID string, previousBalance, cost int, itemName string) {
	if err := s.profiles.UpdateEntrobucks(ctx, userID, previousBalance); err != nil {
		// The balance is now wrong until the next successful write. Loud log,
		// nothing else to do without a transaction around both stores.
		logger.FromContext(ctx).Error("Compensating refund failed",
			"user_id", userID, "balance", previousBalance, "error", err)
		return
	}
	s.appendLedger(ctx, domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionEarn,
		Amount:      cost,
		Description: fmt.Sprintf("refund: purchase of %s failed", itemName),
		ItemName:    &itemName,
	})
}

func (s *service) ownsItem(ctx context.Context, userID, itemID string) (bool, error) {
	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	for _, entry := range entries {
		if entry.ItemID == itemID && entry.Count > 0 {
			return true, nil
		}
	}
	return false, nil
}
