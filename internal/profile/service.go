package profile

import (
	"context"
	"fmt"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/notify"
	"github.com/entroverse/entroverse-api/internal/progression"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// Service defines the interface for profile cosmetics and set bonuses
type Service interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)

	// Equip assigns an owned, equippable item to its cosmetic slot and
	// returns the slot it landed in.
	Equip(ctx context.Context, userID, itemName string) (domain.EquipSlot, error)

	// Unequip clears the given cosmetic slot.
	Unequip(ctx context.Context, userID string, slot domain.EquipSlot) error

	// ClaimSet pays out a cosmetic set's one-time XP bonus. The user must
	// own every member item, and each set can be claimed once.
	ClaimSet(ctx context.Context, userID, setID string) (int, error)
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
	cosmetics  repository.Cosmetics
	procedures repository.Procedures
	publisher  Publisher
	notifier   notify.Notifier
	reloader   Reloader
}

// NewService creates a new profile service
func NewService(
	profiles repository.Profile,
	items repository.Item,
	inventory repository.Inventory,
	cosmetics repository.Cosmetics,
	procedures repository.Procedures,
	publisher Publisher,
	notifier notify.Notifier,
	reloader Reloader,
) Service {
	return &service{
		profiles:   profiles,
		items:      items,
		inventory:  inventory,
		cosmetics:  cosmetics,
		procedures: procedures,
		publisher:  publisher,
		notifier:   notifier,
		reloader:   reloader,
	}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Equip resolves the item by name, requires ownership, and writes the item
// name into its slot on the profile.
func (s *service) Equip(ctx context.Context, userID, itemName string) (domain.EquipSlot, error) {
	log := logger.FromContext(ctx)

	item, err := s.items.GetItemByName(ctx, itemName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve item: %w", err)
	}
	if !item.Equippable() {
		return "", fmt.Errorf("%w: %s", domain.ErrNotEquippable, item.Name)
	}
	slot := *item.Slot

	owned, err := s.ownsItem(ctx, userID, item.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owned {
		return "", fmt.Errorf("%w: %s", domain.ErrNotOwned, item.Name)
	}

	if err := s.profiles.UpdateEquippedSlot(ctx, userID, slot, &item.Name); err != nil {
		return "", fmt.Errorf("failed to equip item: %w", err)
	}
	log.Info("Item equipped", "user_id", userID, "item", item.Name, "slot", slot)

	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "item equipped")
	}
	return slot, nil
}

func (s *service) Unequip(ctx context.Context, userID string, slot domain.EquipSlot) error {
	if !slot.IsValid() {
		return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidInput, slot)
	}
	if err := s.profiles.UpdateEquippedSlot(ctx, userID, slot, nil); err != nil {
		return fmt.Errorf("failed to unequip slot: %w", err)
	}
	logger.FromContext(ctx).Info("Slot unequipped", "user_id", userID, "slot", slot)

	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "slot unequipped")
	}
	return nil
}

// awardXP applies the set bonus XP, falling back to the shared formula when
// the procedure is unavailable. Level changes are published, not acted on
// here: level-gated quests pick them up on the next evaluation.
func (s *service) awardXP(ctx context.Context, userID string, amount int, source string) {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Error("Failed to get profile for XP award", "user_id", userID, "error", err)
		return
	}
	oldLevel := profile.Level

	newLevel, newXP, err := s.procedures.AddXP(ctx, userID, amount)
	if err != nil {
		log.Warn("add_xp procedure failed, applying formula locally", "user_id", userID, "error", err)
		newLevel, newXP = progression.ApplyXP(profile.Level, profile.XP, amount)
		if err := s.profiles.UpdateLeveling(ctx, userID, newLevel, newXP); err != nil {
			log.Error("Failed to persist leveling fallback", "user_id", userID, "error", err)
			return
		}
	}
	log.Info("XP awarded", "user_id", userID, "amount", amount, "level", newLevel, "xp", newXP, "source", source)

	if newLevel > oldLevel && s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, oldLevel, newLevel, source))
	}
}

func (s *service) ownsItem(ctx context.Context, userID, itemID string) (bool, error) {
	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.ItemID == itemID && entry.Count > 0 {
			return true, nil
		}
	}
	return false, nil
}
