package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
)

// ClaimSet validates completeness and claims the set bonus. The insert's
// conflict key is what actually enforces at-most-once; the claims read is
// only there to answer with the right rejection before doing any work.
func (s *service) ClaimSet(ctx context.Context, userID, setID string) (int, error) {
	log := logger.FromContext(ctx)

	sets, err := s.cosmetics.GetSets(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get cosmetic sets: %w", err)
	}
	var set *domain.CosmeticSet
	for i := range sets {
		if sets[i].ID == setID {
			set = &sets[i]
			break
		}
	}
	if set == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrSetNotFound, setID)
	}

	claims, err := s.cosmetics.GetClaims(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get set claims: %w", err)
	}
	for _, claim := range claims {
		if claim.SetID == setID {
			return 0, fmt.Errorf("%w: %s", domain.ErrSetAlreadyClaimed, set.Name)
		}
	}

	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get inventory: %w", err)
	}
	owned := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Count > 0 {
			owned[entry.ItemID] = true
		}
	}
	for _, itemID := range set.ItemIDs {
		if !owned[itemID] {
			return 0, fmt.Errorf("%w: %s", domain.ErrSetIncomplete, set.Name)
		}
	}

	claim := domain.SetClaim{UserID: userID, SetID: setID, ClaimedAt: time.Now()}
	if err := s.cosmetics.InsertClaim(ctx, claim); err != nil {
		return 0, fmt.Errorf("failed to insert set claim: %w", err)
	}
	log.Info("Set bonus claimed", "user_id", userID, "set", set.Name, "reward_xp", set.RewardXP)

	if set.RewardXP > 0 {
		s.awardXP(ctx, userID, set.RewardXP, fmt.Sprintf("set:%s", set.Name))
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewSetClaimedEvent(userID, *set))
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.NewRewardNotification(
			fmt.Sprintf("Set complete: %s!", set.Name), set.RewardXP, 0, ""))
	}
	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "set claimed")
	}
	return set.RewardXP, nil
}
