package quest

import (
	"context"
	"fmt"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
)

// VerifyRewards sweeps the user's completed quests and re-grants reward
// items the inventory is missing. For the corrupted quest family the sweep
// also re-credits the entrobucks and XP payout, since those quests are the
// ones observed losing rewards to interrupted completions.
func (s *service) VerifyRewards(ctx context.Context, userID string) error {
	s.wg.Add(1)
	defer s.wg.Done()

	log := logger.FromContext(ctx)

	userQuests, err := s.quests.GetUserQuests(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user quests: %w", err)
	}

	catalog, err := s.quests.GetQuests(ctx)
	if err != nil {
		return fmt.Errorf("failed to get quest catalog: %w", err)
	}
	questsByID := make(map[string]domain.Quest, len(catalog))
	for _, q := range catalog {
		questsByID[q.ID] = q
	}

	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	owned := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Count > 0 {
			owned[entry.ItemID] = true
		}
	}

	repairedAny := false
	for _, uq := range userQuests {
		if !uq.Completed() {
			continue
		}
		quest, ok := questsByID[uq.QuestID]
		if !ok {
			continue
		}

		names, _ := rewardItemNames(&quest)
		var repaired []string
		for _, name := range names {
			item, err := s.resolveItemRef(ctx, name)
			if err != nil {
				log.Warn("Sweep could not resolve reward item", "quest", quest.Title, "item", name, "error", err)
				continue
			}
			if owned[item.ID] {
				continue
			}
			if err := s.procedures.AddItem(ctx, userID, item.ID); err != nil {
				log.Error("Sweep failed to re-grant item", "user_id", userID, "item", item.Name, "error", err)
				continue
			}
			owned[item.ID] = true
			repaired = append(repaired, item.Name)
		}

		if len(repaired) == 0 {
			continue
		}
		repairedAny = true
		metrics.RewardsRepaired.Add(float64(len(repaired)))
		log.Info("Sweep re-granted missing rewards",
			"user_id", userID, "quest", quest.Title, "items", repaired)

		if isCorrupted(quest.Title) {
			if quest.RewardEntrobucks > 0 && s.crediter != nil {
				if _, err := s.crediter.CreditQuestReward(ctx, userID, quest.RewardEntrobucks,
					fmt.Sprintf("reward repair: %s", quest.Title)); err != nil {
					log.Error("Sweep failed to re-credit entrobucks", "user_id", userID, "error", err)
				}
			}
			if quest.RewardXP > 0 {
				s.awardXP(ctx, userID, quest.RewardXP, fmt.Sprintf("repair:%s", quest.Title))
			}
		}

		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewRewardRepairedEvent(userID, quest.ID, quest.Title, repaired))
		}
	}

	if repairedAny && s.reloader != nil {
		s.reloader.Reload(ctx, userID, "reward repair")
	}
	return nil
}
