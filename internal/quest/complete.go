package quest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
	"github.com/entroverse/entroverse-api/internal/progression"
)

// CompleteQuest marks the quest completed and pays out its rewards. The
// completion upsert is the at-most-once gate; everything after it is
// best-effort and logged rather than rolled back, with the verification
// sweep re-granting anything that was missed.
func (s *service) CompleteQuest(ctx context.Context, userID, questID string) error {
	log := logger.FromContext(ctx)

	s.wg.Add(1)
	defer s.wg.Done()

	key := userID + ":" + questID
	if !s.inflight.TryAcquire(key) {
		metrics.QuestCompletionsDropped.Inc()
		log.Warn("Completion already in flight, dropping", "user_id", userID, "quest_id", questID)
		return fmt.Errorf("%w: quest %s", domain.ErrCompletionInFlight, questID)
	}
	defer s.inflight.Release(key)

	quest, err := s.quests.GetQuestByID(ctx, questID)
	if err != nil {
		return err
	}

	userQuests, err := s.quests.GetUserQuests(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user quests: %w", err)
	}
	for _, uq := range userQuests {
		if uq.QuestID == questID && uq.Completed() {
			return fmt.Errorf("%w: %s", domain.ErrQuestCompleted, quest.Title)
		}
	}

	if err := s.quests.UpsertCompleted(ctx, userID, questID, domain.CompletedProgress); err != nil {
		return fmt.Errorf("failed to mark quest completed: %w", err)
	}
	metrics.QuestsCompleted.Inc()
	log.Info("Quest completed", "user_id", userID, "quest", quest.Title)

	rewardLabel := s.grantRewardItems(ctx, userID, quest)

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.NewRewardNotification(
			fmt.Sprintf("Quest complete: %s", quest.Title),
			quest.RewardXP, quest.RewardEntrobucks, rewardLabel))
	}

	if quest.RewardEntrobucks > 0 && s.crediter != nil {
		if _, err := s.crediter.CreditQuestReward(ctx, userID, quest.RewardEntrobucks,
			fmt.Sprintf("quest completed: %s", quest.Title)); err != nil {
			log.Error("Failed to credit quest entrobucks", "user_id", userID, "quest", quest.Title, "error", err)
		}
	}

	if quest.RewardXP > 0 {
		s.awardXP(ctx, userID, quest.RewardXP, quest.Title)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewQuestCompletedEvent(userID, *quest, rewardLabel))
	}
	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "quest completed")
	}
	return nil
}

// grantRewardItems puts the quest's item payout into the inventory and
// returns the label for the reward notification. Grant failures are logged
// and left for the verification sweep.
func (s *service) grantRewardItems(ctx context.Context, userID string, quest *domain.Quest) string {
	log := logger.FromContext(ctx)

	names, label := rewardItemNames(quest)
	granted := make(map[string]bool, len(names))
	for _, name := range names {
		item, err := s.resolveItemRef(ctx, name)
		if err != nil {
			log.Error("Failed to resolve reward item", "quest", quest.Title, "item", name, "error", err)
			continue
		}
		// The catalog reference and a bonus grant can name the same item
		if granted[item.ID] {
			continue
		}
		granted[item.ID] = true
		if err := s.procedures.AddItem(ctx, userID, item.ID); err != nil {
			log.Error("Failed to grant reward item", "user_id", userID, "item", item.Name, "error", err)
		}
	}

	// Refetch so later steps observe the grants; purely best effort
	if _, err := s.inventory.GetInventory(ctx, userID); err != nil {
		log.Warn("Failed to refetch inventory after grants", "user_id", userID, "error", err)
	}
	return label
}

// rewardItemNames collects the quest's item payout: the catalog reward_item
// reference plus any title-matched bonus grants. The bonus label, when set,
// overrides the displayed reward name.
func rewardItemNames(quest *domain.Quest) ([]string, string) {
	var names []string
	label := ""
	if quest.RewardItem != nil && *quest.RewardItem != "" {
		names = append(names, *quest.RewardItem)
		label = *quest.RewardItem
	}
	if spec, ok := grantsForTitle(quest.Title); ok {
		names = append(names, spec.Items...)
		if spec.Label != "" {
			label = spec.Label
		} else if label == "" && len(spec.Items) > 0 {
			label = spec.Items[0]
		}
	}
	return names, label
}

// resolveItemRef looks up an item by UUID first, exact name otherwise
func (s *service) resolveItemRef(ctx context.Context, ref string) (*domain.Item, error) {
	if uuid.Validate(ref) == nil {
		return s.items.GetItemByID(ctx, ref)
	}
	return s.items.GetItemByName(ctx, ref)
}

// awardXP adds XP through the database procedure, falling back to the shared
// formula applied locally when the procedure call fails.
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

	if newLevel > oldLevel {
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, oldLevel, newLevel, source))
		}
		// A level-up can satisfy level-gated quests immediately
		if err := s.EvaluateTriggers(ctx, userID); err != nil {
			log.Warn("Trigger evaluation after level-up failed", "user_id", userID, "error", err)
		}
	}
}
