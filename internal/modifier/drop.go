package modifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
)

const (
	rollDropped = "dropped"
	rollMissed  = "missed"
	rollOwned   = "owned"
)

// trophyForDifficulty maps a round difficulty to its trophy item name.
func trophyForDifficulty(difficulty string) (string, error) {
	switch strings.ToLower(difficulty) {
	case "hard":
		return TrophyGolden, nil
	case "medium", "easy":
		return TrophyPixel, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, difficulty)
	}
}

// HandlePongWin records a won round and rolls for the difficulty's trophy.
// Users who already own the trophy skip the roll entirely so the drop odds
// only apply to rounds that could still produce something.
func (s *service) HandlePongWin(ctx context.Context, userID, difficulty string) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	trophyName, err := trophyForDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	trophy, err := s.items.GetItemByName(ctx, trophyName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trophy item: %w", err)
	}

	owned, err := s.ownsItem(ctx, userID, trophy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check trophy ownership: %w", err)
	}
	if owned {
		metrics.DropRolls.WithLabelValues(difficulty, rollOwned).Inc()
		s.publishWin(ctx, userID, difficulty, false)
		return nil, nil
	}

	chance := BaseDropChance
	boosted := false
	if profile, err := s.profiles.GetProfile(ctx, userID); err != nil {
		log.Warn("Failed to get profile for drop roll, using base chance",
			"user_id", userID, "error", err)
	} else if profile.ModifierActive(time.Now()) {
		chance = BoostedDropChance
		boosted = true
	}

	if s.rnd() >= chance {
		metrics.DropRolls.WithLabelValues(difficulty, rollMissed).Inc()
		s.publishWin(ctx, userID, difficulty, false)
		return nil, nil
	}

	if err := s.procedures.AddItem(ctx, userID, trophy.ID); err != nil {
		return nil, fmt.Errorf("failed to grant trophy: %w", err)
	}
	metrics.DropRolls.WithLabelValues(difficulty, rollDropped).Inc()
	log.Info("Minigame drop landed",
		"user_id", userID, "item", trophy.Name, "difficulty", difficulty, "boosted", boosted)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewItemDroppedEvent(userID, *trophy, difficulty, boosted))
	}
	s.publishWin(ctx, userID, difficulty, true)
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.NewRewardNotification(
			fmt.Sprintf("Rare drop: %s!", trophy.Name), 0, 0, trophy.Name))
	}
	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "minigame drop")
	}
	return trophy, nil
}

// publishWin announces the round itself so quest progress can follow wins
// whether or not the roll landed.
func (s *service) publishWin(ctx context.Context, userID, difficulty string, dropped bool) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewPongWinEvent(userID, difficulty, dropped))
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
