package quest

import (
	"context"
	"errors"
	"strings"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/logger"
)

// levelGates maps level-gated quest titles (matched case-insensitively) to
// the profile level that completes them.
var levelGates = map[string]int{
	"entropic novice":   5,
	"entropic adept":    10,
	"entropic master":   15,
	"entropic overlord": 20,
}

// EvaluateTriggers completes quests whose condition already holds. Called
// after snapshot loads and level changes. Individual completions are
// best-effort; a failure on one quest never blocks the rest.
func (s *service) EvaluateTriggers(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	catalog, err := s.quests.GetQuests(ctx)
	if err != nil {
		return err
	}

	userQuests, err := s.quests.GetUserQuests(ctx, userID)
	if err != nil {
		return err
	}
	completed := make(map[string]bool, len(userQuests))
	for _, uq := range userQuests {
		if uq.Completed() {
			completed[uq.QuestID] = true
		}
	}

	for _, quest := range catalog {
		if completed[quest.ID] || !s.triggerMet(quest.Title, profile.Level) {
			continue
		}

		err := s.CompleteQuest(ctx, userID, quest.ID)
		switch {
		case err == nil:
			log.Info("Trigger quest completed", "user_id", userID, "quest", quest.Title)
		case errors.Is(err, domain.ErrQuestCompleted), errors.Is(err, domain.ErrCompletionInFlight):
			// Lost the race to another completion path
		default:
			log.Error("Trigger completion failed", "user_id", userID, "quest", quest.Title, "error", err)
		}
	}
	return nil
}

// triggerMet reports whether the quest's automatic completion condition holds
func (s *service) triggerMet(title string, level int) bool {
	if strings.EqualFold(title, TitleWelcome) {
		return true
	}
	if gate, ok := levelGates[strings.ToLower(title)]; ok {
		return level >= gate
	}
	return false
}
