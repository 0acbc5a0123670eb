package quest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/entroverse/entroverse-api/internal/concurrency"
	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/notify"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// Service defines the interface for the quest lifecycle
type Service interface {
	GetQuests(ctx context.Context) ([]domain.Quest, error)
	GetUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error)

	// StartQuest inserts a progress row at zero. Starting a quest that is
	// already in progress or completed is a no-op.
	StartQuest(ctx context.Context, userID, questID string) error

	// IncrementQuest advances an active quest found by ID or title (first
	// match wins). Reaching the target completes the quest.
	IncrementQuest(ctx context.Context, userID, titleOrID string, amount int) error

	// CompleteQuest completes the quest and pays out its rewards, at most
	// once per (user, quest). Concurrent attempts for the same quest are
	// dropped, not queued.
	CompleteQuest(ctx context.Context, userID, questID string) error

	// EvaluateTriggers completes quests whose condition is already met:
	// the welcome quest on first evaluation, level-gated quests once the
	// profile level reaches their threshold.
	EvaluateTriggers(ctx context.Context, userID string) error

	// VerifyRewards re-grants reward items that a completed quest should
	// have produced but the inventory is missing.
	VerifyRewards(ctx context.Context, userID string) error

	Shutdown(ctx context.Context) error
}

// Crediter credits entrobucks for quest payouts
type Crediter interface {
	CreditQuestReward(ctx context.Context, userID string, amount int, description string) (int, error)
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
	quests     repository.Quest
	items      repository.Item
	inventory  repository.Inventory
	profiles   repository.Profile
	procedures repository.Procedures
	crediter   Crediter
	publisher  Publisher
	notifier   notify.Notifier
	reloader   Reloader
	inflight   *concurrency.InFlight
	wg         sync.WaitGroup // completions and sweeps drained by Shutdown
}

// NewService creates a new quest service
func NewService(
	quests repository.Quest,
	items repository.Item,
	inventory repository.Inventory,
	profiles repository.Profile,
	procedures repository.Procedures,
	crediter Crediter,
	publisher Publisher,
	notifier notify.Notifier,
	reloader Reloader,
) Service {
	return &service{
		quests:     quests,
		items:      items,
		inventory:  inventory,
		profiles:   profiles,
		procedures: procedures,
		crediter:   crediter,
		publisher:  publisher,
		notifier:   notifier,
		reloader:   reloader,
		inflight:   concurrency.NewInFlight(),
	}
}

func (s *service) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	return s.quests.GetQuests(ctx)
}

func (s *service) GetUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error) {
	return s.quests.GetUserQuests(ctx, userID)
}

func (s *service) StartQuest(ctx context.Context, userID, questID string) error {
	log := logger.FromContext(ctx)

	quest, err := s.quests.GetQuestByID(ctx, questID)
	if err != nil {
		return err
	}

	userQuests, err := s.quests.GetUserQuests(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user quests: %w", err)
	}
	for _, uq := range userQuests {
		if uq.QuestID == questID {
			log.Info("Quest already started, skipping", "user_id", userID, "quest", quest.Title, "status", uq.Status)
			return nil
		}
	}

	if err := s.quests.InsertUserQuest(ctx, domain.UserQuest{
		UserID:  userID,
		QuestID: questID,
		Status:  domain.QuestStatusInProgress,
	}); err != nil {
		return fmt.Errorf("failed to start quest: %w", err)
	}

	log.Info("Quest started", "user_id", userID, "quest", quest.Title)
	return nil
}

func (s *service) IncrementQuest(ctx context.Context, userID, titleOrID string, amount int) error {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	userQuests, err := s.quests.GetUserQuests(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user quests: %w", err)
	}

	// First match wins; completed quests never advance
	var target *domain.UserQuest
	for i := range userQuests {
		uq := &userQuests[i]
		if uq.Completed() {
			continue
		}
		if uq.QuestID == titleOrID || strings.EqualFold(uq.Title, titleOrID) {
			target = uq
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: no active quest matches %q", domain.ErrQuestNotFound, titleOrID)
	}

	newProgress := target.Progress + amount
	if err := s.quests.UpdateQuestProgress(ctx, userID, target.QuestID, newProgress); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	log.Info("Quest progress advanced",
		"user_id", userID, "quest", target.Title, "progress", newProgress, "target", target.Target)

	if target.Target != nil && newProgress >= *target.Target {
		if err := s.CompleteQuest(ctx, userID, target.QuestID); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown waits for in-flight completions and verification sweeps, which
// can still arrive from the sweep timer after the request drain.
func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
