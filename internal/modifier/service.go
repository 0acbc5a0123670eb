package modifier

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
	"github.com/entroverse/entroverse-api/internal/notify"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// ModifierDuration is how long an activated drop modifier stays live.
const ModifierDuration = 15 * time.Minute

// Drop chances for a won pong round.
const (
	BaseDropChance    = 0.2
	BoostedDropChance = 0.4
)

// Paddle trophies by round difficulty. The hard tier has its own trophy,
// the lower tiers share one.
const (
	TrophyGolden = "Golden Paddle"
	TrophyPixel  = "Pixel Paddle"
)

// Service defines the interface for drop modifiers and minigame drops
type Service interface {
	// UseModifier consumes one unit of the named modifier item and stamps
	// the profile's modifier expiry. Non-modifier items are rejected.
	UseModifier(ctx context.Context, userID, itemName string) (time.Time, error)

	// HandlePongWin rolls a trophy drop for a won pong round. Returns the
	// dropped item, or nil when the roll missed or the trophy is already
	// owned.
	HandlePongWin(ctx context.Context, userID, difficulty string) (*domain.Item, error)
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
	publisher  Publisher
	notifier   notify.Notifier
	reloader   Reloader
	rnd        func() float64
}

// NewService creates a new modifier service
func NewService(
	profiles repository.Profile,
	items repository.Item,
	inventory repository.Inventory,
	procedures repository.Procedures,
	publisher Publisher,
	notifier notify.Notifier,
	reloader Reloader,
) Service {
	return &service{
		profiles:   profiles,
		items:      items,
		inventory:  inventory,
		procedures: procedures,
		publisher:  publisher,
		notifier:   notifier,
		reloader:   reloader,
		rnd:        rand.Float64,
	}
}

// UseModifier activates a drop modifier. The stored procedure consumes the
// inventory unit and stamps the expiry in one transaction, so a failure
// leaves nothing to roll back locally.
func (s *service) UseModifier(ctx context.Context, userID, itemName string) (time.Time, error) {
	log := logger.FromContext(ctx)

	item, err := s.items.GetItemByName(ctx, itemName)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve modifier item: %w", err)
	}
	if item.Category != domain.CategoryModifier {
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrNotAModifier, item.Name)
	}

	expiresAt, err := s.procedures.UseDuplicationGlitch(ctx, userID, item.ID, ModifierDuration)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to activate modifier: %w", err)
	}

	metrics.ModifiersActivated.Inc()
	log.Info("Modifier activated", "user_id", userID, "item", item.Name, "expires_at", expiresAt)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewModifierActivatedEvent(userID, item.Name, expiresAt))
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.Notification{
			Type:    domain.NotificationInfo,
			Message: fmt.Sprintf("%s active! Drop rates doubled for 15 minutes.", item.Name),
		})
	}
	if s.reloader != nil {
		s.reloader.Reload(ctx, userID, "modifier activated")
	}
	return expiresAt, nil
}
