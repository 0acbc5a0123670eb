package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/metrics"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Type-safe event constructors

// NewQuestCompletedEvent creates a quest completion event
func NewQuestCompletedEvent(userID string, quest domain.Quest, rewardItem string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeQuestCompleted),
		Payload: domain.QuestCompletedPayload{
			UserID:           userID,
			QuestID:          quest.ID,
			QuestTitle:       quest.Title,
			RewardXP:         quest.RewardXP,
			RewardEntrobucks: quest.RewardEntrobucks,
			RewardItem:       rewardItem,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewItemBoughtEvent creates a shop purchase event
func NewItemBoughtEvent(userID string, item domain.Item) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeItemBought),
		Payload: domain.ItemBoughtPayload{
			UserID:    userID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Cost:      item.Cost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemDroppedEvent creates a minigame drop event
func NewItemDroppedEvent(userID string, item domain.Item, difficulty string, boosted bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeItemDropped),
		Payload: domain.ItemDroppedPayload{
			UserID:     userID,
			ItemID:     item.ID,
			ItemName:   item.Name,
			Rarity:     string(item.Rarity),
			Difficulty: difficulty,
			Boosted:    boosted,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewPongWinEvent creates a pong round win event
func NewPongWinEvent(userID, difficulty string, dropped bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypePongWin),
		Payload: domain.PongWinPayload{
			UserID:     userID,
			Difficulty: difficulty,
			Dropped:    dropped,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewModifierActivatedEvent creates a modifier activation event
func NewModifierActivatedEvent(userID, itemName string, expiresAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeModifierActivated),
		Payload: domain.ModifierActivatedPayload{
			UserID:    userID,
			ItemName:  itemName,
			ExpiresAt: expiresAt.Unix(),
		},
	}
}

// NewLevelUpEvent creates a profile level change event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: domain.LevelUpPayload{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			Source:   source,
		},
	}
}

// NewRewardRepairedEvent creates a verification-sweep repair event
func NewRewardRepairedEvent(userID, questID, questTitle string, items []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeRewardRepaired),
		Payload: domain.RewardRepairedPayload{
			UserID:     userID,
			QuestID:    questID,
			QuestTitle: questTitle,
			Items:      items,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewSnapshotReloadedEvent creates a snapshot invalidation event
func NewSnapshotReloadedEvent(userID, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeSnapshotReloaded),
		Payload: domain.SnapshotReloadedPayload{
			UserID:    userID,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSetClaimedEvent creates a cosmetic set bonus claim event
func NewSetClaimedEvent(userID string, set domain.CosmeticSet) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeSetClaimed),
		Payload: domain.SetClaimedPayload{
			UserID:   userID,
			SetID:    set.ID,
			SetName:  set.Name,
			RewardXP: set.RewardXP,
		},
	}
}
