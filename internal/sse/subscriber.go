package sse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.Type(domain.EventTypeQuestCompleted), s.handleQuestCompleted)
	s.bus.Subscribe(event.Type(domain.EventTypeItemDropped), s.handleItemDropped)
	s.bus.Subscribe(event.Type(domain.EventTypeModifierActivated), s.handleModifierActivated)
	s.bus.Subscribe(event.Type(domain.EventTypeLevelUp), s.handleLevelUp)
	s.bus.Subscribe(event.Type(domain.EventTypeRewardRepaired), s.handleRewardRepaired)
	s.bus.Subscribe(event.Type(domain.EventTypeSetClaimed), s.handleSetClaimed)
	s.bus.Subscribe(event.Type(domain.EventTypeSnapshotReloaded), s.handleSnapshotReloaded)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			domain.EventTypeQuestCompleted,
			domain.EventTypeItemDropped,
			domain.EventTypeModifierActivated,
			domain.EventTypeLevelUp,
			domain.EventTypeRewardRepaired,
			domain.EventTypeSetClaimed,
			domain.EventTypeSnapshotReloaded,
		})
}

// Notify pushes a user-facing notification to that user's connections
func (s *Subscriber) Notify(_ context.Context, userID string, notification domain.Notification) {
	s.hub.Broadcast(EventTypeNotification, userID, notification)
}

func (s *Subscriber) handleQuestCompleted(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.QuestCompletedPayload)
	if !ok {
		slog.Warn("Invalid quest completed event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeQuestCompleted, payload.UserID, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", domain.EventTypeQuestCompleted,
		"user_id", payload.UserID,
		"quest_title", payload.QuestTitle)
	return nil
}

func (s *Subscriber) handleItemDropped(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.ItemDroppedPayload)
	if !ok {
		slog.Warn("Invalid item dropped event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeItemDropped, payload.UserID, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", domain.EventTypeItemDropped,
		"user_id", payload.UserID,
		"item_name", payload.ItemName)
	return nil
}

func (s *Subscriber) handleModifierActivated(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.ModifierActivatedPayload)
	if !ok {
		slog.Warn("Invalid modifier activated event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeModifierActivated, payload.UserID, payload)
	return nil
}

// handleLevelUp broadcasts level-ups to everyone; the overlay shows them
// publicly.
func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.LevelUpPayload)
	if !ok {
		slog.Warn("Invalid level up event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeLevelUp, "", payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", domain.EventTypeLevelUp,
		"user_id", payload.UserID,
		"new_level", payload.NewLevel)
	return nil
}

func (s *Subscriber) handleRewardRepaired(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.RewardRepairedPayload)
	if !ok {
		slog.Warn("Invalid reward repaired event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeRewardRepaired, payload.UserID, payload)

	for _, item := range payload.Items {
		s.Notify(ctx, payload.UserID, domain.NewRewardNotification(
			fmt.Sprintf("Recovered a missing reward from %s", payload.QuestTitle),
			0, 0, item))
	}
	return nil
}

func (s *Subscriber) handleSetClaimed(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.SetClaimedPayload)
	if !ok {
		slog.Warn("Invalid set claimed event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeSetClaimed, payload.UserID, payload)
	return nil
}

// handleSnapshotReloaded tells the user's client that its cached view is
// stale and a fresh snapshot is available.
func (s *Subscriber) handleSnapshotReloaded(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.SnapshotReloadedPayload)
	if !ok {
		slog.Warn("Invalid snapshot reloaded event payload type")
		return nil
	}

	s.hub.Broadcast(domain.EventTypeSnapshotReloaded, payload.UserID, payload)
	return nil
}
