package quest

import (
	"context"
	"errors"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
)

// Tracked side quests advanced from bus events
const (
	titleWindowShopper = "Window Shopper"
	titleHighRoller    = "High Roller"
)

// EventHandler advances quest progress from bus events
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new quest event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeItemBought), h.HandleItemBought)
	bus.Subscribe(event.Type(domain.EventTypePongWin), h.HandlePongWin)
}

// HandleItemBought advances the shop quest when the user buys anything
func (h *EventHandler) HandleItemBought(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.ItemBoughtPayload)
	if !ok {
		logger.FromContext(ctx).Warn("Invalid item bought payload type")
		return nil
	}
	h.increment(ctx, payload.UserID, titleWindowShopper)
	return nil
}

// HandlePongWin advances the pong win streak quest
func (h *EventHandler) HandlePongWin(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.PongWinPayload)
	if !ok {
		logger.FromContext(ctx).Warn("Invalid pong win payload type")
		return nil
	}
	h.increment(ctx, payload.UserID, titleHighRoller)
	return nil
}

// increment advances the named quest by one if the user is running it. Not
// having the quest active is the normal case, not a fault.
func (h *EventHandler) increment(ctx context.Context, userID, title string) {
	err := h.service.IncrementQuest(ctx, userID, title, 1)
	if err != nil && !errors.Is(err, domain.ErrQuestNotFound) {
		logger.FromContext(ctx).Warn("Failed to advance quest from event",
			"user_id", userID, "quest", title, "error", err)
	}
}
