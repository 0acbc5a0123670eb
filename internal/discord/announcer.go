package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
)

// webhookExecutor is the slice of the discordgo session the announcer uses
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts noteworthy game moments to a Discord channel through a
// webhook. It listens on the event bus; a failed post is logged and dropped,
// never surfaced to the player flow that produced the event.
type Announcer struct {
	session   webhookExecutor
	webhookID string
	token     string
}

// NewAnnouncer creates an announcer backed by a webhook-only discordgo
// session. Webhook execution needs no bot token.
func NewAnnouncer(webhookID, token string) (*Announcer, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &Announcer{
		session:   session,
		webhookID: webhookID,
		token:     token,
	}, nil
}

// Subscribe registers the announcer on the event bus
func (a *Announcer) Subscribe(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeItemDropped), a.handleItemDropped)
	bus.Subscribe(event.Type(domain.EventTypeLevelUp), a.handleLevelUp)
	bus.Subscribe(event.Type(domain.EventTypeSetClaimed), a.handleSetClaimed)

	slog.Info("Discord announcer registered", "webhook_id", a.webhookID)
}

// handleItemDropped announces epic and legendary drops. Common trophies
// would flood the channel.
func (a *Announcer) handleItemDropped(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.ItemDroppedPayload)
	if !ok {
		slog.Warn("Invalid item dropped event payload type")
		return nil
	}

	switch domain.Rarity(payload.Rarity) {
	case domain.RarityEpic, domain.RarityLegendary:
	default:
		return nil
	}

	content := fmt.Sprintf("A %s **%s** just dropped on a %s pong win!",
		payload.Rarity, payload.ItemName, payload.Difficulty)
	if payload.Boosted {
		content += " (drop rates were doubled)"
	}
	a.post(ctx, content)
	return nil
}

func (a *Announcer) handleLevelUp(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.LevelUpPayload)
	if !ok {
		slog.Warn("Invalid level up event payload type")
		return nil
	}

	a.post(ctx, fmt.Sprintf("Someone just reached level %d!", payload.NewLevel))
	return nil
}

func (a *Announcer) handleSetClaimed(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.SetClaimedPayload)
	if !ok {
		slog.Warn("Invalid set claimed event payload type")
		return nil
	}

	a.post(ctx, fmt.Sprintf("The **%s** set was just completed!", payload.SetName))
	return nil
}

func (a *Announcer) post(ctx context.Context, content string) {
	_, err := a.session.WebhookExecute(a.webhookID, a.token, false, &discordgo.WebhookParams{
		Content: content,
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("Failed to execute discord webhook", "error", err)
	}
}
