package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entroverse/entroverse-api/internal/bootstrap"
	"github.com/entroverse/entroverse-api/internal/config"
	"github.com/entroverse/entroverse-api/internal/database"
	"github.com/entroverse/entroverse-api/internal/discord"
	"github.com/entroverse/entroverse-api/internal/economy"
	"github.com/entroverse/entroverse-api/internal/handler"
	"github.com/entroverse/entroverse-api/internal/modifier"
	"github.com/entroverse/entroverse-api/internal/profile"
	"github.com/entroverse/entroverse-api/internal/quest"
	"github.com/entroverse/entroverse-api/internal/server"
	"github.com/entroverse/entroverse-api/internal/sse"
	"github.com/entroverse/entroverse-api/internal/state"
)

const shutdownTimeout = 30 * time.Second

// reloaderFunc adapts a closure to the Reloader interfaces the services
// expect. The engine is constructed after the services that invalidate
// through it, so the binding is late.
type reloaderFunc func(ctx context.Context, userID, reason string)

func (f reloaderFunc) Reload(ctx context.Context, userID, reason string) {
	f(ctx, userID, reason)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(dbPool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventBus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()
	subscriber := sse.NewSubscriber(hub, eventBus)
	subscriber.Subscribe()

	// Services invalidate snapshots through the engine, and the engine
	// sweeps through the quest service. The closure breaks the cycle.
	var engine state.Engine
	reloader := reloaderFunc(func(ctx context.Context, userID, reason string) {
		engine.Reload(ctx, userID, reason)
	})

	economyService := economy.NewService(
		repos.Profile, repos.Item, repos.Inventory, repos.Procedures, repos.Ledger,
		publisher, subscriber, reloader)
	questService := quest.NewService(
		repos.Quest, repos.Item, repos.Inventory, repos.Profile, repos.Procedures,
		economyService, publisher, subscriber, reloader)
	modifierService := modifier.NewService(
		repos.Profile, repos.Item, repos.Inventory, repos.Procedures,
		publisher, subscriber, reloader)
	profileService := profile.NewService(
		repos.Profile, repos.Item, repos.Inventory, repos.Cosmetics, repos.Procedures,
		publisher, subscriber, reloader)

	engine = state.NewEngine(
		repos.Profile, repos.Quest, repos.Item, repos.Inventory, repos.Cosmetics,
		questService, publisher, subscriber, cfg.VerifyDebounce)

	quest.NewEventHandler(questService).Register(eventBus)

	if cfg.DiscordEnabled() {
		announcer, err := discord.NewAnnouncer(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
		if err != nil {
			slog.Error("Failed to initialize discord announcer", "error", err)
			os.Exit(1)
		}
		announcer.Subscribe(eventBus)
	} else {
		slog.Info("Discord announcements disabled, no webhook configured")
	}

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Engine:   engine,
		Quests:   questService,
		Economy:  economyService,
		Modifier: modifierService,
		Profile:  profileService,
		Ledger:   repos.Ledger,
		Sessions: repos.Session,
		Hub:      hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Engine:             engine,
		QuestService:       questService,
		Hub:                hub,
		ResilientPublisher: publisher,
	})
}
