package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/metrics"
	"github.com/entroverse/entroverse-api/internal/notify"
	"github.com/entroverse/entroverse-api/internal/repository"
)

const (
	// DefaultCacheSize bounds how many user snapshots stay resident.
	DefaultCacheSize = 1024
	// DefaultCacheTTL expires snapshots for users who went idle.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultVerifyDebounce is the trailing-edge delay before the reward
	// verification sweep runs after a burst of mutations.
	DefaultVerifyDebounce = 2 * time.Second
)

const loadFailedMessage = "state load failed"

// Load results for the snapshot metric
const (
	loadResultCached = "cached"
	loadResultLoaded = "loaded"
	loadResultError  = "error"
)

// Engine assembles, caches and refreshes per-user state snapshots
type Engine interface {
	// LoadSnapshot returns the user's current snapshot, building it on a
	// cache miss. A nil session yields the empty anonymous snapshot and
	// ErrNotAuthenticated, which callers surface as a state, not a fault.
	LoadSnapshot(ctx context.Context, session *domain.Session) (*Snapshot, error)

	// Reload rebuilds the snapshot after a mutation. On a rebuild failure
	// the previous snapshot stays live and the user is told the state is
	// stale.
	Reload(ctx context.Context, userID, reason string)

	Shutdown(ctx context.Context) error
}

// Sweeper is the quest-side maintenance the engine drives around loads
type Sweeper interface {
	EvaluateTriggers(ctx context.Context, userID string) error
	VerifyRewards(ctx context.Context, userID string) error
}

// Publisher is the subset of the event publisher the engine uses
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

type engine struct {
	profiles  repository.Profile
	quests    repository.Quest
	items     repository.Item
	inventory repository.Inventory
	cosmetics repository.Cosmetics
	sweeper   Sweeper
	publisher Publisher
	notifier  notify.Notifier
	cache     *snapshotCache
	verifier  *Verifier
}

// NewEngine creates a new state engine
func NewEngine(
	profiles repository.Profile,
	quests repository.Quest,
	items repository.Item,
	inventory repository.Inventory,
	cosmetics repository.Cosmetics,
	sweeper Sweeper,
	publisher Publisher,
	notifier notify.Notifier,
	verifyDebounce time.Duration,
) Engine {
	if verifyDebounce <= 0 {
		verifyDebounce = DefaultVerifyDebounce
	}
	e := &engine{
		profiles:  profiles,
		quests:    quests,
		items:     items,
		inventory: inventory,
		cosmetics: cosmetics,
		sweeper:   sweeper,
		publisher: publisher,
		notifier:  notifier,
		cache:     newSnapshotCache(DefaultCacheSize, DefaultCacheTTL),
	}
	e.verifier = NewVerifier(verifyDebounce, func(ctx context.Context, userID string) {
		if err := sweeper.VerifyRewards(ctx, userID); err != nil {
			logger.FromContext(ctx).Error("Reward verification sweep failed",
				"user_id", userID, "error", err)
		}
	})
	return e
}

func (e *engine) LoadSnapshot(ctx context.Context, session *domain.Session) (*Snapshot, error) {
	if session == nil || session.UserID == "" {
		return emptySnapshot(), domain.ErrNotAuthenticated
	}
	userID := session.UserID
	log := logger.FromContext(ctx)

	if snapshot, ok := e.cache.Get(userID); ok {
		metrics.SnapshotLoads.WithLabelValues(loadResultCached).Inc()
		return snapshot, nil
	}

	snapshot, err := e.build(ctx, userID)
	if err != nil {
		metrics.SnapshotLoads.WithLabelValues(loadResultError).Inc()
		if e.notifier != nil {
			e.notifier.Notify(ctx, userID, domain.Notification{
				Type:    domain.NotificationError,
				Message: loadFailedMessage,
			})
		}
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	e.cache.Set(userID, snapshot)
	metrics.SnapshotLoads.WithLabelValues(loadResultLoaded).Inc()

	// First sight of the user this session: complete anything that is
	// already earned. Completions reload the cache through Reload.
	if err := e.sweeper.EvaluateTriggers(ctx, userID); err != nil {
		log.Warn("Trigger evaluation failed on load", "user_id", userID, "error", err)
	}
	if refreshed, ok := e.cache.Get(userID); ok {
		snapshot = refreshed
	}

	e.verifier.Schedule(userID)
	return snapshot, nil
}

func (e *engine) Reload(ctx context.Context, userID, reason string) {
	log := logger.FromContext(ctx)

	snapshot, err := e.build(ctx, userID)
	if err != nil {
		// Keep serving the previous snapshot. The next mutating call
		// retries the rebuild.
		metrics.SnapshotLoads.WithLabelValues(loadResultError).Inc()
		log.Error("Snapshot rebuild failed, keeping previous", "user_id", userID, "reason", reason, "error", err)
		if e.notifier != nil {
			e.notifier.Notify(ctx, userID, domain.Notification{
				Type:    domain.NotificationError,
				Message: loadFailedMessage,
			})
		}
		return
	}
	e.cache.Set(userID, snapshot)
	metrics.SnapshotLoads.WithLabelValues(loadResultLoaded).Inc()
	log.Debug("Snapshot reloaded", "user_id", userID, "reason", reason)

	if e.publisher != nil {
		e.publisher.PublishWithRetry(ctx, event.NewSnapshotReloadedEvent(userID, reason))
	}
	e.verifier.Schedule(userID)
}

func (e *engine) Shutdown(ctx context.Context) error {
	return e.verifier.Shutdown(ctx)
}

// build reads the catalog and user-scoped rows in parallel and assembles
// the snapshot. Any single read failing fails the whole build.
func (e *engine) build(ctx context.Context, userID string) (*Snapshot, error) {
	var (
		wg         sync.WaitGroup
		profile    *domain.Profile
		quests     []domain.Quest
		userQuests []domain.UserQuest
		entries    []domain.InventoryEntry
		items      []domain.Item
		shopItems  []domain.Item
		sets       []domain.CosmeticSet
		claims     []domain.SetClaim
	)
	errs := make([]error, 8)

	reads := []func(){
		func() { profile, errs[0] = e.profiles.GetProfile(ctx, userID) },
		func() { quests, errs[1] = e.quests.GetQuests(ctx) },
		func() { userQuests, errs[2] = e.quests.GetUserQuests(ctx, userID) },
		func() { entries, errs[3] = e.inventory.GetInventory(ctx, userID) },
		func() { items, errs[4] = e.items.GetItems(ctx) },
		func() { shopItems, errs[5] = e.items.GetShopItems(ctx) },
		func() { sets, errs[6] = e.cosmetics.GetSets(ctx) },
		func() { claims, errs[7] = e.cosmetics.GetClaims(ctx, userID) },
	}
	wg.Add(len(reads))
	for _, read := range reads {
		go func() {
			defer wg.Done()
			read()
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	catalog := make(map[string]domain.Item, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}
	// Join inventory refs against the catalog. Entries pointing at items
	// the catalog no longer carries are dropped, not surfaced.
	joined := make([]domain.InventoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Item == nil {
			item, ok := catalog[entry.ItemID]
			if !ok {
				continue
			}
			entry.Item = &item
		}
		joined = append(joined, entry)
	}

	visible := make([]domain.Quest, 0, len(quests))
	started := make(map[string]bool, len(userQuests))
	for _, uq := range userQuests {
		started[uq.QuestID] = true
	}
	for _, quest := range quests {
		if quest.Hidden && !started[quest.ID] {
			continue
		}
		visible = append(visible, quest)
	}

	return &Snapshot{
		Version:       SnapshotSchemaVersion,
		Authenticated: true,
		Profile:       profile,
		Quests:        visible,
		UserQuests:    userQuests,
		Inventory:     joined,
		ShopItems:     shopItems,
		Sets:          sets,
		Claims:        claims,
		LoadedAt:      time.Now(),
	}, nil
}
