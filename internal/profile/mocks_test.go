package profile

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/event"
)

// MockProfileRepo implements repository.Profile for testing
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepo) UpdateEntrobucks(ctx context.Context, userID string, amount int) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockProfileRepo) UpdateLeveling(ctx context.Context, userID string, level, xp int) error {
	args := m.Called(ctx, userID, level, xp)
	return args.Error(0)
}

func (m *MockProfileRepo) UpdateEquippedSlot(ctx context.Context, userID string, slot domain.EquipSlot, itemName *string) error {
	args := m.Called(ctx, userID, slot, itemName)
	return args.Error(0)
}

func (m *MockProfileRepo) UpdateModifierExpiry(ctx context.Context, userID string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, expiresAt)
	return args.Error(0)
}

// MockItemRepo implements repository.Item for testing
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) GetItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetShopItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepo) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockInventoryRepo implements repository.Inventory for testing
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepo) InsertEntry(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockInventoryRepo) DeleteEntry(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

// MockProceduresRepo implements repository.Procedures for testing
type MockProceduresRepo struct {
	mock.Mock
}

func (m *MockProceduresRepo) AddXP(ctx context.Context, userID string, amount int) (int, int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProceduresRepo) AddItem(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockProceduresRepo) UseDuplicationGlitch(ctx context.Context, userID, itemID string, duration time.Duration) (time.Time, error) {
	args := m.Called(ctx, userID, itemID, duration)
	return args.Get(0).(time.Time), args.Error(1)
}

// MockPublisher implements Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// MockNotifier implements notify.Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID string, notification domain.Notification) {
	m.Called(ctx, userID, notification)
}

// MockReloader implements Reloader for testing
type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context, userID, reason string) {
	m.Called(ctx, userID, reason)
}

// MockCosmeticsRepo implements repository.Cosmetics for testing
type MockCosmeticsRepo struct {
	mock.Mock
}

func (m *MockCosmeticsRepo) GetSets(ctx context.Context) ([]domain.CosmeticSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CosmeticSet), args.Error(1)
}

func (m *MockCosmeticsRepo) GetClaims(ctx context.Context, userID string) ([]domain.SetClaim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SetClaim), args.Error(1)
}

func (m *MockCosmeticsRepo) InsertClaim(ctx context.Context, claim domain.SetClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}
