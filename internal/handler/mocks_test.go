package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/state"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockQuestService mocks quest.Service
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestService) GetUserQuests(ctx context.Context, userID string) ([]domain.UserQuest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserQuest), args.Error(1)
}

func (m *MockQuestService) StartQuest(ctx context.Context, userID, questID string) error {
	args := m.Called(ctx, userID, questID)
	return args.Error(0)
}

func (m *MockQuestService) IncrementQuest(ctx context.Context, userID, titleOrID string, amount int) error {
	args := m.Called(ctx, userID, titleOrID, amount)
	return args.Error(0)
}

func (m *MockQuestService) CompleteQuest(ctx context.Context, userID, questID string) error {
	args := m.Called(ctx, userID, questID)
	return args.Error(0)
}

func (m *MockQuestService) EvaluateTriggers(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockQuestService) VerifyRewards(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockQuestService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEconomyService mocks economy.Service
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) GetShopItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockEconomyService) AddEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error) {
	args := m.Called(ctx, userID, amount, reason)
	return args.Int(0), args.Error(1)
}

func (m *MockEconomyService) SpendEntrobucks(ctx context.Context, userID string, amount int, reason string) (int, error) {
	args := m.Called(ctx, userID, amount, reason)
	return args.Int(0), args.Error(1)
}

func (m *MockEconomyService) CreditQuestReward(ctx context.Context, userID string, amount int, description string) (int, error) {
	args := m.Called(ctx, userID, amount, description)
	return args.Int(0), args.Error(1)
}

func (m *MockEconomyService) BuyItem(ctx context.Context, userID, itemName string) (*domain.Item, error) {
	args := m.Called(ctx, userID, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockModifierService mocks modifier.Service
type MockModifierService struct {
	mock.Mock
}

func (m *MockModifierService) UseModifier(ctx context.Context, userID, itemName string) (time.Time, error) {
	args := m.Called(ctx, userID, itemName)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockModifierService) HandlePongWin(ctx context.Context, userID, difficulty string) (*domain.Item, error) {
	args := m.Called(ctx, userID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockProfileService mocks profile.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) Equip(ctx context.Context, userID, itemName string) (domain.EquipSlot, error) {
	args := m.Called(ctx, userID, itemName)
	return args.Get(0).(domain.EquipSlot), args.Error(1)
}

func (m *MockProfileService) Unequip(ctx context.Context, userID string, slot domain.EquipSlot) error {
	args := m.Called(ctx, userID, slot)
	return args.Error(0)
}

func (m *MockProfileService) ClaimSet(ctx context.Context, userID, setID string) (int, error) {
	args := m.Called(ctx, userID, setID)
	return args.Int(0), args.Error(1)
}

// MockEngine mocks state.Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) LoadSnapshot(ctx context.Context, session *domain.Session) (*state.Snapshot, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*state.Snapshot), args.Error(1)
}

func (m *MockEngine) Reload(ctx context.Context, userID, reason string) {
	m.Called(ctx, userID, reason)
}

func (m *MockEngine) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLedger mocks repository.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Append(ctx context.Context, entry domain.Transaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedger) ListRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
