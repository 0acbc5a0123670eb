package quest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/entroverse/entroverse-api/internal/domain"
)

func TestVerifyRewards(t *testing.T) {
	ctx := context.Background()

	welcome := domain.Quest{ID: welcomeID, Title: TitleWelcome, RewardEntrobucks: 100, RewardXP: 50}
	corrupted := *corruptedQuest()

	completedRow := func(questID string) domain.UserQuest {
		return domain.UserQuest{UserID: testUserID, QuestID: questID, Status: domain.QuestStatusCompleted}
	}

	t.Run("nothing missing means no writes", func(t *testing.T) {
		f := newFixture()
		cap := &domain.Item{ID: entroCapItemID, Name: "Entro Cap"}

		f.quests.On("GetUserQuests", ctx, testUserID).Return([]domain.UserQuest{completedRow(welcomeID)}, nil)
		f.quests.On("GetQuests", ctx).Return([]domain.Quest{welcome}, nil)
		f.inventory.On("GetInventory", ctx, testUserID).Return([]domain.InventoryEntry{
			{UserID: testUserID, ItemID: entroCapItemID, Count: 1},
		}, nil)
		f.items.On("GetItemByName", ctx, "Entro Cap").Return(cap, nil)

		require.NoError(t, f.svc.VerifyRewards(ctx, testUserID))
		f.procedures.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
		f.reloader.AssertNotCalled(t, "Reload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing reward item is re-granted", func(t *testing.T) {
		f := newFixture()
		cap := &domain.Item{ID: entroCapItemID, Name: "Entro Cap"}

		f.quests.On("GetUserQuests", ctx, testUserID).Return([]domain.UserQuest{completedRow(welcomeID)}, nil)
		f.quests.On("GetQuests", ctx).Return([]domain.Quest{welcome}, nil)
		f.inventory.On("GetInventory", ctx, testUserID).Return([]domain.InventoryEntry{}, nil)
		f.items.On("GetItemByName", ctx, "Entro Cap").Return(cap, nil)
		f.procedures.On("AddItem", ctx, testUserID, entroCapItemID).Return(nil)
		f.publisher.On("PublishWithRetry", ctx, mock.Anything).Return()
		f.reloader.On("Reload", ctx, testUserID, "reward repair").Return()

		require.NoError(t, f.svc.VerifyRewards(ctx, testUserID))

		f.procedures.AssertCalled(t, "AddItem", ctx, testUserID, entroCapItemID)
		f.reloader.AssertExpectations(t)
		// the welcome quest is not in the corrupted family: items only
		f.crediter.AssertNotCalled(t, "CreditQuestReward",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("corrupted quest repair also re-credits entrobucks and XP", func(t *testing.T) {
		f := newFixture()
		crown := &domain.Item{ID: "cr1", Name: "Corrupted Crown"}

		f.quests.On("GetUserQuests", ctx, testUserID).Return([]domain.UserQuest{completedRow(corrupted.ID)}, nil)
		f.quests.On("GetQuests", ctx).Return([]domain.Quest{corrupted}, nil)
		f.inventory.On("GetInventory", ctx, testUserID).Return([]domain.InventoryEntry{}, nil)
		f.items.On("GetItemByName", ctx, "Corrupted Crown").Return(crown, nil)
		f.procedures.On("AddItem", ctx, testUserID, "cr1").Return(nil)
		f.crediter.On("CreditQuestReward", ctx, testUserID, 250, mock.Anything).Return(250, nil)
		f.profiles.On("GetProfile", ctx, testUserID).Return(&domain.Profile{UserID: testUserID, Level: 4}, nil)
		f.procedures.On("AddXP", ctx, testUserID, 500).Return(4, 120, nil)
		f.publisher.On("PublishWithRetry", ctx, mock.Anything).Return()
		f.reloader.On("Reload", ctx, testUserID, "reward repair").Return()

		require.NoError(t, f.svc.VerifyRewards(ctx, testUserID))

		f.crediter.AssertExpectations(t)
		f.procedures.AssertCalled(t, "AddXP", ctx, testUserID, 500)
	})

	t.Run("sweep repairs the catalog reward item of a bonus quest", func(t *testing.T) {
		f := newFixture()
		quest := *corruptedQuest()
		quest.RewardItem = strPtr("Glitch Goggles")
		goggles := &domain.Item{ID: "g1", Name: "Glitch Goggles"}
		crown := &domain.Item{ID: "cr1", Name: "Corrupted Crown"}

		f.quests.On("GetUserQuests", ctx, testUserID).Return([]domain.UserQuest{completedRow(quest.ID)}, nil)
		f.quests.On("GetQuests", ctx).Return([]domain.Quest{quest}, nil)
		// the crown made it, the catalog reward item did not
		f.inventory.On("GetInventory", ctx, testUserID).Return([]domain.InventoryEntry{
			{UserID: testUserID, ItemID: "cr1", Count: 1},
		}, nil)
		f.items.On("GetItemByName", ctx, "Glitch Goggles").Return(goggles, nil)
		f.items.On("GetItemByName", ctx, "Corrupted Crown").Return(crown, nil)
		f.procedures.On("AddItem", ctx, testUserID, "g1").Return(nil)
		f.crediter.On("CreditQuestReward", ctx, testUserID, 250, mock.Anything).Return(250, nil)
		f.profiles.On("GetProfile", ctx, testUserID).Return(&domain.Profile{UserID: testUserID, Level: 4}, nil)
		f.procedures.On("AddXP", ctx, testUserID, 500).Return(4, 120, nil)
		f.publisher.On("PublishWithRetry", ctx, mock.Anything).Return()
		f.reloader.On("Reload", ctx, testUserID, "reward repair").Return()

		require.NoError(t, f.svc.VerifyRewards(ctx, testUserID))

		f.procedures.AssertCalled(t, "AddItem", ctx, testUserID, "g1")
		f.procedures.AssertNotCalled(t, "AddItem", ctx, testUserID, "cr1")
	})

	t.Run("in-progress quests are ignored", func(t *testing.T) {
		f := newFixture()
		row := completedRow(welcomeID)
		row.Status = domain.QuestStatusInProgress

		f.quests.On("GetUserQuests", ctx, testUserID).Return([]domain.UserQuest{row}, nil)
		f.quests.On("GetQuests", ctx).Return([]domain.Quest{welcome}, nil)
		f.inventory.On("GetInventory", ctx, testUserID).Return([]domain.InventoryEntry{}, nil)

		require.NoError(t, f.svc.VerifyRewards(ctx, testUserID))
		f.procedures.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGrantsForTitle(t *testing.T) {
	spec, ok := grantsForTitle(TitleWelcome)
	require.True(t, ok)
	assert.Equal(t, []string{"Entro Cap"}, spec.Items)
	assert.Empty(t, spec.Label)

	// only the explorer grant overrides the displayed label
	spec, ok = grantsForTitle(TitleExplorer)
	require.True(t, ok)
	assert.Len(t, spec.Items, 2)
	assert.Equal(t, "Void Visor and Static Cloak", spec.Label)

	// any corrupted title, case-insensitively
	spec, ok = grantsForTitle("CORRUPTED SIGNAL")
	require.True(t, ok)
	assert.Equal(t, []string{"Corrupted Crown"}, spec.Items)
	spec, ok = grantsForTitle("echoes of the corrupted grid")
	require.True(t, ok)
	assert.Equal(t, []string{"Corrupted Crown"}, spec.Items)

	_, ok = grantsForTitle("Window Shopper")
	assert.False(t, ok)
}

func TestRewardItemNames(t *testing.T) {
	quest := &domain.Quest{Title: "CORRUPTED CACHE", RewardItem: strPtr("Glitch Goggles")}
	names, label := rewardItemNames(quest)
	assert.Equal(t, []string{"Glitch Goggles", "Corrupted Crown"}, names)
	assert.Equal(t, "Glitch Goggles", label)

	quest = &domain.Quest{Title: TitleExplorer, RewardItem: strPtr("Star Chart")}
	names, label = rewardItemNames(quest)
	assert.Equal(t, []string{"Star Chart", "Void Visor", "Static Cloak"}, names)
	assert.Equal(t, "Void Visor and Static Cloak", label)

	quest = &domain.Quest{Title: TitleWelcome}
	names, label = rewardItemNames(quest)
	assert.Equal(t, []string{"Entro Cap"}, names)
	assert.Equal(t, "Entro Cap", label)

	quest = &domain.Quest{Title: "Window Shopper", RewardItem: strPtr("Tote Bag")}
	names, label = rewardItemNames(quest)
	assert.Equal(t, []string{"Tote Bag"}, names)
	assert.Equal(t, "Tote Bag", label)
}
