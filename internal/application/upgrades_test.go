package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bumsfarm/internal/domain"
)

func statsFromLevels(levels map[domain.TapStatKey]int) map[domain.TapStatKey]domain.TapStat {
	stats := make(map[domain.TapStatKey]domain.TapStat, len(levels))
	for key, level := range levels {
		stats[key] = domain.TapStat{Level: level, Value: level * 10, NextCostCoin: 100}
	}
	return stats
}

func TestRunTapUpgradesBuysEveryStatToCeiling(t *testing.T) {
	t.Parallel()

	levels := map[domain.TapStatKey]int{}
	for _, key := range domain.AllTapStats() {
		levels[key] = 0
	}

	var purchases []domain.TapStatKey
	api := &fakeGameAPI{
		gameInfo: func(context.Context, string) (domain.GameState, error) {
			return domain.GameState{Coin: 1_000_000, TapStats: statsFromLevels(levels)}, nil
		},
		upgradeStat: func(_ context.Context, _ string, stat domain.TapStatKey) error {
			levels[stat]++
			purchases = append(purchases, stat)
			return nil
		},
	}

	farmer := newTestFarmer(t, testSettings(), api)
	require.NoError(t, farmer.runTapUpgrades(context.Background(), "tok"))

	// Five stats, ceiling 3 each.
	assert.Len(t, purchases, 15)
	perStat := map[domain.TapStatKey]int{}
	for _, stat := range purchases {
		perStat[stat]++
	}
	for _, key := range domain.AllTapStats() {
		assert.Equal(t, 3, perStat[key], "stat %s", key)
		assert.Equal(t, 3, levels[key], "stat %s", key)
	}
}

func TestRunTapUpgradesStopsWhenUnaffordable(t *testing.T) {
	t.Parallel()

	levels := map[domain.TapStatKey]int{}
	for _, key := range domain.AllTapStats() {
		levels[key] = 0
	}

	infoCalls := 0
	upgradeCalls := 0
	api := &fakeGameAPI{
		gameInfo: func(context.Context, string) (domain.GameState, error) {
			infoCalls++
			return domain.GameState{Coin: 50, TapStats: statsFromLevels(levels)}, nil
		},
		upgradeStat: func(context.Context, string, domain.TapStatKey) error {
			upgradeCalls++
			return nil
		},
	}

	farmer := newTestFarmer(t, testSettings(), api)
	require.NoError(t, farmer.runTapUpgrades(context.Background(), "tok"))

	assert.Equal(t, 1, infoCalls)
	assert.Zero(t, upgradeCalls)
}

func TestRunMineUpgradesBuysInOrderUntilUnaffordable(t *testing.T) {
	t.Parallel()

	coin := 250
	cards := []domain.MineCard{
		{MineID: 1, Level: 1, Status: domain.MineStatusPurchasable, NextLevelCost: 100},
		{MineID: 2, Level: 1, Status: domain.MineStatusPurchasable, NextLevelCost: 200},
		{MineID: 3, Level: 1, Status: domain.MineStatusPurchasable, NextLevelCost: 5000},
	}

	var purchased []int
	api := &fakeGameAPI{
		mineList: func(context.Context, string) ([]domain.MineCard, error) {
			return append([]domain.MineCard(nil), cards...), nil
		},
		gameInfo: func(context.Context, string) (domain.GameState, error) {
			return domain.GameState{Coin: coin}, nil
		},
		upgradeMine: func(_ context.Context, _ string, mineID int) error {
			purchased = append(purchased, mineID)
			for i, card := range cards {
				if card.MineID == mineID {
					coin -= card.NextLevelCost
					cards = append(cards[:i], cards[i+1:]...)
					break
				}
			}
			return nil
		},
	}

	farmer := newTestFarmer(t, testSettings(), api)
	require.NoError(t, farmer.runMineUpgrades(context.Background(), "tok"))

	// Card 3 sits above the price ceiling, card 2 above the balance left
	// after card 1. Exactly the first card is bought.
	assert.Equal(t, []int{1}, purchased)
	assert.Equal(t, 150, coin)
}

func TestRunMineUpgradesNoPurchasableCards(t *testing.T) {
	t.Parallel()

	upgradeCalls := 0
	api := &fakeGameAPI{
		mineList: func(context.Context, string) ([]domain.MineCard, error) {
			return []domain.MineCard{
				{MineID: 1, Status: 2, NextLevelCost: 100},
				{MineID: 2, Status: 3, NextLevelCost: 100},
			}, nil
		},
		upgradeMine: func(context.Context, string, int) error {
			upgradeCalls++
			return nil
		},
	}

	farmer := newTestFarmer(t, testSettings(), api)
	require.NoError(t, farmer.runMineUpgrades(context.Background(), "tok"))
	assert.Zero(t, upgradeCalls)
}
