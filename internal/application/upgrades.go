package application

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"bumsfarm/internal/domain"
)

func mineCardID(card domain.MineCard) string {
	return strconv.Itoa(card.MineID)
}

// runTapUpgrades walks the fixed stat catalog and buys the first stat that
// is both below its configured ceiling and affordable, then restarts the
// scan: every purchase shifts levels and prices, so the state is re-fetched
// before each attempt. Stops when nothing is buyable.
func (f *Farmer) runTapUpgrades(ctx context.Context, token string) error {
	f.log.Info("upgrading tap stats")

	for {
		state, err := f.api.GameInfo(ctx, token)
		if err != nil {
			f.log.Error("fetching game state failed", zap.Error(err))
			return nil
		}

		upgraded := false
		for _, key := range domain.AllTapStats() {
			stat := state.TapStats[key]
			ceiling := f.cfg.StatCeilings[key]
			if stat.Level >= ceiling || state.Coin < stat.NextCostCoin {
				continue
			}

			if err := f.api.UpgradeTapStat(ctx, token, key); err != nil {
				f.log.Error("stat upgrade failed", zap.String("stat", string(key)), zap.Error(err))
			} else {
				f.log.Info("stat upgraded",
					zap.String("stat", f.cardTitle(string(key))),
					zap.Int("level", stat.Level+1),
					zap.Int("cost", stat.NextCostCoin),
				)
				upgraded = true
			}
			break
		}

		if !upgraded {
			if f.allStatsAtCeiling(state) {
				f.log.Info("all tap stats fully upgraded", zap.Int("balance", state.Coin))
			} else {
				f.log.Info("insufficient balance for further stat upgrades", zap.Int("balance", state.Coin))
			}
			return f.pause(ctx, 1, 5)
		}

		if err := f.pause(ctx, 2, 5); err != nil {
			return err
		}
	}
}

func (f *Farmer) allStatsAtCeiling(state domain.GameState) bool {
	for _, key := range domain.AllTapStats() {
		if state.TapStats[key].Level < f.cfg.StatCeilings[key] {
			return false
		}
	}
	return true
}

// runMineUpgrades repeatedly filters the mine list to purchasable cards at
// or under the price ceiling and buys them in listed order while the
// re-fetched balance covers each cost. An outer pass with no purchase ends
// the routine.
func (f *Farmer) runMineUpgrades(ctx context.Context, token string) error {
	f.log.Info("upgrading mine cards")

	for {
		cards, err := f.api.MineList(ctx, token)
		if err != nil {
			f.log.Error("fetching mine list failed", zap.Error(err))
			return nil
		}

		upgradeable := cards[:0:0]
		for _, card := range cards {
			if card.Status == domain.MineStatusPurchasable && card.NextLevelCost <= f.cfg.MaxCardPrice {
				upgradeable = append(upgradeable, card)
			}
		}
		if len(upgradeable) == 0 {
			f.log.Info("all mine cards upgraded")
			return f.pause(ctx, 1, 3)
		}

		purchased := false
		for _, card := range upgradeable {
			state, err := f.api.GameInfo(ctx, token)
			if err != nil {
				f.log.Error("fetching game state failed", zap.Error(err))
				break
			}
			if state.Coin < card.NextLevelCost {
				break
			}

			if err := f.api.UpgradeMine(ctx, token, card.MineID); err != nil {
				f.log.Error("mine upgrade failed", zap.Int("mine_id", card.MineID), zap.Error(err))
			} else {
				f.log.Info("mine card upgraded",
					zap.String("card", f.cardTitle(mineCardID(card))),
					zap.Int("level", card.Level+1),
					zap.Int("cost", card.NextLevelCost),
				)
				purchased = true
			}
			if err := f.pause(ctx, 1, 3); err != nil {
				return err
			}
		}

		if !purchased {
			f.log.Info("no more mine upgrades affordable")
			return f.pause(ctx, 1, 3)
		}
	}
}
