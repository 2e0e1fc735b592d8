package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bumsfarm/internal/domain"
)

// comboFeature is the feature-list entry gating the daily combo puzzle.
const comboFeature = "combo"

// runGang joins the configured gang (or the first listed one) if the
// account is not in a gang yet.
func (f *Farmer) runGang(ctx context.Context, token string) error {
	gangs, err := f.api.GangList(ctx, token)
	if err != nil {
		f.log.Error("fetching gang list failed", zap.Error(err))
		return nil
	}

	var target *domain.GangInfo
	for i := range gangs {
		if gangs[i].Joined {
			return nil
		}
		if target == nil && (f.cfg.GangName == "" || gangs[i].Name == f.cfg.GangName) {
			target = &gangs[i]
		}
	}
	if target == nil {
		f.log.Info("no joinable gang found", zap.String("wanted", f.cfg.GangName))
		return nil
	}

	if err := f.api.JoinGang(ctx, token, target.GangID); err != nil {
		f.log.Error("joining gang failed", zap.String("gang", target.Name), zap.Error(err))
		return nil
	}
	f.log.Info("joined gang", zap.String("gang", target.Name))
	return f.pause(ctx, 1, 3)
}

// runCombo submits the locally seeded 3-part combo answer, if the account
// has the feature, attempts remain, and an answer is on file. A rejected
// answer is cleared so a fresh one has to be seeded by hand.
func (f *Farmer) runCombo(ctx context.Context, token string, state domain.GameState) error {
	if !state.HasFeature(comboFeature) {
		return nil
	}
	if f.comboAnswers == nil {
		return nil
	}

	info, err := f.api.ComboInfo(ctx, token)
	if err != nil {
		f.log.Info("combo not available", zap.Error(err))
		return nil
	}

	answer, err := f.comboAnswers.Get()
	if err != nil {
		if errors.Is(err, domain.ErrNoComboAnswer) {
			f.log.Info("no combo answer seeded, skipping")
		} else {
			f.log.Error("reading combo answer failed", zap.Error(err))
		}
		return nil
	}

	correct, err := f.api.SubmitCombo(ctx, token, answer)
	if err != nil {
		f.log.Error("combo submission failed", zap.Error(err))
		return nil
	}
	if correct {
		f.log.Info("combo solved")
		return f.pause(ctx, 1, 3)
	}

	if err := f.comboAnswers.Clear(); err != nil {
		f.log.Error("clearing rejected combo answer failed", zap.Error(err))
	}
	f.log.Warn("combo answer rejected, local answer cleared",
		zap.Int("attempts_left", info.RemainingAttempts),
	)
	return f.pause(ctx, 1, 3)
}

// runSpins spends the slot stamina in the largest accepted batches,
// refreshing the counter after each spin.
func (f *Farmer) runSpins(ctx context.Context, token string) error {
	spin, err := f.api.SpinInfo(ctx, token)
	if err != nil {
		f.log.Error("fetching spin stamina failed", zap.Error(err))
		return nil
	}

	for spin.Stamina > 0 {
		batch := domain.SpinBatch(spin.Stamina)
		if batch == 0 {
			return nil
		}

		if err := f.api.StartSpin(ctx, token, batch); err != nil {
			f.log.Error("spin failed", zap.Int("count", batch), zap.Error(err))
			return nil
		}
		f.log.Info("spun", zap.Int("count", batch))

		refreshed, err := f.api.SpinInfo(ctx, token)
		if err != nil {
			f.log.Error("refreshing spin stamina failed", zap.Error(err))
			return nil
		}
		spin = refreshed

		if err := f.pause(ctx, 1, 3); err != nil {
			return err
		}
	}

	return nil
}
