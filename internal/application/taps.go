package application

import (
	"context"

	"go.uber.org/zap"

	"bumsfarm/internal/domain"
)

// runTaps drains the available energy in randomized batches. The tap state
// (energy, today's total and above all the sequence token) is re-fetched
// after every accepted submission; a stale token would invalidate the next
// one.
func (f *Farmer) runTaps(ctx context.Context, token string) error {
	tap, err := f.api.TapInfo(ctx, token)
	if err != nil {
		f.log.Error("fetching tap state failed", zap.Error(err))
		return nil
	}

	f.log.Info("starting taps", zap.Int("energy", tap.LeftEnergy), zap.Int("total_energy", tap.TotalEnergy))

	for tap.LeftEnergy > 1 {
		if tap.AutoClickDetected {
			f.log.Info("auto-clicker perk active, skipping taps")
			return nil
		}
		if tap.TodayCoin > tap.TodayCoinLimit {
			f.log.Warn("daily tap limit reached, skipping taps")
			return nil
		}

		batch := f.drawInt(f.cfg.TapsPerBatch.Min, f.cfg.TapsPerBatch.Max)
		amount := 0
		for i := 0; i < batch; i++ {
			amount += domain.TapGain(tap.TapValue, tap.LeftEnergy, tap.BonusChance, tap.BonusRatio, f.rng.Intn)
		}
		if amount <= 0 || amount > tap.LeftEnergy {
			f.log.Warn("not enough energy for batch",
				zap.Int("amount", amount),
				zap.Int("energy", tap.LeftEnergy),
			)
			return nil
		}

		hash := domain.CollectHash(amount, tap.CollectSeqNo)
		balance, err := f.api.SubmitTaps(ctx, token, amount, tap.CollectSeqNo, hash)
		if err != nil {
			f.log.Error("tap submission failed", zap.Error(err))
			return nil
		}

		refreshed, err := f.api.TapInfo(ctx, token)
		if err != nil {
			f.log.Error("refreshing tap state failed", zap.Error(err))
			return nil
		}
		tap = refreshed

		f.log.Info("tapped",
			zap.Int("taps", batch),
			zap.Int("gained", amount),
			zap.Int("balance", balance),
			zap.Int("energy", tap.LeftEnergy),
		)

		if err := f.pause(ctx, f.cfg.TapDelay.Min, f.cfg.TapDelay.Max); err != nil {
			return err
		}
	}

	return f.pause(ctx, 1, 3)
}
