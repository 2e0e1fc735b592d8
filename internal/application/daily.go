package application

import (
	"context"

	"go.uber.org/zap"
)

// runSignIn claims today's check-in reward if it is still open. A fetch
// failure returns ok=false, which skips the remaining sub-routines for
// this cycle (preserved source policy).
func (f *Farmer) runSignIn(ctx context.Context, token string) (bool, error) {
	state, err := f.api.SignInfo(ctx, token)
	if err != nil {
		f.log.Error("fetching check-in state failed", zap.Error(err))
		return false, nil
	}

	if day, ok := state.NextUnclaimed(); ok {
		if err := f.api.SignIn(ctx, token); err != nil {
			f.log.Error("check-in failed", zap.Error(err))
		} else {
			f.log.Info("checked in", zap.String("day", day.DaysDesc), zap.Int("reward", day.Reward))
		}
	}

	return true, f.pause(ctx, 1, 3)
}

// runReferWallet collects any referral earnings waiting in the wallet.
func (f *Farmer) runReferWallet(ctx context.Context, token string) (bool, error) {
	wallet, err := f.api.ReferWallet(ctx, token)
	if err != nil {
		f.log.Error("fetching referral wallet failed", zap.Error(err))
		return false, nil
	}

	if wallet.Collectible > 0 {
		if err := f.api.CollectReferWallet(ctx, token); err != nil {
			f.log.Error("collecting referral wallet failed", zap.Error(err))
		} else {
			f.log.Info("collected referral wallet", zap.Int("amount", wallet.Collectible))
		}
	}

	return true, f.pause(ctx, 1, 3)
}

// runBoxes opens every free box currently available.
func (f *Farmer) runBoxes(ctx context.Context, token string) (bool, error) {
	free, err := f.api.BoxInfo(ctx, token)
	if err != nil {
		f.log.Error("fetching box state failed", zap.Error(err))
		return false, nil
	}

	for i := 0; i < free; i++ {
		rewards, err := f.api.OpenBox(ctx, token)
		if err != nil {
			f.log.Error("opening box failed", zap.Error(err))
			break
		}
		f.log.Info("opened free box", zap.String("rewards", describeRewards(rewards)))
		if err := f.pause(ctx, 1, 3); err != nil {
			return true, err
		}
	}

	return true, nil
}
