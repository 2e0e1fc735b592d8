package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bumsfarm/internal/domain"
)

func TestNewFarmerRequiresAPIAndCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewFarmer(Deps{Credentials: staticCreds("x")})
	require.Error(t, err)

	_, err = NewFarmer(Deps{API: &fakeGameAPI{}})
	require.Error(t, err)
}

func TestRunReturnsFatalCredentialErrors(t *testing.T) {
	t.Parallel()

	for _, fatal := range []error{domain.ErrInvalidSession, domain.ErrProxyConfig} {
		fatal := fatal
		farmer := newTestFarmer(t, testSettings(), &fakeGameAPI{}, func(d *Deps) {
			d.Credentials = credsFunc(func(context.Context) (domain.Credentials, error) {
				return domain.Credentials{}, fatal
			})
		})

		err := farmer.Run(context.Background())
		require.ErrorIs(t, err, fatal)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	farmer := newTestFarmer(t, testSettings(), &fakeGameAPI{})
	err := farmer.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCycleSkipsRestAfterSignInFetchFailure(t *testing.T) {
	t.Parallel()

	tapInfoCalls := 0
	api := &fakeGameAPI{
		signInfo: func(context.Context, string) (domain.SignInState, error) {
			return domain.SignInState{}, errors.New("http 500")
		},
		tapInfo: func(context.Context, string) (domain.TapState, error) {
			tapInfoCalls++
			return domain.TapState{}, nil
		},
	}

	cfg := testSettings()
	cfg.AutoSignIn = true
	cfg.AutoTap = true
	farmer := newTestFarmer(t, cfg, api)

	require.NoError(t, farmer.runCycle(context.Background(), "tok", domain.GameState{}))
	assert.Zero(t, tapInfoCalls)
}

func TestRunCycleContinuesAfterSuccessfulDailies(t *testing.T) {
	t.Parallel()

	tapInfoCalls := 0
	api := &fakeGameAPI{
		tapInfo: func(context.Context, string) (domain.TapState, error) {
			tapInfoCalls++
			return domain.TapState{}, nil
		},
	}

	cfg := testSettings()
	cfg.AutoSignIn = true
	cfg.AutoReferWallet = true
	cfg.AutoBoxes = true
	cfg.AutoTap = true
	farmer := newTestFarmer(t, cfg, api)

	require.NoError(t, farmer.runCycle(context.Background(), "tok", domain.GameState{}))
	assert.Equal(t, 1, tapInfoCalls)
}

func TestInNightWindow(t *testing.T) {
	t.Parallel()

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
	}

	assert.True(t, inNightWindow(at(2, 30), 0, 7))
	assert.True(t, inNightWindow(at(0, 0), 0, 7))
	// The window ends at the end hour sharp.
	assert.True(t, inNightWindow(at(7, 0), 0, 7))
	assert.False(t, inNightWindow(at(7, 59), 0, 7))
	assert.False(t, inNightWindow(at(8, 30), 0, 7))

	// Window wrapping midnight.
	assert.True(t, inNightWindow(at(23, 30), 22, 6))
	assert.True(t, inNightWindow(at(3, 30), 22, 6))
	assert.True(t, inNightWindow(at(6, 0), 22, 6))
	assert.False(t, inNightWindow(at(6, 30), 22, 6))
	assert.False(t, inNightWindow(at(12, 30), 22, 6))
}

type probingAPI struct {
	fakeGameAPI
	egressCalls int
}

func (p *probingAPI) CheckEgress(context.Context) (string, string, error) {
	p.egressCalls++
	return "203.0.113.7", "Norway", nil
}

func TestRunChecksEgressOnceAtStartup(t *testing.T) {
	t.Parallel()

	api := &probingAPI{}
	farmer := newTestFarmer(t, testSettings(), api, func(d *Deps) {
		d.Credentials = credsFunc(func(context.Context) (domain.Credentials, error) {
			return domain.Credentials{}, domain.ErrInvalidSession
		})
	})

	err := farmer.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidSession)
	assert.Equal(t, 1, api.egressCalls)
}

func TestSleepCtxHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := sleepCtx(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}
