package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"bumsfarm/internal/config"
	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// retryDelay is the fixed pause after a caught transient failure, so a
// broken collaborator cannot hot-loop the cycle.
const retryDelay = 3 * time.Second

// Deps wires one farmer instance. API and Credentials are required; the
// rest defaults to inert implementations.
type Deps struct {
	Label        domain.SessionLabel
	Settings     config.Settings
	API          ports.GameAPI
	Credentials  ports.CredentialSource
	Joiner       ports.ChannelJoiner
	Renamer      ports.ProfileRenamer
	TaskAnswers  ports.TaskAnswerStore
	ComboAnswers ports.ComboAnswerStore
	Cards        ports.CardCatalog
	Clock        ports.Clock
	Rand         *rand.Rand
	Logger       *zap.Logger
}

// Farmer drives one identity's session loop: authenticate, run the enabled
// sub-routines in a fixed order, sleep, repeat. Run only returns for the
// two identity-fatal conditions or context cancellation; everything else is
// logged and absorbed.
type Farmer struct {
	label        domain.SessionLabel
	cfg          config.Settings
	api          ports.GameAPI
	creds        ports.CredentialSource
	joiner       ports.ChannelJoiner
	renamer      ports.ProfileRenamer
	taskAnswers  ports.TaskAnswerStore
	comboAnswers ports.ComboAnswerStore
	cards        ports.CardCatalog
	clock        ports.Clock
	rng          *rand.Rand
	log          *zap.Logger
	sleep        func(context.Context, time.Duration) error
}

func NewFarmer(deps Deps) (*Farmer, error) {
	if deps.API == nil {
		return nil, errors.New("game api is required")
	}
	if deps.Credentials == nil {
		return nil, errors.New("credential source is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Farmer{
		label:        deps.Label,
		cfg:          deps.Settings,
		api:          deps.API,
		creds:        deps.Credentials,
		joiner:       deps.Joiner,
		renamer:      deps.Renamer,
		taskAnswers:  deps.TaskAnswers,
		comboAnswers: deps.ComboAnswers,
		cards:        deps.Cards,
		clock:        deps.Clock,
		rng:          deps.Rand,
		log:          deps.Logger.Named(string(deps.Label)),
		sleep:        sleepCtx,
	}, nil
}

func (f *Farmer) Label() domain.SessionLabel {
	return f.label
}

// Run is the outer cycle. It exits with domain.ErrInvalidSession or
// domain.ErrProxyConfig (identity-fatal) or the context's error.
func (f *Farmer) Run(ctx context.Context) error {
	startDelay := f.jitter(f.cfg.StartDelay)
	f.log.Info("starting", zap.Duration("delay", startDelay))
	if err := f.sleep(ctx, startDelay); err != nil {
		return err
	}

	f.reportEgress(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if f.cfg.NightMode && inNightWindow(f.clock.Now().UTC(), f.cfg.NightStartHour, f.cfg.NightEndHour) {
			pause := f.jitter(f.cfg.NightCheck)
			f.log.Info("night window active, idling", zap.Duration("next_check", pause))
			if err := f.sleep(ctx, pause); err != nil {
				return err
			}
			continue
		}

		cycleSleep := f.jitter(f.cfg.CycleSleep)

		creds, err := f.creds.Acquire(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidSession) || errors.Is(err, domain.ErrProxyConfig) {
				return err
			}
			f.log.Error("credential acquisition failed", zap.Error(err))
			if err := f.sleep(ctx, retryDelay); err != nil {
				return err
			}
			continue
		}

		f.log.Info("logging in")
		token, err := f.api.Login(ctx, creds.ReferralID, creds.InitData)
		if err != nil {
			f.log.Error("login failed", zap.Error(err))
			if err := f.sleepCycle(ctx, cycleSleep); err != nil {
				return err
			}
			continue
		}
		f.log.Info("login successful")

		// A failed state fetch aborts only this cycle, not the loop.
		state, err := f.api.GameInfo(ctx, token)
		if err != nil {
			f.log.Error("fetching game state failed", zap.Error(err))
			if err := f.sleepCycle(ctx, cycleSleep); err != nil {
				return err
			}
			continue
		}
		f.log.Info("account state",
			zap.String("balance", domain.FormatAmount(float64(state.Coin))),
			zap.Int("level", state.Level),
			zap.String("profit_per_hour", domain.FormatAmount(float64(state.MinePower))),
		)
		if state.MineOfflineCoin > 0 {
			f.log.Info("collected offline bonus", zap.Int("amount", state.MineOfflineCoin))
		}

		if err := f.runCycle(ctx, token, state); err != nil {
			return err
		}

		if err := f.sleepCycle(ctx, cycleSleep); err != nil {
			return err
		}
	}
}

// runCycle executes the enabled sub-routines in their fixed order. The
// returned error is only ever a context error: sub-routine failures are
// logged inside each routine. The daily fetches (sign-in, wallet, boxes)
// keep the source's policy of skipping everything after them when their
// initial fetch fails.
func (f *Farmer) runCycle(ctx context.Context, token string, state domain.GameState) error {
	if err := f.pause(ctx, 1, 3); err != nil {
		return err
	}

	if f.cfg.AutoSignIn {
		if ok, err := f.runSignIn(ctx, token); err != nil || !ok {
			return err
		}
	}
	if f.cfg.AutoReferWallet {
		if ok, err := f.runReferWallet(ctx, token); err != nil || !ok {
			return err
		}
	}
	if f.cfg.AutoBoxes {
		if ok, err := f.runBoxes(ctx, token); err != nil || !ok {
			return err
		}
	}

	if f.cfg.AutoTap {
		if err := f.runTaps(ctx, token); err != nil {
			return err
		}
	}
	if f.cfg.AutoTask {
		if err := f.runTasks(ctx, token); err != nil {
			return err
		}
	}
	if f.cfg.AutoUpgradeTapCards {
		if err := f.runTapUpgrades(ctx, token); err != nil {
			return err
		}
	}
	if f.cfg.AutoUpgradeMineCards {
		if err := f.runMineUpgrades(ctx, token); err != nil {
			return err
		}
	}
	if f.cfg.AutoGang {
		if err := f.runGang(ctx, token); err != nil {
			return err
		}
	}
	if f.cfg.AutoCombo {
		if err := f.runCombo(ctx, token, state); err != nil {
			return err
		}
	}
	if f.cfg.AutoSpin {
		if err := f.runSpins(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

// egressProber is the optional capability of API clients that can resolve
// their outward address, for the startup log line.
type egressProber interface {
	CheckEgress(ctx context.Context) (ip, country string, err error)
}

func (f *Farmer) reportEgress(ctx context.Context) {
	prober, ok := f.api.(egressProber)
	if !ok {
		return
	}
	ip, country, err := prober.CheckEgress(ctx)
	if err != nil {
		f.log.Warn("egress check failed", zap.Error(err))
		return
	}
	f.log.Info("egress", zap.String("ip", ip), zap.String("country", country))
}

func (f *Farmer) sleepCycle(ctx context.Context, d time.Duration) error {
	f.log.Info("sleeping until next cycle", zap.Duration("duration", d.Round(time.Second)))
	return f.sleep(ctx, d)
}

// jitter draws a duration uniformly from the configured range, in seconds.
func (f *Farmer) jitter(r config.Range) time.Duration {
	return time.Duration(f.drawInt(r.Min, r.Max)) * time.Second
}

func (f *Farmer) drawInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + f.rng.Intn(max-min+1)
}

// pause sleeps a small random number of seconds between remote calls.
func (f *Farmer) pause(ctx context.Context, min, max int) error {
	return f.sleep(ctx, time.Duration(f.drawInt(min, max))*time.Second)
}

func (f *Farmer) cardTitle(id string) string {
	if f.cards == nil {
		return id
	}
	if info, ok := f.cards.CardInfo(id); ok {
		return info.Title
	}
	return id
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// inNightWindow reports whether t (UTC) falls inside the window from
// startHour:00 to endHour:00 sharp. A window wrapping midnight is expressed
// by startHour > endHour.
func inNightWindow(t time.Time, startHour, endHour int) bool {
	h := t.Hour()
	beforeEnd := h < endHour || (h == endHour && t.Minute() == 0)
	if startHour <= endHour {
		return h >= startHour && beforeEnd
	}
	return h >= startHour || beforeEnd
}

func describeRewards(rewards []domain.BoxReward) string {
	out := ""
	for i, r := range rewards {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%d", r.Name, r.Amount)
	}
	return out
}
