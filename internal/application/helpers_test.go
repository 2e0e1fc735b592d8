package application

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bumsfarm/internal/config"
	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// fakeGameAPI dispatches to per-test hooks; a nil hook returns zero values.
type fakeGameAPI struct {
	login        func(ctx context.Context, referralID, initData string) (string, error)
	gameInfo     func(ctx context.Context, token string) (domain.GameState, error)
	tapInfo      func(ctx context.Context, token string) (domain.TapState, error)
	submitTaps   func(ctx context.Context, token string, amount, collectSeqNo int, hash string) (int, error)
	upgradeStat  func(ctx context.Context, token string, stat domain.TapStatKey) error
	mineList     func(ctx context.Context, token string) ([]domain.MineCard, error)
	upgradeMine  func(ctx context.Context, token string, mineID int) error
	signInfo     func(ctx context.Context, token string) (domain.SignInState, error)
	signIn       func(ctx context.Context, token string) error
	taskList     func(ctx context.Context, token string) ([]domain.Task, error)
	finishTask   func(ctx context.Context, token string, taskID int, pwd string) error
	referWallet  func(ctx context.Context, token string) (domain.WalletState, error)
	collectRefer func(ctx context.Context, token string) error
	gangList     func(ctx context.Context, token string) ([]domain.GangInfo, error)
	joinGang     func(ctx context.Context, token string, gangID string) error
	comboInfo    func(ctx context.Context, token string) (domain.ComboState, error)
	submitCombo  func(ctx context.Context, token string, answer [3]string) (bool, error)
	boxInfo      func(ctx context.Context, token string) (int, error)
	openBox      func(ctx context.Context, token string) ([]domain.BoxReward, error)
	spinInfo     func(ctx context.Context, token string) (domain.SpinState, error)
	startSpin    func(ctx context.Context, token string, count int) error
}

var _ ports.GameAPI = (*fakeGameAPI)(nil)

func (f *fakeGameAPI) Login(ctx context.Context, referralID, initData string) (string, error) {
	if f.login == nil {
		return "token", nil
	}
	return f.login(ctx, referralID, initData)
}

func (f *fakeGameAPI) GameInfo(ctx context.Context, token string) (domain.GameState, error) {
	if f.gameInfo == nil {
		return domain.GameState{}, nil
	}
	return f.gameInfo(ctx, token)
}

func (f *fakeGameAPI) TapInfo(ctx context.Context, token string) (domain.TapState, error) {
	if f.tapInfo == nil {
		return domain.TapState{}, nil
	}
	return f.tapInfo(ctx, token)
}

func (f *fakeGameAPI) SubmitTaps(ctx context.Context, token string, amount, collectSeqNo int, hash string) (int, error) {
	if f.submitTaps == nil {
		return 0, nil
	}
	return f.submitTaps(ctx, token, amount, collectSeqNo, hash)
}

func (f *fakeGameAPI) UpgradeTapStat(ctx context.Context, token string, stat domain.TapStatKey) error {
	if f.upgradeStat == nil {
		return nil
	}
	return f.upgradeStat(ctx, token, stat)
}

func (f *fakeGameAPI) MineList(ctx context.Context, token string) ([]domain.MineCard, error) {
	if f.mineList == nil {
		return nil, nil
	}
	return f.mineList(ctx, token)
}

func (f *fakeGameAPI) UpgradeMine(ctx context.Context, token string, mineID int) error {
	if f.upgradeMine == nil {
		return nil
	}
	return f.upgradeMine(ctx, token, mineID)
}

func (f *fakeGameAPI) SignInfo(ctx context.Context, token string) (domain.SignInState, error) {
	if f.signInfo == nil {
		return domain.SignInState{}, nil
	}
	return f.signInfo(ctx, token)
}

func (f *fakeGameAPI) SignIn(ctx context.Context, token string) error {
	if f.signIn == nil {
		return nil
	}
	return f.signIn(ctx, token)
}

func (f *fakeGameAPI) TaskList(ctx context.Context, token string) ([]domain.Task, error) {
	if f.taskList == nil {
		return nil, nil
	}
	return f.taskList(ctx, token)
}

func (f *fakeGameAPI) FinishTask(ctx context.Context, token string, taskID int, pwd string) error {
	if f.finishTask == nil {
		return nil
	}
	return f.finishTask(ctx, token, taskID, pwd)
}

func (f *fakeGameAPI) ReferWallet(ctx context.Context, token string) (domain.WalletState, error) {
	if f.referWallet == nil {
		return domain.WalletState{}, nil
	}
	return f.referWallet(ctx, token)
}

func (f *fakeGameAPI) CollectReferWallet(ctx context.Context, token string) error {
	if f.collectRefer == nil {
		return nil
	}
	return f.collectRefer(ctx, token)
}

func (f *fakeGameAPI) GangList(ctx context.Context, token string) ([]domain.GangInfo, error) {
	if f.gangList == nil {
		return nil, nil
	}
	return f.gangList(ctx, token)
}

func (f *fakeGameAPI) JoinGang(ctx context.Context, token string, gangID string) error {
	if f.joinGang == nil {
		return nil
	}
	return f.joinGang(ctx, token, gangID)
}

func (f *fakeGameAPI) ComboInfo(ctx context.Context, token string) (domain.ComboState, error) {
	if f.comboInfo == nil {
		return domain.ComboState{}, nil
	}
	return f.comboInfo(ctx, token)
}

func (f *fakeGameAPI) SubmitCombo(ctx context.Context, token string, answer [3]string) (bool, error) {
	if f.submitCombo == nil {
		return false, nil
	}
	return f.submitCombo(ctx, token, answer)
}

func (f *fakeGameAPI) BoxInfo(ctx context.Context, token string) (int, error) {
	if f.boxInfo == nil {
		return 0, nil
	}
	return f.boxInfo(ctx, token)
}

func (f *fakeGameAPI) OpenBox(ctx context.Context, token string) ([]domain.BoxReward, error) {
	if f.openBox == nil {
		return nil, nil
	}
	return f.openBox(ctx, token)
}

func (f *fakeGameAPI) SpinInfo(ctx context.Context, token string) (domain.SpinState, error) {
	if f.spinInfo == nil {
		return domain.SpinState{}, nil
	}
	return f.spinInfo(ctx, token)
}

func (f *fakeGameAPI) StartSpin(ctx context.Context, token string, count int) error {
	if f.startSpin == nil {
		return nil
	}
	return f.startSpin(ctx, token, count)
}

// credsFunc adapts a function to ports.CredentialSource.
type credsFunc func(ctx context.Context) (domain.Credentials, error)

func (fn credsFunc) Acquire(ctx context.Context) (domain.Credentials, error) {
	return fn(ctx)
}

func staticCreds(label domain.SessionLabel) credsFunc {
	return func(context.Context) (domain.Credentials, error) {
		return domain.Credentials{Label: label, ReferralID: "ref_test", InitData: "init"}, nil
	}
}

// memQuarantine is an in-memory ports.SessionQuarantine.
type memQuarantine struct {
	mu      sync.Mutex
	records []ports.QuarantineRecord
}

func (q *memQuarantine) Quarantine(_ context.Context, label domain.SessionLabel, reason string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.records = append(q.records, ports.QuarantineRecord{Label: label, Reason: reason, QuarantinedAt: time.Now()})
	return nil
}

func (q *memQuarantine) IsQuarantined(_ context.Context, label domain.SessionLabel) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range q.records {
		if r.Label == label {
			return true, nil
		}
	}
	return false, nil
}

func (q *memQuarantine) List(context.Context) ([]ports.QuarantineRecord, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.QuarantineRecord(nil), q.records...), nil
}

type memComboStore struct {
	answer  [3]string
	err     error
	cleared bool
}

func (s *memComboStore) Get() ([3]string, error) {
	if s.err != nil {
		return [3]string{}, s.err
	}
	return s.answer, nil
}

func (s *memComboStore) Clear() error {
	s.cleared = true
	return nil
}

type memTaskAnswers struct {
	codes     map[string]string
	incorrect []string
}

func (s *memTaskAnswers) Code(taskName string) (string, bool) {
	code, ok := s.codes[taskName]
	return code, ok
}

func (s *memTaskAnswers) MarkIncorrect(taskName string) error {
	s.incorrect = append(s.incorrect, taskName)
	return nil
}

func testSettings() config.Settings {
	return config.Settings{
		TapsPerBatch: config.Range{Min: 2, Max: 2},
		TapDelay:     config.Range{Min: 1, Max: 1},
		StatCeilings: map[domain.TapStatKey]int{
			domain.StatBonusChance: 3,
			domain.StatBonusRatio:  3,
			domain.StatEnergy:      3,
			domain.StatTap:         3,
			domain.StatRecovery:    3,
		},
		MaxCardPrice: 1000,
		CycleSleep:   config.Range{Min: 0, Max: 0},
		StartDelay:   config.Range{Min: 0, Max: 0},
		NightCheck:   config.Range{Min: 0, Max: 0},
	}
}

// newTestFarmer builds a farmer whose sleeps are instant and whose random
// draws are seeded.
func newTestFarmer(t *testing.T, cfg config.Settings, api ports.GameAPI, opts ...func(*Deps)) *Farmer {
	t.Helper()

	deps := Deps{
		Label:       "test",
		Settings:    cfg,
		API:         api,
		Credentials: staticCreds("test"),
		Rand:        rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	farmer, err := NewFarmer(deps)
	require.NoError(t, err)
	farmer.sleep = func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}
	return farmer
}
