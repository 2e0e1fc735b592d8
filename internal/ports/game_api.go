package ports

import (
	"context"

	"bumsfarm/internal/domain"
)

// GameAPI is every operation the session loop drives against the remote
// game. Implementations return domain.ErrUnavailable (possibly wrapped)
// when the call completed but the envelope was not a success; the loop
// treats any error as "no result this cycle".
type GameAPI interface {
	Login(ctx context.Context, referralID, initData string) (token string, err error)
	GameInfo(ctx context.Context, token string) (domain.GameState, error)
	TapInfo(ctx context.Context, token string) (domain.TapState, error)
	SubmitTaps(ctx context.Context, token string, amount, collectSeqNo int, hash string) (newBalance int, err error)
	UpgradeTapStat(ctx context.Context, token string, stat domain.TapStatKey) error
	MineList(ctx context.Context, token string) ([]domain.MineCard, error)
	UpgradeMine(ctx context.Context, token string, mineID int) error
	SignInfo(ctx context.Context, token string) (domain.SignInState, error)
	SignIn(ctx context.Context, token string) error
	TaskList(ctx context.Context, token string) ([]domain.Task, error)
	FinishTask(ctx context.Context, token string, taskID int, pwd string) error
	ReferWallet(ctx context.Context, token string) (domain.WalletState, error)
	CollectReferWallet(ctx context.Context, token string) error
	GangList(ctx context.Context, token string) ([]domain.GangInfo, error)
	JoinGang(ctx context.Context, token string, gangID string) error
	ComboInfo(ctx context.Context, token string) (domain.ComboState, error)
	SubmitCombo(ctx context.Context, token string, answer [3]string) (correct bool, err error)
	BoxInfo(ctx context.Context, token string) (freeBoxes int, err error)
	OpenBox(ctx context.Context, token string) ([]domain.BoxReward, error)
	SpinInfo(ctx context.Context, token string) (domain.SpinState, error)
	StartSpin(ctx context.Context, token string, count int) error
}
