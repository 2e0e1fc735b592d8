package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

var _ ports.GameAPI = (*Client)(nil)

// preAuthToken is the literal bearer value the login endpoint expects
// before a real token exists.
const preAuthToken = "false"

func (c *Client) Login(ctx context.Context, referralID, initData string) (string, error) {
	data, err := c.postWebForm(ctx, "/miniapps/api/user/telegram_auth", preAuthToken,
		formField{"invitationCode", referralID},
		formField{"initData", initData},
	)
	if err != nil {
		return "", err
	}

	var payload loginData
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode login data: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("%w: login returned no token", domain.ErrUnavailable)
	}
	return payload.Token, nil
}

func (c *Client) GameInfo(ctx context.Context, token string) (domain.GameState, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/user_game_level/getGameInfo", token)
	if err != nil {
		return domain.GameState{}, err
	}

	var payload gameInfoData
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.GameState{}, fmt.Errorf("decode game info: %w", err)
	}

	autoClick := false
	for _, prop := range payload.PropInfo {
		if prop.Source == "autoClick" {
			autoClick = true
			break
		}
	}

	return domain.GameState{
		Coin:              int(payload.GameInfo.Coin),
		Level:             int(payload.GameInfo.Level),
		MinePower:         int(payload.MineInfo.MinePower),
		MineOfflineCoin:   int(payload.MineInfo.MineOfflineCoin),
		TodayCollegeCoin:  int(payload.GameInfo.TodayCollegeCoin),
		TodayMaxCollege:   int(payload.GameInfo.TodayMaxCollegeCoin),
		EnergySurplus:     int(payload.GameInfo.EnergySurplus),
		CollectSeqNo:      int(payload.TapInfo.CollectInfo.CollectSeqNo),
		AutoClickDetected: autoClick,
		TapStats: map[domain.TapStatKey]domain.TapStat{
			domain.StatEnergy:      statFromWire(payload.TapInfo.Energy),
			domain.StatRecovery:    statFromWire(payload.TapInfo.Recovery),
			domain.StatTap:         statFromWire(payload.TapInfo.Tap),
			domain.StatBonusChance: statFromWire(payload.TapInfo.BonusChance),
			domain.StatBonusRatio:  statFromWire(payload.TapInfo.BonusRatio),
		},
		Features: payload.UserInfo.Features,
	}, nil
}

func statFromWire(w tapStatWire) domain.TapStat {
	return domain.TapStat{Level: int(w.Level), Value: int(w.Value), NextCostCoin: int(w.NextCostCoin)}
}

// TapInfo projects the tapping sub-routine's view out of a fresh game-state
// fetch. It must be called again after every successful SubmitTaps: the
// sequence token advances server-side.
func (c *Client) TapInfo(ctx context.Context, token string) (domain.TapState, error) {
	state, err := c.GameInfo(ctx, token)
	if err != nil {
		return domain.TapState{}, err
	}

	return domain.TapState{
		Balance:           state.Coin,
		TapValue:          state.TapStats[domain.StatTap].Value,
		TodayCoin:         state.TodayCollegeCoin,
		TodayCoinLimit:    state.TodayMaxCollege,
		LeftEnergy:        state.EnergySurplus,
		TotalEnergy:       state.TapStats[domain.StatEnergy].Value,
		Recovery:          state.TapStats[domain.StatRecovery].Value,
		BonusChance:       state.TapStats[domain.StatBonusChance].Value,
		BonusRatio:        state.TapStats[domain.StatBonusRatio].Value,
		CollectSeqNo:      state.CollectSeqNo,
		AutoClickDetected: state.AutoClickDetected,
	}, nil
}

func (c *Client) SubmitTaps(ctx context.Context, token string, amount, collectSeqNo int, hash string) (int, error) {
	data, err := c.postWebForm(ctx, "/miniapps/api/user_game/collectCoin", token,
		formField{"hashCode", hash},
		formField{"collectSeqNo", strconv.Itoa(collectSeqNo)},
		formField{"collectAmount", strconv.Itoa(amount)},
	)
	if err != nil {
		return 0, err
	}

	var payload collectCoinData
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decode collect data: %w", err)
	}
	return int(payload.Coin), nil
}

func (c *Client) UpgradeTapStat(ctx context.Context, token string, stat domain.TapStatKey) error {
	_, err := c.postWebForm(ctx, "/miniapps/api/user_game_level/upgradeLeve", token,
		formField{"type", string(stat)},
	)
	return err
}

func (c *Client) MineList(ctx context.Context, token string) ([]domain.MineCard, error) {
	data, err := c.postWebForm(ctx, "/miniapps/api/mine/getMineLists", token)
	if err != nil {
		return nil, err
	}

	var payload mineListData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode mine list: %w", err)
	}

	cards := make([]domain.MineCard, 0, len(payload.Lists))
	for _, entry := range payload.Lists {
		cards = append(cards, domain.MineCard{
			MineID:        int(entry.MineID),
			Level:         int(entry.Level),
			Status:        int(entry.Status),
			NextLevelCost: int(entry.NextLevelCost),
			PerHourReward: int(entry.PerHourReward),
		})
	}
	return cards, nil
}

func (c *Client) UpgradeMine(ctx context.Context, token string, mineID int) error {
	_, err := c.postWebForm(ctx, "/miniapps/api/mine/upgrade", token,
		formField{"mineId", strconv.Itoa(mineID)},
	)
	return err
}

func (c *Client) SignInfo(ctx context.Context, token string) (domain.SignInState, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/sign/getSignLists", token)
	if err != nil {
		return domain.SignInState{}, err
	}

	var payload signListData
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.SignInState{}, fmt.Errorf("decode sign list: %w", err)
	}

	state := domain.SignInState{SignStatus: int(payload.SignStatus)}
	for _, entry := range payload.Lists {
		state.Days = append(state.Days, domain.SignInDay{
			DaysDesc: entry.DaysDesc,
			Status:   int(entry.Status),
			Reward:   int(entry.Normal),
		})
	}
	return state, nil
}

func (c *Client) SignIn(ctx context.Context, token string) error {
	// The upstream client sends a single empty field named "" with the
	// literal value "undefined". The server insists on it.
	_, err := c.postWebForm(ctx, "/miniapps/api/sign/sign", token,
		formField{"", "undefined"},
	)
	return err
}

func (c *Client) TaskList(ctx context.Context, token string) ([]domain.Task, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/task/lists", token)
	if err != nil {
		return nil, err
	}

	var payload taskListData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}

	tasks := make([]domain.Task, 0, len(payload.Lists))
	for _, entry := range payload.Lists {
		tasks = append(tasks, domain.Task{
			ID:               int(entry.ID),
			Name:             entry.Name,
			RewardParty:      entry.RewardParty,
			Type:             entry.Type,
			TaskType:         domain.TaskType(entry.TaskType),
			ClassifyName:     entry.ClassifyName,
			JumpURL:          entry.JumpURL,
			IsFinish:         int(entry.IsFinish),
			Qualify:          int(entry.Qualify),
			InviteCount:      int(entry.InviteCount),
			LimitInviteCount: int(entry.LimitInviteCount),
		})
	}
	return tasks, nil
}

func (c *Client) FinishTask(ctx context.Context, token string, taskID int, pwd string) error {
	form := map[string]string{"id": strconv.Itoa(taskID)}
	if pwd != "" {
		form["pwd"] = pwd
	}
	_, err := c.postURLEncoded(ctx, "/miniapps/api/task/finish_task", token, form)
	return err
}

func (c *Client) ReferWallet(ctx context.Context, token string) (domain.WalletState, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/user_referral/wallet", token)
	if err != nil {
		return domain.WalletState{}, err
	}

	var payload referWalletData
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.WalletState{}, fmt.Errorf("decode refer wallet: %w", err)
	}
	return domain.WalletState{Collectible: int(payload.WaitCollectCoin)}, nil
}

func (c *Client) CollectReferWallet(ctx context.Context, token string) error {
	_, err := c.postWebForm(ctx, "/miniapps/api/user_referral/collect", token)
	return err
}

func (c *Client) GangList(ctx context.Context, token string) ([]domain.GangInfo, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/gang/gang_lists", token)
	if err != nil {
		return nil, err
	}

	var payload gangListData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode gang list: %w", err)
	}

	gangs := make([]domain.GangInfo, 0, len(payload.Lists))
	for _, entry := range payload.Lists {
		gangs = append(gangs, domain.GangInfo{
			GangID: entry.GangID,
			Name:   entry.Name,
			Joined: entry.Joined != 0,
		})
	}
	return gangs, nil
}

func (c *Client) JoinGang(ctx context.Context, token string, gangID string) error {
	_, err := c.postURLEncoded(ctx, "/miniapps/api/gang/gang_join", token, map[string]string{"name": gangID})
	return err
}

// ComboInfo deviates from the uniform contract: besides the envelope the
// remaining-attempt counter must be positive, otherwise there is nothing
// the combo sub-routine can do today.
func (c *Client) ComboInfo(ctx context.Context, token string) (domain.ComboState, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/mine_active/getMineAcctivityInfo", token)
	if err != nil {
		return domain.ComboState{}, err
	}

	var payload comboInfoData
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.ComboState{}, fmt.Errorf("decode combo info: %w", err)
	}
	if payload.ResultNum <= 0 {
		return domain.ComboState{}, fmt.Errorf("%w: no combo attempts left", domain.ErrUnavailable)
	}
	return domain.ComboState{RemainingAttempts: int(payload.ResultNum)}, nil
}

func (c *Client) SubmitCombo(ctx context.Context, token string, answer [3]string) (bool, error) {
	data, err := c.postURLEncoded(ctx, "/miniapps/api/mine_active/gameResult", token, map[string]string{
		"cardIdStr": strings.Join(answer[:], ","),
	})
	if err != nil {
		return false, err
	}

	var payload comboResultData
	if err := json.Unmarshal(data, &payload); err != nil {
		return false, fmt.Errorf("decode combo result: %w", err)
	}
	return payload.Status == 0, nil
}

func (c *Client) BoxInfo(ctx context.Context, token string) (int, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/prop_shop/Lists", token)
	if err != nil {
		return 0, err
	}

	var payload boxInfoData
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decode box info: %w", err)
	}
	return int(payload.FreeOpenNum), nil
}

// OpenBox is the envelope exception: the reward listing comes back at the
// top level and success means a non-empty list.
func (c *Client) OpenBox(ctx context.Context, token string) ([]domain.BoxReward, error) {
	body, err := c.do(ctx, http.MethodPost, "/miniapps/api/prop_shop/OpenBox", token, nil)
	if err != nil {
		return nil, err
	}

	var payload boxOpenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode box rewards: %w", err)
	}
	if len(payload.RewardLists) == 0 {
		return nil, fmt.Errorf("%w: box open returned no rewards", domain.ErrUnavailable)
	}

	rewards := make([]domain.BoxReward, 0, len(payload.RewardLists))
	for _, entry := range payload.RewardLists {
		rewards = append(rewards, domain.BoxReward{Name: entry.Name, Amount: int(entry.Num)})
	}
	return rewards, nil
}

func (c *Client) SpinInfo(ctx context.Context, token string) (domain.SpinState, error) {
	data, err := c.getEnvelope(ctx, "/miniapps/api/game_slot/stamina", token)
	if err != nil {
		return domain.SpinState{}, err
	}

	var payload spinInfoData
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.SpinState{}, fmt.Errorf("decode spin info: %w", err)
	}
	return domain.SpinState{Stamina: int(payload.StaminaNow)}, nil
}

func (c *Client) StartSpin(ctx context.Context, token string, count int) error {
	_, err := c.postWebForm(ctx, "/miniapps/api/game_slot/start", token,
		formField{"count", strconv.Itoa(count)},
	)
	return err
}
