package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// flexInt tolerates the API's habit of sending numbers as strings (and of
// omitting fields entirely). Anything unparsable decodes to 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*f = flexInt(int(v))
	}
	return nil
}

type loginData struct {
	Token string `json:"token"`
}

type tapStatWire struct {
	Level        flexInt `json:"level"`
	Value        flexInt `json:"value"`
	NextCostCoin flexInt `json:"nextCostCoin"`
}

type collectInfoWire struct {
	CollectSeqNo flexInt `json:"collectSeqNo"`
}

type gameInfoData struct {
	GameInfo struct {
		Coin                flexInt `json:"coin"`
		Level               flexInt `json:"level"`
		TodayCollegeCoin    flexInt `json:"todayCollegeCoin"`
		TodayMaxCollegeCoin flexInt `json:"todayMaxCollegeCoin"`
		EnergySurplus       flexInt `json:"energySurplus"`
	} `json:"gameInfo"`
	TapInfo struct {
		Energy      tapStatWire     `json:"energy"`
		Recovery    tapStatWire     `json:"recovery"`
		Tap         tapStatWire     `json:"tap"`
		BonusChance tapStatWire     `json:"bonusChance"`
		BonusRatio  tapStatWire     `json:"bonusRatio"`
		CollectInfo collectInfoWire `json:"collectInfo"`
	} `json:"tapInfo"`
	MineInfo struct {
		MinePower       flexInt `json:"minePower"`
		MineOfflineCoin flexInt `json:"mineOfflineCoin"`
	} `json:"mineInfo"`
	PropInfo []struct {
		Source string `json:"source"`
	} `json:"propInfo"`
	UserInfo struct {
		Features []string `json:"features"`
	} `json:"userInfo"`
}

type collectCoinData struct {
	Coin flexInt `json:"coin"`
}

type mineListData struct {
	Lists []struct {
		MineID        flexInt `json:"mineId"`
		Level         flexInt `json:"level"`
		Status        flexInt `json:"status"`
		NextLevelCost flexInt `json:"nextLevelCost"`
		PerHourReward flexInt `json:"perHourReward"`
	} `json:"lists"`
}

type signListData struct {
	SignStatus flexInt `json:"signStatus"`
	Lists      []struct {
		DaysDesc string  `json:"daysDesc"`
		Status   flexInt `json:"status"`
		Normal   flexInt `json:"normal"`
	} `json:"lists"`
}

type taskListData struct {
	Lists []struct {
		ID               flexInt `json:"id"`
		Name             string  `json:"name"`
		RewardParty      string  `json:"rewardParty"`
		Type             string  `json:"type"`
		TaskType         string  `json:"taskType"`
		ClassifyName     string  `json:"classifyName"`
		JumpURL          string  `json:"jumpUrl"`
		IsFinish         flexInt `json:"isFinish"`
		Qualify          flexInt `json:"qualify"`
		InviteCount      flexInt `json:"InviteCount"`
		LimitInviteCount flexInt `json:"limitInviteCount"`
	} `json:"lists"`
}

type referWalletData struct {
	WaitCollectCoin flexInt `json:"waitCollectCoin"`
}

type gangListData struct {
	Lists []struct {
		GangID string  `json:"gangId"`
		Name   string  `json:"name"`
		Joined flexInt `json:"joined"`
	} `json:"lists"`
}

type comboInfoData struct {
	ResultNum flexInt `json:"resultNum"`
}

type comboResultData struct {
	Status flexInt `json:"status"`
}

type boxInfoData struct {
	FreeOpenNum flexInt `json:"freeOpenNum"`
}

// boxOpenResponse is the one endpoint without the uniform envelope: the
// reward listing comes back at the top level.
type boxOpenResponse struct {
	RewardLists []struct {
		Name string  `json:"name"`
		Num  flexInt `json:"num"`
	} `json:"rewardLists"`
}

type spinInfoData struct {
	StaminaNow flexInt `json:"staminaNow"`
}
