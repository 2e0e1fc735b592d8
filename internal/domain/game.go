package domain

// SessionLabel identifies one automated identity. It doubles as the log
// prefix and the quarantine key.
type SessionLabel string

// Credentials is what the messaging-platform collaborator hands back: the
// referral id the mini-app was opened with and the opaque web-app payload
// the game's login endpoint consumes.
type Credentials struct {
	Label      SessionLabel
	ReferralID string
	InitData   string
	Proxy      string
}

// TapStatKey names one of the five upgradable tap stats. The order of
// AllTapStats is the order the upgrade scan walks them in.
type TapStatKey string

const (
	StatBonusChance TapStatKey = "bonusChance"
	StatBonusRatio  TapStatKey = "bonusRatio"
	StatEnergy      TapStatKey = "energy"
	StatTap         TapStatKey = "tap"
	StatRecovery    TapStatKey = "recovery"
)

func AllTapStats() []TapStatKey {
	return []TapStatKey{StatBonusChance, StatBonusRatio, StatEnergy, StatTap, StatRecovery}
}

// TapStat is one stat's slice of the game state: current level, current
// value and the coin cost of the next level.
type TapStat struct {
	Level        int
	Value        int
	NextCostCoin int
}

// GameState is the per-cycle snapshot of the account. It is re-fetched
// after every mutating call; nothing derived from it survives a mutation.
type GameState struct {
	Coin              int
	Level             int
	MinePower         int
	MineOfflineCoin   int
	TodayCollegeCoin  int
	TodayMaxCollege   int
	EnergySurplus     int
	CollectSeqNo      int
	AutoClickDetected bool
	TapStats          map[TapStatKey]TapStat
	Features          []string
}

// HasFeature reports whether the account's enabled feature list contains
// the named feature (combo/lottery gating).
func (g GameState) HasFeature(name string) bool {
	for _, f := range g.Features {
		if f == name {
			return true
		}
	}
	return false
}

// TapState is the projection of GameState the tapping sub-routine works
// from. CollectSeqNo is a server-side sequence token: every successful
// submission advances it, so the whole projection must be re-fetched after
// each submit.
type TapState struct {
	Balance           int
	TapValue          int
	TodayCoin         int
	TodayCoinLimit    int
	LeftEnergy        int
	TotalEnergy       int
	Recovery          int
	BonusChance       int
	BonusRatio        int
	CollectSeqNo      int
	AutoClickDetected bool
}

// MineCard is one entry of the mine upgrade list. Status 1 means
// purchasable.
type MineCard struct {
	MineID        int
	Level         int
	Status        int
	NextLevelCost int
	PerHourReward int
}

const MineStatusPurchasable = 1

// SignInDay is one row of the daily check-in calendar.
type SignInDay struct {
	DaysDesc string
	Status   int
	Reward   int
}

// SignInState reports whether today's check-in is still open.
type SignInState struct {
	SignStatus int
	Days       []SignInDay
}

// NextUnclaimed returns the first day still open for claiming, if any.
func (s SignInState) NextUnclaimed() (SignInDay, bool) {
	if s.SignStatus != 0 {
		return SignInDay{}, false
	}
	for _, day := range s.Days {
		if day.Status == 0 {
			return day, true
		}
	}
	return SignInDay{}, false
}

// WalletState is the referral wallet balance awaiting collection.
type WalletState struct {
	Collectible int
}

// GangInfo is one joinable gang from the listing.
type GangInfo struct {
	GangID string
	Name   string
	Joined bool
}

// ComboState is the daily puzzle status: how many guesses remain today.
type ComboState struct {
	RemainingAttempts int
}

// SpinState is the slot stamina counter.
type SpinState struct {
	Stamina int
}

// BoxReward is one prize from opening a free box.
type BoxReward struct {
	Name   string
	Amount int
}

// CardInfo is static display data for a card id, resolved from the local
// reference catalog.
type CardInfo struct {
	Title       string
	Description string
}
