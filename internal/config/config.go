package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bumsfarm/internal/domain"
)

// Range is an inclusive [Min, Max] interval a jittered draw is taken from.
type Range struct {
	Min int
	Max int
}

func (r Range) Valid() bool {
	return r.Min >= 0 && r.Min <= r.Max
}

// Settings is the immutable configuration one farmer instance is
// constructed with. There is no process-wide settings singleton; every
// loop gets its own copy.
type Settings struct {
	BaseURL     string
	ReferralKey string

	SessionsFile   string
	CardListFile   string
	TaskCodesFile  string
	ComboFile      string
	QuarantineFile string

	AutoSignIn           bool
	AutoReferWallet      bool
	AutoBoxes            bool
	AutoTap              bool
	AutoTask             bool
	AutoJoinChannels     bool
	AutoNameChange       bool
	AutoUpgradeTapCards  bool
	AutoUpgradeMineCards bool
	AutoGang             bool
	AutoCombo            bool
	AutoSpin             bool

	TapsPerBatch Range
	TapDelay     Range

	StatCeilings map[domain.TapStatKey]int
	MaxCardPrice int

	GangName   string
	NameSuffix string

	CycleSleep Range
	StartDelay Range

	NightMode      bool
	NightStartHour int
	NightEndHour   int
	NightCheck     Range
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.bums.bot")
	v.SetDefault("api.referral_key", "ref_3CcrQyaN")

	v.SetDefault("files.sessions", "sessions.txt")
	v.SetDefault("files.card_list", "card-list.json")
	v.SetDefault("files.task_codes", "youtube-codes.json")
	v.SetDefault("files.combo", "combo.json")
	v.SetDefault("files.quarantine", "quarantine.toml")

	v.SetDefault("auto.sign_in", true)
	v.SetDefault("auto.refer_wallet", true)
	v.SetDefault("auto.boxes", true)
	v.SetDefault("auto.tap", true)
	v.SetDefault("auto.task", true)
	v.SetDefault("auto.join_channels", true)
	v.SetDefault("auto.name_change", true)
	v.SetDefault("auto.upgrade_tap_cards", true)
	v.SetDefault("auto.upgrade_mine_cards", true)
	v.SetDefault("auto.gang", true)
	v.SetDefault("auto.combo", true)
	v.SetDefault("auto.spin", true)

	v.SetDefault("taps.per_batch_min", 15)
	v.SetDefault("taps.per_batch_max", 30)
	v.SetDefault("taps.delay_min", 10)
	v.SetDefault("taps.delay_max", 20)

	v.SetDefault("upgrades.jackpot_level", 9)
	v.SetDefault("upgrades.crit_level", 8)
	v.SetDefault("upgrades.energy_level", 12)
	v.SetDefault("upgrades.tap_level", 12)
	v.SetDefault("upgrades.regen_level", 10)
	v.SetDefault("mine.max_card_price", 10000)

	v.SetDefault("gang.name", "")
	v.SetDefault("tasks.name_suffix", "\U0001F4E6")

	v.SetDefault("sleep.cycle_min", 2700)
	v.SetDefault("sleep.cycle_max", 4200)
	v.SetDefault("sleep.start_min", 5)
	v.SetDefault("sleep.start_max", 100)

	v.SetDefault("night.enabled", false)
	v.SetDefault("night.start_hour", 0)
	v.SetDefault("night.end_hour", 7)
	v.SetDefault("night.check_min", 3600)
	v.SetDefault("night.check_max", 7200)
}

// Load reads config.toml from the working directory (if present), applies
// BUMS_-prefixed environment overrides, and validates the result.
func Load(v *viper.Viper) (Settings, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BUMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	settings := Settings{
		BaseURL:     v.GetString("api.base_url"),
		ReferralKey: v.GetString("api.referral_key"),

		SessionsFile:   v.GetString("files.sessions"),
		CardListFile:   v.GetString("files.card_list"),
		TaskCodesFile:  v.GetString("files.task_codes"),
		ComboFile:      v.GetString("files.combo"),
		QuarantineFile: v.GetString("files.quarantine"),

		AutoSignIn:           v.GetBool("auto.sign_in"),
		AutoReferWallet:      v.GetBool("auto.refer_wallet"),
		AutoBoxes:            v.GetBool("auto.boxes"),
		AutoTap:              v.GetBool("auto.tap"),
		AutoTask:             v.GetBool("auto.task"),
		AutoJoinChannels:     v.GetBool("auto.join_channels"),
		AutoNameChange:       v.GetBool("auto.name_change"),
		AutoUpgradeTapCards:  v.GetBool("auto.upgrade_tap_cards"),
		AutoUpgradeMineCards: v.GetBool("auto.upgrade_mine_cards"),
		AutoGang:             v.GetBool("auto.gang"),
		AutoCombo:            v.GetBool("auto.combo"),
		AutoSpin:             v.GetBool("auto.spin"),

		TapsPerBatch: Range{Min: v.GetInt("taps.per_batch_min"), Max: v.GetInt("taps.per_batch_max")},
		TapDelay:     Range{Min: v.GetInt("taps.delay_min"), Max: v.GetInt("taps.delay_max")},

		StatCeilings: map[domain.TapStatKey]int{
			domain.StatBonusChance: v.GetInt("upgrades.jackpot_level"),
			domain.StatBonusRatio:  v.GetInt("upgrades.crit_level"),
			domain.StatEnergy:      v.GetInt("upgrades.energy_level"),
			domain.StatTap:         v.GetInt("upgrades.tap_level"),
			domain.StatRecovery:    v.GetInt("upgrades.regen_level"),
		},
		MaxCardPrice: v.GetInt("mine.max_card_price"),

		GangName:   v.GetString("gang.name"),
		NameSuffix: v.GetString("tasks.name_suffix"),

		CycleSleep: Range{Min: v.GetInt("sleep.cycle_min"), Max: v.GetInt("sleep.cycle_max")},
		StartDelay: Range{Min: v.GetInt("sleep.start_min"), Max: v.GetInt("sleep.start_max")},

		NightMode:      v.GetBool("night.enabled"),
		NightStartHour: v.GetInt("night.start_hour"),
		NightEndHour:   v.GetInt("night.end_hour"),
		NightCheck:     Range{Min: v.GetInt("night.check_min"), Max: v.GetInt("night.check_max")},
	}

	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) validate() error {
	ranges := map[string]Range{
		"taps.per_batch": s.TapsPerBatch,
		"taps.delay":     s.TapDelay,
		"sleep.cycle":    s.CycleSleep,
		"sleep.start":    s.StartDelay,
		"night.check":    s.NightCheck,
	}
	for name, r := range ranges {
		if !r.Valid() {
			return fmt.Errorf("invalid range for %s: [%d, %d]", name, r.Min, r.Max)
		}
	}
	if s.NightStartHour < 0 || s.NightStartHour > 23 || s.NightEndHour < 0 || s.NightEndHour > 23 {
		return fmt.Errorf("night window hours out of range: [%d, %d]", s.NightStartHour, s.NightEndHour)
	}
	if s.MaxCardPrice < 0 {
		return errors.New("mine.max_card_price must not be negative")
	}
	return nil
}
