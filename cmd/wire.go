package cmd

import (
	"fmt"
	"os"

	browser "github.com/itzngga/fake-useragent"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bumsfarm/internal/adapters/answers"
	"bumsfarm/internal/adapters/api"
	"bumsfarm/internal/adapters/creds"
	tomlrepo "bumsfarm/internal/adapters/repo/toml"
	"bumsfarm/internal/adapters/telegram"
	"bumsfarm/internal/application"
	"bumsfarm/internal/config"
	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

type app struct {
	settings   config.Settings
	sessions   []domain.Credentials
	fleet      *application.Fleet
	quarantine ports.SessionQuarantine
	log        *zap.Logger
}

func wireApp() (*app, error) {
	// Optional; real deployments set BUMS_* in the environment directly.
	_ = godotenv.Load()

	logger := newLogger()

	settings, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	quarantineCfg := viper.New()
	quarantineCfg.Set("files.quarantine", settings.QuarantineFile)
	quarantine, err := tomlrepo.NewQuarantineRepository(quarantineCfg, ports.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("wire quarantine repository: %w", err)
	}

	sessions, err := creds.LoadSessions(settings.SessionsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	cards := answers.NewCardCatalog(settings.CardListFile)
	taskAnswers := answers.NewTaskAnswers(settings.TaskCodesFile)
	comboAnswers := answers.NewComboAnswers(settings.ComboFile)
	assist := telegram.NewAssist(logger)

	farmers := make([]*application.Farmer, 0, len(sessions))
	for _, session := range sessions {
		proxy, err := creds.NormalizeProxy(session.Proxy)
		if err != nil {
			// The farmer still starts; its credential source reports
			// the misconfiguration when the session is acquired.
			logger.Error("bad proxy for session",
				zap.String("session", string(session.Label)), zap.Error(err))
			proxy = ""
		}

		client := api.New(api.Options{
			BaseURL:   settings.BaseURL,
			UserAgent: browser.Chrome(),
			Proxy:     proxy,
			Logger:    logger,
		})

		farmer, err := application.NewFarmer(application.Deps{
			Label:        session.Label,
			Settings:     settings,
			API:          client,
			Credentials:  creds.NewFileSource(session, quarantine),
			Joiner:       assist,
			Renamer:      assist,
			TaskAnswers:  taskAnswers,
			ComboAnswers: comboAnswers,
			Cards:        cards,
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("wire farmer %s: %w", session.Label, err)
		}
		farmers = append(farmers, farmer)
	}

	return &app{
		settings:   settings,
		sessions:   sessions,
		fleet:      application.NewFleet(farmers, quarantine, logger),
		quarantine: quarantine,
		log:        logger,
	}, nil
}

func newLogger() *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}
