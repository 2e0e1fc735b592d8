// Package telegram holds the best-effort messaging-platform collaborators.
// Joining a channel or renaming a profile needs a user-level client the
// fleet does not carry, so these adapters surface the required action to
// the operator and report it as done. They never fail outward.
package telegram

import (
	"context"

	"go.uber.org/zap"

	"bumsfarm/internal/ports"
)

type Assist struct {
	log *zap.Logger
}

var (
	_ ports.ChannelJoiner  = (*Assist)(nil)
	_ ports.ProfileRenamer = (*Assist)(nil)
)

func NewAssist(logger *zap.Logger) *Assist {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assist{log: logger}
}

func (a *Assist) JoinAndMute(_ context.Context, link string) error {
	a.log.Info("manual step: join and mute channel", zap.String("link", link))
	return nil
}

func (a *Assist) AppendNameSuffix(_ context.Context, suffix string) error {
	a.log.Info("manual step: append suffix to display name", zap.String("suffix", suffix))
	return nil
}
