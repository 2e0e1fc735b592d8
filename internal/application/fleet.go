package application

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bumsfarm/internal/domain"
	"bumsfarm/internal/ports"
)

// Fleet runs one farmer per identity, fully isolated: a fatal outcome in
// one loop quarantines that session and never disturbs the others.
type Fleet struct {
	farmers    []*Farmer
	quarantine ports.SessionQuarantine
	log        *zap.Logger
}

func NewFleet(farmers []*Farmer, quarantine ports.SessionQuarantine, logger *zap.Logger) *Fleet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fleet{farmers: farmers, quarantine: quarantine, log: logger}
}

// Run blocks until every farmer has exited. It only ends early when ctx is
// cancelled; individual farmer outcomes are absorbed here.
func (fl *Fleet) Run(ctx context.Context) error {
	group := new(errgroup.Group)

	for _, farmer := range fl.farmers {
		group.Go(func() error {
			fl.watch(ctx, farmer)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (fl *Fleet) watch(ctx context.Context, farmer *Farmer) {
	label := farmer.Label()
	err := farmer.Run(ctx)

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fl.log.Info("farmer stopped", zap.String("session", string(label)))

	case errors.Is(err, domain.ErrInvalidSession):
		fl.log.Error("session invalidated, quarantining", zap.String("session", string(label)))
		if fl.quarantine != nil {
			if qerr := fl.quarantine.Quarantine(context.WithoutCancel(ctx), label, err.Error()); qerr != nil {
				fl.log.Error("quarantining session failed", zap.String("session", string(label)), zap.Error(qerr))
			}
		}

	case errors.Is(err, domain.ErrProxyConfig):
		fl.log.Error("transport misconfigured, farmer aborted",
			zap.String("session", string(label)), zap.Error(err))

	default:
		fl.log.Error("farmer exited unexpectedly",
			zap.String("session", string(label)), zap.Error(err))
	}
}
