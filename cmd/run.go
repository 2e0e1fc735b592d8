package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the session loop for every configured identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(app.sessions) == 0 {
				return fmt.Errorf("no sessions configured in %s", app.settings.SessionsFile)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.log.Info("starting fleet", zap.Int("identities", len(app.sessions)))

			err := app.fleet.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			app.log.Info("fleet stopped")
			return nil
		},
	}
}
