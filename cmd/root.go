package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bumsfarm",
		Short:         "bumsfarm: automated session driver for the bums mini-game",
		Long:          "bumsfarm drives one session loop per configured identity against the bums game API: sign-in, taps, tasks, upgrades, gang, combo and spins, paced to look like a human.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newSessionsCmd(app),
	)

	return rootCmd
}
