package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the build; "dev" for local builds.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bumsfarm version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bumsfarm "+version)
		},
	}
}
