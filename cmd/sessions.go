package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bumsfarm/internal/domain"
)

func newSessionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List configured identities and their quarantine state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.quarantine.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list quarantine: %w", err)
			}

			quarantined := make(map[domain.SessionLabel]string, len(records))
			for _, record := range records {
				when := ""
				if !record.QuarantinedAt.IsZero() {
					when = record.QuarantinedAt.Format(time.RFC3339)
				}
				quarantined[record.Label] = when
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tPROXY\tSTATUS")
			for _, session := range app.sessions {
				status := "active"
				if when, ok := quarantined[session.Label]; ok {
					status = "quarantined"
					if when != "" {
						status += " since " + when
					}
				}
				proxy := session.Proxy
				if proxy == "" {
					proxy = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", session.Label, proxy, status)
			}
			return w.Flush()
		},
	}
}
