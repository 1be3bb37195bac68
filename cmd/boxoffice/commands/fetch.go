package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand(global *GlobalOptions) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one week from KOBIS into the snapshot store",
		Long: `Fetch downloads the weekly box-office list of one week, the movie detail of
every listed title and the seven daily lists, then stores them as a snapshot
that analyze and serve read without calling KOBIS again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDateFlag("week", week)
			if err != nil {
				return err
			}

			a, err := newApp(global, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer a.close()

			client, err := a.kobisClient()
			if err != nil {
				return err
			}

			snap, err := boxoffice.NewLiveSource(client, a.store(), a.logger()).Fetch(cmd.Context(), day)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "fetched %d titles for week %s (snapshot %s)\n",
				len(snap.Titles), snap.Week, snap.RunID)

			return err
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "any day of the week to fetch (default last week)")

	return cmd
}
