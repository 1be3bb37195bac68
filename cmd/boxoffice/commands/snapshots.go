package commands

import (
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// NewSnapshotsCommand creates the snapshots command.
func NewSnapshotsCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "snapshots",
		Short:         "List stored snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, observability.ModeCLI)
			if err != nil {
				return err
			}
			defer a.close()

			store := a.store()

			paths, err := store.List()
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Week", "Show range", "Fetched", "Titles", "File"})

			listed := 0

			for _, p := range paths {
				snap, loadErr := store.Load(p)
				if loadErr != nil {
					a.logger().WarnContext(cmd.Context(), "skipping unreadable snapshot", "path", p, "error", loadErr)

					continue
				}

				tw.AppendRow(table.Row{
					snap.Week,
					snap.ShowRange,
					humanize.Time(snap.FetchedAt),
					len(snap.Titles),
					filepath.Base(p),
				})

				listed++
			}

			tw.AppendFooter(table.Row{"", "", "", listed, ""})
			tw.Render()

			return nil
		},
	}
}
