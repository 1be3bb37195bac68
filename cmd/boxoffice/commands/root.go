package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/version"
)

// NewRootCommand creates the boxoffice command tree.
func NewRootCommand() *cobra.Command {
	global := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "boxoffice",
		Short: "Korean box-office aggregation engine",
		Long: `boxoffice fetches weekly KOBIS box-office results and breaks them down by
director, company, genre, rating, release age, rank movement and weekend share.

Commands:
  fetch      Store one week from KOBIS as a snapshot
  analyze    Print the breakdowns of one week
  snapshots  List stored snapshots
  serve      Serve the breakdowns over HTTP
  mcp        Serve the breakdowns as MCP tools`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&global.ConfigPath, "config", "c", "", "config file (default ./boxoffice.yaml)")
	flags.BoolVarP(&global.Verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&global.Quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(NewFetchCommand(global))
	rootCmd.AddCommand(NewAnalyzeCommand(global))
	rootCmd.AddCommand(NewSnapshotsCommand(global))
	rootCmd.AddCommand(NewServeCommand(global))
	rootCmd.AddCommand(NewMCPCommand(global))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "boxoffice %s\n", version.String())
		},
	}
}
