package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/mcp"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(global *GlobalOptions) *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the box-office analyses as tools that AI agents
can discover and invoke:
  - boxoffice_analyze: Run one or more analysis variants over a week
  - boxoffice_variants: List the analysis variants`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, observability.ModeMCP)
			if err != nil {
				return err
			}
			defer a.close()

			source, err := a.source(live, "")
			if err != nil {
				return err
			}

			family, sortKey := a.defaults()

			srv := mcp.NewServer(mcp.ServerDeps{
				Analyzer: a.service(source),
				Defaults: mcp.Defaults{Family: family, SortKey: sortKey, TopN: a.cfg.Analysis.TopN},
				Logger:   a.logger(),
				Metrics:  a.red,
				Tracer:   a.providers.Tracer,
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "fetch weeks from KOBIS instead of the snapshot store")

	return cmd
}
