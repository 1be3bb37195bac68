package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/plotpage"
)

// Flag errors.
var (
	ErrInvalidDate      = errors.New("date must be YYYYMMDD or YYYY-MM-DD")
	ErrLiveWithSnapshot = errors.New("--live and --snapshot are mutually exclusive")
)

// topFromConfig marks the --top default: use analysis.top_n.
const topFromConfig = -1

// AnalyzeCommand holds the flags of the analyze command.
type AnalyzeCommand struct {
	global *GlobalOptions

	variants  []string
	family    string
	sortKey   string
	top       int
	week      string
	reference string
	snapshot  string
	live      bool
	format    string
	output    string
	noColor   bool
	dark      bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(global *GlobalOptions) *cobra.Command {
	ac := &AnalyzeCommand{global: global}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one week of box-office results",
		Long: `Analyze loads a week of KOBIS results, from the snapshot store or live,
normalizes every title and prints the requested breakdowns.

Variants:
  entity-contribution  audience per director, company or distributor
  genre-trend          audience share per genre
  rating-impact        average audience per watch grade
  title-age            audience per release-age cohort
  rank-stability       titles by rank movement
  weekend-dependency   titles by weekend share of daily audience`,
		Example: `  boxoffice analyze --week 20240327 --variant entity-contribution --family company
  boxoffice analyze --live --format html --output week.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          ac.run,
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&ac.variants, "variant", nil, "variants to compute, comma separated or \"all\" (default all)")
	flags.StringVar(&ac.family, "family", "", "entity-contribution family: director, company or distributor")
	flags.StringVar(&ac.sortKey, "sort", "", "entity-contribution ranking: total, efficiency or stability")
	flags.IntVar(&ac.top, "top", topFromConfig, "rows per result, 0 keeps every row (default analysis.top_n)")
	flags.StringVar(&ac.week, "week", "", "any day of the week to analyze (default latest snapshot or last week)")
	flags.StringVar(&ac.reference, "reference", "", "title-age reference date (default last day of the week)")
	flags.StringVar(&ac.snapshot, "snapshot", "", "analyze this snapshot file")
	flags.BoolVar(&ac.live, "live", false, "fetch the week from KOBIS and store a snapshot")
	flags.StringVarP(&ac.format, "format", "f", string(report.FormatText), "output format: text, json, yaml or html")
	flags.StringVarP(&ac.output, "output", "o", "", "write to this file instead of stdout")
	flags.BoolVar(&ac.noColor, "no-color", false, "disable colored text output")
	flags.BoolVar(&ac.dark, "dark", false, "use the dark chart theme for html output")

	return cmd
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, _ []string) error {
	if ac.live && ac.snapshot != "" {
		return ErrLiveWithSnapshot
	}

	format, err := report.ParseFormat(ac.format)
	if err != nil {
		return err
	}

	a, err := newApp(ac.global, observability.ModeCLI)
	if err != nil {
		return err
	}
	defer a.close()

	req, err := ac.request(a)
	if err != nil {
		return err
	}

	source, err := a.source(ac.live, ac.snapshot)
	if err != nil {
		return err
	}

	rep, err := a.service(source).Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}

	return ac.write(cmd.OutOrStdout(), rep, format)
}

func (ac *AnalyzeCommand) request(a *app) (boxoffice.Request, error) {
	family, sortKey := a.defaults()

	req := boxoffice.Request{
		Params: analysis.Params{Family: family, SortKey: sortKey},
	}

	variants, err := parseVariantList(ac.variants)
	if err != nil {
		return req, err
	}

	req.Variants = variants

	if ac.family != "" {
		req.Params.Family, err = movie.ParseFamily(ac.family)
		if err != nil {
			return req, err
		}
	}

	if ac.sortKey != "" {
		req.Params.SortKey, err = analysis.ParseSortKey(ac.sortKey)
		if err != nil {
			return req, err
		}
	}

	switch {
	case ac.top == 0:
		req.TopN = -1
	case ac.top > 0:
		req.TopN = ac.top
	}

	req.Week, err = parseDateFlag("week", ac.week)
	if err != nil {
		return req, err
	}

	req.Params.ReferenceDate, err = parseDateFlag("reference", ac.reference)
	if err != nil {
		return req, err
	}

	return req, nil
}

func (ac *AnalyzeCommand) write(stdout io.Writer, rep *boxoffice.Report, format report.Format) error {
	opts := report.DefaultOptions()

	if ac.dark {
		opts.Theme = plotpage.ThemeDark
	}

	if ac.noColor || ac.output != "" {
		opts.Terminal.NoColor = true
	}

	if ac.output == "" {
		return report.Render(stdout, rep, format, opts)
	}

	f, err := os.Create(ac.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	renderErr := report.Render(f, rep, format, opts)
	closeErr := f.Close()

	return errors.Join(renderErr, closeErr)
}

// parseVariantList accepts repeated or comma separated names. "all" or no
// names selects every variant.
func parseVariantList(names []string) ([]analysis.Variant, error) {
	variants := make([]analysis.Variant, 0, len(names))

	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return nil, nil
		}

		variant, err := analysis.ParseVariant(name)
		if err != nil {
			return nil, err
		}

		variants = append(variants, variant)
	}

	return variants, nil
}

func parseDateFlag(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	normalized := movie.ParseOpenDate(raw)
	if normalized == movie.UnknownOpenDate {
		return time.Time{}, fmt.Errorf("--%s: %w: %q", name, ErrInvalidDate, raw)
	}

	return movie.ParseDate(normalized)
}
