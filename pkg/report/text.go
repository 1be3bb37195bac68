package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/terminal"
)

const (
	maxLabelRunes  = 32
	shareBarWidth  = 12
	percentDivisor = 100
	decimalDigits  = 1
	msgNoRows      = "No qualifying rows."
)

type groupColumn struct {
	header string
	value  func(analysis.Group) string
	right  bool
}

type titleColumn struct {
	header string
	value  func(analysis.TitleRow) string
	right  bool
}

func renderText(w io.Writer, rep *boxoffice.Report, cfg terminal.Config) error {
	var sb strings.Builder

	right := rep.ShowRange
	if right == "" {
		right = rep.Week
	}

	sb.WriteString(terminal.DrawHeader("BOX OFFICE", right, cfg.Width))
	sb.WriteString("\n")
	sb.WriteString(formatSummary(rep.Summary))
	sb.WriteString("\n")

	for _, result := range rep.Results {
		sb.WriteString("\n")
		sb.WriteString(cfg.Colorize(resultHeading(result), terminal.ColorBold))
		sb.WriteString("\n")
		sb.WriteString(terminal.DrawSeparator(min(cfg.Width, terminal.MaxWidth)))
		sb.WriteString("\n")

		if result.Empty() {
			sb.WriteString(cfg.Colorize(msgNoRows, terminal.ColorGray))
			sb.WriteString("\n")

			continue
		}

		if result.Variant.Grouped() {
			sb.WriteString(groupTable(result, cfg))
		} else {
			sb.WriteString(titleTable(result, cfg))
		}

		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func formatSummary(s analysis.Summary) string {
	return fmt.Sprintf("Titles: %d (dropped %d, with audience %d)  Market: %s  Mean: %s  Median: %s  Top: %s",
		s.Titles, s.Dropped, s.WithAudience,
		humanize.Comma(s.MarketTotal),
		formatFloat(s.MeanAudience),
		formatFloat(s.MedianAudience),
		humanize.Comma(s.TopAudience))
}

func resultHeading(r analysis.Result) string {
	heading := r.DisplayName
	if heading == "" {
		heading = string(r.Variant)
	}

	var details []string

	if r.Family != "" {
		details = append(details, "family "+string(r.Family))
	}

	if r.SortKey != "" {
		details = append(details, "sort "+string(r.SortKey))
	}

	if r.ReferenceDate != "" {
		details = append(details, "reference "+r.ReferenceDate)
	}

	if len(details) == 0 {
		return heading
	}

	return heading + " (" + strings.Join(details, ", ") + ")"
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func groupTable(r analysis.Result, cfg terminal.Config) string {
	cols := groupColumns(r)
	tbl := newTable()

	header := table.Row{"#"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}

	for i, col := range cols {
		header = append(header, col.header)

		if col.right {
			configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
		}
	}

	tbl.AppendHeader(header)
	tbl.SetColumnConfigs(configs)

	for _, g := range r.Groups {
		row := table.Row{cfg.Colorize(strconv.Itoa(g.Rank), terminal.ColorForRank(g.Rank))}
		for _, col := range cols {
			row = append(row, col.value(g))
		}

		tbl.AppendRow(row)
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d groups, market %s", len(r.Groups), humanize.Comma(r.MarketTotal))})

	return tbl.Render()
}

func titleTable(r analysis.Result, cfg terminal.Config) string {
	cols := titleColumns(r)
	tbl := newTable()

	header := table.Row{"#"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}

	for i, col := range cols {
		header = append(header, col.header)

		if col.right {
			configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
		}
	}

	tbl.AppendHeader(header)
	tbl.SetColumnConfigs(configs)

	for _, row := range r.Titles {
		out := table.Row{cfg.Colorize(strconv.Itoa(row.Rank), terminal.ColorForRank(row.Rank))}
		for _, col := range cols {
			out = append(out, col.value(row))
		}

		tbl.AppendRow(out)
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d titles", len(r.Titles))})

	return tbl.Render()
}

func groupColumns(r analysis.Result) []groupColumn {
	key := groupColumn{header: keyHeader(r), value: func(g analysis.Group) string {
		return terminal.TruncateWithEllipsis(g.Key, maxLabelRunes)
	}}
	audience := groupColumn{header: "Audience", right: true, value: func(g analysis.Group) string {
		return humanize.Comma(g.TotalAudience)
	}}
	titles := groupColumn{header: "Titles", right: true, value: func(g analysis.Group) string {
		return strconv.Itoa(g.MemberCount)
	}}

	switch r.Variant {
	case analysis.VariantEntityContribution:
		return []groupColumn{
			key, audience, titles,
			{header: "With audience", right: true, value: func(g analysis.Group) string {
				return strconv.Itoa(g.NonZeroMemberCount)
			}},
			{header: "Average", right: true, value: func(g analysis.Group) string { return formatFloat(g.AverageAudience) }},
			{header: "Efficiency", right: true, value: func(g analysis.Group) string { return formatFloat(g.EfficiencyIndex) }},
			{header: "Stability", right: true, value: func(g analysis.Group) string { return formatFloat(g.StabilityIndex) }},
		}
	case analysis.VariantRatingImpact:
		return []groupColumn{
			key, audience, titles,
			{header: "Average", right: true, value: func(g analysis.Group) string { return formatFloat(g.AverageAudience) }},
		}
	default:
		return []groupColumn{
			key, audience, titles,
			{header: "Share", value: func(g analysis.Group) string { return formatShare(g.Share) }},
		}
	}
}

func titleColumns(r analysis.Result) []titleColumn {
	title := titleColumn{header: "Title", value: func(t analysis.TitleRow) string {
		return terminal.TruncateWithEllipsis(t.Title, maxLabelRunes)
	}}

	if r.Variant == analysis.VariantWeekendDependency {
		return []titleColumn{
			title,
			{header: "Weekday", right: true, value: func(t analysis.TitleRow) string { return humanize.Comma(t.WeekdayAudience) }},
			{header: "Weekend", right: true, value: func(t analysis.TitleRow) string { return humanize.Comma(t.WeekendAudience) }},
			{header: "Week", right: true, value: func(t analysis.TitleRow) string { return humanize.Comma(t.WeeklyAudience) }},
			{header: "Weekend share", value: func(t analysis.TitleRow) string { return formatShare(t.DependencyRatio) }},
		}
	}

	return []titleColumn{
		title,
		{header: "Open", value: func(t analysis.TitleRow) string { return formatOpenDate(t.OpenDate) }},
		{header: "Audience", right: true, value: func(t analysis.TitleRow) string { return humanize.Comma(t.Audience) }},
		{header: "Rank change", right: true, value: func(t analysis.TitleRow) string { return formatRankChange(t.RankChange) }},
	}
}

func keyHeader(r analysis.Result) string {
	switch r.Variant {
	case analysis.VariantEntityContribution:
		return capitalize(string(r.Family))
	case analysis.VariantGenreTrend:
		return "Genre"
	case analysis.VariantRatingImpact:
		return "Rating"
	case analysis.VariantTitleAge:
		return "Cohort"
	default:
		return "Group"
	}
}

func capitalize(s string) string {
	if s == "" {
		return "Entity"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func formatFloat(v float64) string {
	return humanize.CommafWithDigits(v, decimalDigits)
}

func formatShare(pct float64) string {
	return terminal.DrawProgressBar(pct/percentDivisor, shareBarWidth) + " " +
		strconv.FormatFloat(pct, 'f', decimalDigits, 64) + "%"
}

func formatRankChange(change int) string {
	if change > 0 {
		return "+" + strconv.Itoa(change)
	}

	return strconv.Itoa(change)
}

func formatOpenDate(openDate string) string {
	if openDate == movie.UnknownOpenDate || len(openDate) != len(movie.OpenDateLayout) {
		return "-"
	}

	return openDate[:4] + "-" + openDate[4:6] + "-" + openDate[6:]
}
