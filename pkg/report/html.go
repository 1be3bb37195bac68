package report

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/plotpage"
)

// BuildPage lays out one ranked bar chart per result, plus a share ring for
// the genre and title-age breakdowns.
func BuildPage(rep *boxoffice.Report, theme plotpage.Theme) *plotpage.Page {
	title := "Box Office " + rep.Week
	if rep.ShowRange != "" {
		title = "Box Office " + rep.ShowRange
	}

	page := plotpage.NewPage(title, theme)

	for _, result := range rep.Results {
		heading := resultHeading(result)

		page.Add(plotpage.BuildHBarChart(theme, heading, rep.ShowRange, indexName(result), indexPoints(result)))

		if result.Variant == analysis.VariantGenreTrend || result.Variant == analysis.VariantTitleAge {
			page.Add(plotpage.BuildPieChart(theme, result.DisplayName+" share", "audience", audiencePoints(result)))
		}
	}

	return page
}

func indexPoints(r analysis.Result) []plotpage.Point {
	points := make([]plotpage.Point, 0, r.Len())

	for _, g := range r.Groups {
		points = append(points, plotpage.Point{Label: g.Key, Value: g.DerivedIndex})
	}

	for _, t := range r.Titles {
		points = append(points, plotpage.Point{Label: t.Title, Value: t.DerivedIndex})
	}

	return points
}

func audiencePoints(r analysis.Result) []plotpage.Point {
	points := make([]plotpage.Point, 0, len(r.Groups))

	for _, g := range r.Groups {
		points = append(points, plotpage.Point{Label: g.Key, Value: float64(g.TotalAudience)})
	}

	return points
}

func indexName(r analysis.Result) string {
	switch r.Variant {
	case analysis.VariantEntityContribution:
		switch r.SortKey {
		case analysis.SortEfficiency:
			return "efficiency"
		case analysis.SortStability:
			return "stability"
		case analysis.SortTotal:
			return "audience"
		default:
			return "audience"
		}
	case analysis.VariantRatingImpact:
		return "average audience"
	case analysis.VariantRankStability:
		return "rank change"
	case analysis.VariantWeekendDependency:
		return "weekend share %"
	default:
		return "audience"
	}
}
