package analysis

import (
	"time"

	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// Title-age cohorts.
const (
	CohortNewRelease = "new release"
	CohortMidTerm    = "mid-term"
	CohortVeteran    = "veteran"
)

// Cohort boundaries in days since opening, inclusive.
const (
	newReleaseMaxDays = 7
	midTermMaxDays    = 28
)

const hoursPerDay = 24

// CohortFor classifies a title by days elapsed since opening.
func CohortFor(daysSinceOpen int) string {
	switch {
	case daysSinceOpen <= newReleaseMaxDays:
		return CohortNewRelease
	case daysSinceOpen <= midTermMaxDays:
		return CohortMidTerm
	default:
		return CohortVeteran
	}
}

// DaysSinceOpen returns the calendar days between a YYYYMMDD open date and
// the reference date. ok is false for the sentinel or an unparseable date.
func DaysSinceOpen(openDate string, reference time.Time) (days int, ok bool) {
	if openDate == movie.UnknownOpenDate {
		return 0, false
	}

	opened, err := time.Parse(movie.OpenDateLayout, openDate)
	if err != nil {
		return 0, false
	}

	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)

	return int(ref.Sub(opened).Hours() / hoursPerDay), true
}

// TitleAgeMetric splits the market by how long titles have been showing.
type TitleAgeMetric struct {
	metrics.MetricMeta
}

// NewTitleAgeMetric creates the title-age cohort metric.
func NewTitleAgeMetric() *TitleAgeMetric {
	return &TitleAgeMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantTitleAge),
			MetricDisplayName: "Title-Age Cohort",
			MetricDescription: "Market share of new releases (up to 7 days since opening), mid-term titles " +
				"(8 to 28 days) and veterans (more than 28 days). Titles without an audience or a known " +
				"open date are left out.",
			MetricType: metrics.TypeGrouped,
		},
	}
}

// Compute groups titles by cohort relative to the reference date.
func (m *TitleAgeMetric) Compute(input Input) Result {
	result := newResult(VariantTitleAge, input.Records)
	result.DisplayName = m.DisplayName()

	reference := input.Params.ReferenceDate
	if reference.IsZero() {
		return result
	}

	result.ReferenceDate = reference.Format(movie.OpenDateLayout)

	acc := newAccumulator()

	for _, rec := range input.Records {
		if rec.AudienceCount <= 0 || !rec.HasKnownOpenDate() {
			continue
		}

		days, ok := DaysSinceOpen(rec.OpenDate, reference)
		if !ok {
			continue
		}

		acc.add(CohortFor(days), rec.AudienceCount, rec.Name, rec.OpenDate)
	}

	groups := acc.collect()
	market := float64(result.MarketTotal)

	for i := range groups {
		g := &groups[i]
		g.Share = stats.SafeShare(float64(g.TotalAudience), market)
		g.AverageAudience = stats.Average(float64(g.TotalAudience), g.MemberCount)
		g.DerivedIndex = float64(g.TotalAudience)
	}

	result.Groups = rank.Rank(groups, groupIndex, rank.Descending, groupRank)

	return result
}
