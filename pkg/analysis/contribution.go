package analysis

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// Input is what every variant metric consumes.
type Input struct {
	Records []movie.Record
	Params  Params
}

// EntityContributionMetric groups director or company credits by entity name.
type EntityContributionMetric struct {
	metrics.MetricMeta
}

// NewEntityContributionMetric creates the entity contribution metric.
func NewEntityContributionMetric() *EntityContributionMetric {
	return &EntityContributionMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantEntityContribution),
			MetricDisplayName: "Entity Contribution",
			MetricDescription: "Audience contributed by each director, company or distributor. A title with " +
				"several credited entities counts once per entity. Ranked by total audience, by efficiency " +
				"(average per title with audience) or by stability (average per credit times hit rate).",
			MetricType: metrics.TypeGrouped,
		},
	}
}

// Compute aggregates credits of the selected family.
func (m *EntityContributionMetric) Compute(input Input) Result {
	params := input.Params.withDefaults()

	result := newResult(VariantEntityContribution, input.Records)
	result.DisplayName = m.DisplayName()
	result.Family = params.Family
	result.SortKey = params.SortKey

	acc := newAccumulator()

	for _, rel := range movie.Relations(input.Records, params.Family) {
		acc.add(rel.Entity, rel.Audience, rel.Title, rel.OpenDate)
	}

	groups := acc.collect()

	for i := range groups {
		g := &groups[i]
		total := float64(g.TotalAudience)

		g.AverageAudience = stats.Average(total, g.MemberCount)
		g.EfficiencyIndex = stats.Average(total, g.NonZeroMemberCount)
		g.StabilityIndex = stats.StabilityIndex(total, g.MemberCount, g.NonZeroMemberCount)
		g.DerivedIndex = contributionIndex(g, params.SortKey)
	}

	result.Groups = rank.Rank(groups, groupIndex, rank.Descending, groupRank)

	return result
}

func contributionIndex(g *Group, key SortKey) float64 {
	switch key {
	case SortEfficiency:
		return g.EfficiencyIndex
	case SortStability:
		return g.StabilityIndex
	case SortTotal:
		return float64(g.TotalAudience)
	default:
		return float64(g.TotalAudience)
	}
}
