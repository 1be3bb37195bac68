package analysis

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// RatingImpactMetric compares average audience across rating labels.
type RatingImpactMetric struct {
	metrics.MetricMeta
}

// NewRatingImpactMetric creates the rating impact metric.
func NewRatingImpactMetric() *RatingImpactMetric {
	return &RatingImpactMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantRatingImpact),
			MetricDisplayName: "Rating Impact",
			MetricDescription: "Average audience per title for each rating label, counting only titles " +
				"with a non-zero audience. Ranked by average rather than total.",
			MetricType: metrics.TypeGrouped,
		},
	}
}

// Compute groups titles with an audience by watch grade.
func (m *RatingImpactMetric) Compute(input Input) Result {
	result := newResult(VariantRatingImpact, input.Records)
	result.DisplayName = m.DisplayName()

	acc := newAccumulator()

	for _, rec := range input.Records {
		if rec.AudienceCount <= 0 {
			continue
		}

		acc.add(rec.WatchGrade, rec.AudienceCount, rec.Name, rec.OpenDate)
	}

	groups := acc.collect()
	market := float64(result.MarketTotal)

	for i := range groups {
		g := &groups[i]
		g.AverageAudience = stats.Average(float64(g.TotalAudience), g.MemberCount)
		g.Share = stats.SafeShare(float64(g.TotalAudience), market)
		g.DerivedIndex = g.AverageAudience
	}

	result.Groups = rank.Rank(groups, groupIndex, rank.Descending, groupRank)

	return result
}
