package analysis

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// GenreTrendMetric computes each genre's share of the market.
type GenreTrendMetric struct {
	metrics.MetricMeta
}

// NewGenreTrendMetric creates the genre trend metric.
func NewGenreTrendMetric() *GenreTrendMetric {
	return &GenreTrendMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantGenreTrend),
			MetricDisplayName: "Genre Trend",
			MetricDescription: "Audience per genre and its percentage of the market total. A title counts " +
				"toward every genre it lists, so shares can sum to more than 100.",
			MetricType: metrics.TypeGrouped,
		},
	}
}

// Compute groups titles by genre.
func (m *GenreTrendMetric) Compute(input Input) Result {
	result := newResult(VariantGenreTrend, input.Records)
	result.DisplayName = m.DisplayName()

	acc := newAccumulator()

	for _, rec := range input.Records {
		seen := make(map[string]struct{}, len(rec.Genres))

		for _, genre := range rec.Genres {
			if _, dup := seen[genre]; dup {
				continue
			}

			seen[genre] = struct{}{}
			acc.add(genre, rec.AudienceCount, rec.Name, rec.OpenDate)
		}
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
