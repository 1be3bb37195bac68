package analysis

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// RankStabilityMetric orders titles by how little their list rank moved.
type RankStabilityMetric struct {
	metrics.MetricMeta
}

// NewRankStabilityMetric creates the rank stability metric.
func NewRankStabilityMetric() *RankStabilityMetric {
	return &RankStabilityMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantRankStability),
			MetricDisplayName: "Rank Stability",
			MetricDescription: "Titles ordered by the magnitude of their rank change against the previous " +
				"period, smallest first. New entries have no comparable rank and are left out.",
			MetricType: metrics.TypePerTitle,
		},
	}
}

// Compute ranks titles by absolute rank change, ascending.
func (m *RankStabilityMetric) Compute(input Input) Result {
	result := newResult(VariantRankStability, input.Records)
	result.DisplayName = m.DisplayName()

	rows := make([]TitleRow, 0, len(input.Records))

	for _, rec := range input.Records {
		if rec.RankChange >= movie.NewEntryRankChange || rec.RankChange <= -movie.NewEntryRankChange {
			continue
		}

		change := abs(rec.RankChange)

		rows = append(rows, TitleRow{
			Title:         rec.Name,
			OpenDate:      rec.OpenDate,
			Audience:      rec.AudienceCount,
			RankChange:    rec.RankChange,
			AbsRankChange: change,
			DerivedIndex:  float64(change),
		})
	}

	result.Titles = rank.Rank(rows, titleIndex, rank.Ascending, titleRank)

	return result
}

// WeekendDependencyMetric measures how much of a title's week came on the
// weekend.
type WeekendDependencyMetric struct {
	metrics.MetricMeta
}

// NewWeekendDependencyMetric creates the weekend dependency metric.
func NewWeekendDependencyMetric() *WeekendDependencyMetric {
	return &WeekendDependencyMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        string(VariantWeekendDependency),
			MetricDisplayName: "Weekend Dependency",
			MetricDescription: "Saturday and Sunday attendance as a percentage of the title's attendance " +
				"across every reported day of the week. Titles without daily figures are left out.",
			MetricType: metrics.TypePerTitle,
		},
	}
}

// Compute ranks titles by weekend dependency ratio, descending.
func (m *WeekendDependencyMetric) Compute(input Input) Result {
	result := newResult(VariantWeekendDependency, input.Records)
	result.DisplayName = m.DisplayName()

	rows := make([]TitleRow, 0, len(input.Records))

	for _, rec := range input.Records {
		if len(rec.DailyAudience) == 0 {
			continue
		}

		weekday, weekend := splitWeek(rec.DailyAudience)

		weekly := weekday + weekend
		if weekly <= 0 {
			continue
		}

		ratio := stats.SafeShare(float64(weekend), float64(weekly))

		rows = append(rows, TitleRow{
			Title:           rec.Name,
			OpenDate:        rec.OpenDate,
			Audience:        rec.AudienceCount,
			RankChange:      rec.RankChange,
			AbsRankChange:   abs(rec.RankChange),
			WeekdayAudience: weekday,
			WeekendAudience: weekend,
			WeeklyAudience:  weekly,
			DependencyRatio: ratio,
			DerivedIndex:    ratio,
		})
	}

	result.Titles = rank.Rank(rows, titleIndex, rank.Descending, titleRank)

	return result
}

func splitWeek(daily map[int]int64) (weekday, weekend int64) {
	for day := movie.Monday; day <= movie.Sunday; day++ {
		value := max(daily[day], 0)

		if day >= movie.Saturday {
			weekend += value
		} else {
			weekday += value
		}
	}

	return weekday, weekend
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
