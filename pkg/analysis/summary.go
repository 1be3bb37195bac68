package analysis

import (
	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/stats"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

// Summary describes the record set one analysis pass ran over.
type Summary struct {
	Titles         int     `json:"titles"          yaml:"titles"`
	Dropped        int     `json:"dropped"         yaml:"dropped"`
	WithAudience   int     `json:"with_audience"   yaml:"with_audience"`
	MarketTotal    int64   `json:"market_total"    yaml:"market_total"`
	MeanAudience   float64 `json:"mean_audience"   yaml:"mean_audience"`
	MedianAudience float64 `json:"median_audience" yaml:"median_audience"`
	TopAudience    int64   `json:"top_audience"    yaml:"top_audience"`
}

// Summarize computes run statistics. dropped is the number of raw titles the
// normalizer rejected.
func Summarize(records []movie.Record, dropped int) Summary {
	values := make([]float64, 0, len(records))
	audiences := make([]int64, 0, len(records))
	withAudience := 0

	for _, rec := range records {
		values = append(values, float64(rec.AudienceCount))
		audiences = append(audiences, rec.AudienceCount)

		if rec.AudienceCount > 0 {
			withAudience++
		}
	}

	return Summary{
		Titles:         len(records),
		Dropped:        dropped,
		WithAudience:   withAudience,
		MarketTotal:    stats.Sum(audiences),
		MeanAudience:   stats.Mean(values),
		MedianAudience: stats.Median(values),
		TopAudience:    stats.Max(audiences),
	}
}
