package analysis

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/Sumatoshi-tech/boxoffice/pkg/metrics"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

// NewRegistry returns a registry holding every variant metric in display
// order.
func NewRegistry() *metrics.Registry[Input, Result] {
	r := metrics.NewRegistry[Input, Result]()

	r.Register(NewEntityContributionMetric())
	r.Register(NewGenreTrendMetric())
	r.Register(NewRatingImpactMetric())
	r.Register(NewTitleAgeMetric())
	r.Register(NewRankStabilityMetric())
	r.Register(NewWeekendDependencyMetric())

	return r
}

var defaultRegistry = NewRegistry()

// Describe returns the metric behind a variant.
func Describe(variant Variant) (metrics.Metric[Input, Result], bool) {
	return defaultRegistry.Get(string(variant))
}

// Metrics returns every variant metric in display order.
func Metrics() []metrics.Metric[Input, Result] {
	return defaultRegistry.All()
}

// Aggregate runs one variant over records. An unrecognized variant yields an
// empty result; use ParseVariant to validate names from outside.
func Aggregate(records []movie.Record, variant Variant, params Params) Result {
	m, ok := Describe(variant)
	if !ok {
		return newResult(variant, records)
	}

	return m.Compute(Input{Records: records, Params: params})
}

// ComputeAll runs the given variants concurrently, returning results in the
// order requested. No variants means all of them. Records are only read.
func ComputeAll(records []movie.Record, params Params, variants ...Variant) []Result {
	if len(variants) == 0 {
		variants = Variants()
	}

	results := make([]Result, len(variants))
	p := pool.New().WithMaxGoroutines(len(variants))

	for i, variant := range variants {
		p.Go(func() {
			results[i] = Aggregate(records, variant, params)
		})
	}

	p.Wait()

	return results
}
