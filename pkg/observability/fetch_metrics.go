package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricTitlesFetched    = "boxoffice.fetch.titles.total"
	metricTitlesDropped    = "boxoffice.fetch.titles.dropped.total"
	metricCacheHitsTotal   = "boxoffice.fetch.cache.hits.total"
	metricCacheMissesTotal = "boxoffice.fetch.cache.misses.total"

	attrCache = "cache"
)

// FetchMetrics holds instruments for box-office fetch runs.
type FetchMetrics struct {
	titlesFetched metric.Int64Counter
	titlesDropped metric.Int64Counter
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
}

// FetchStats summarizes one fetch run.
type FetchStats struct {
	Titles      int
	Dropped     int
	CacheHits   int64
	CacheMisses int64
}

// NewFetchMetrics creates fetch instruments from the given meter.
func NewFetchMetrics(mt metric.Meter) (*FetchMetrics, error) {
	fetched, err := mt.Int64Counter(metricTitlesFetched,
		metric.WithDescription("Titles returned by the box-office list"),
		metric.WithUnit("{title}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTitlesFetched, err)
	}

	dropped, err := mt.Int64Counter(metricTitlesDropped,
		metric.WithDescription("Titles dropped for a missing detail payload"),
		metric.WithUnit("{title}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTitlesDropped, err)
	}

	hits, err := mt.Int64Counter(metricCacheHitsTotal,
		metric.WithDescription("Detail cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheHitsTotal, err)
	}

	misses, err := mt.Int64Counter(metricCacheMissesTotal,
		metric.WithDescription("Detail cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheMissesTotal, err)
	}

	return &FetchMetrics{
		titlesFetched: fetched,
		titlesDropped: dropped,
		cacheHits:     hits,
		cacheMisses:   misses,
	}, nil
}

// RecordFetch records one fetch run. Safe on a nil receiver.
func (fm *FetchMetrics) RecordFetch(ctx context.Context, stats FetchStats) {
	if fm == nil {
		return
	}

	fm.titlesFetched.Add(ctx, int64(stats.Titles))
	fm.titlesDropped.Add(ctx, int64(stats.Dropped))

	detailAttrs := metric.WithAttributes(attribute.String(attrCache, "movie_info"))
	fm.cacheHits.Add(ctx, stats.CacheHits, detailAttrs)
	fm.cacheMisses.Add(ctx, stats.CacheMisses, detailAttrs)
}
