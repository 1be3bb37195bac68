// Package boxoffice wires a week source to the normalizer and the
// aggregation engine: one Analyze call loads a week, normalizes its titles,
// and computes the requested variants.
package boxoffice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// ErrNilSnapshot is returned when a source yields neither a snapshot nor an
// error.
var ErrNilSnapshot = errors.New("source returned no snapshot")

const (
	opAnalyze  = "boxoffice.analyze"
	tracerName = "boxoffice"
)

// Request selects what one Analyze call computes.
type Request struct {
	// Week is any day of the week to analyze. Zero lets the source decide.
	Week time.Time
	// Variants to compute, in order. Empty means all.
	Variants []analysis.Variant
	// Params are passed to every variant. A zero ReferenceDate becomes the
	// Sunday ending the analyzed week.
	Params analysis.Params
	// TopN truncates every result. Zero uses the service default; negative
	// keeps every row.
	TopN int
}

// Report is the outcome of one Analyze call.
type Report struct {
	RunID      string            `json:"run_id"      yaml:"run_id"`
	SnapshotID string            `json:"snapshot_id" yaml:"snapshot_id"`
	Week       string            `json:"week"        yaml:"week"`
	ShowRange  string            `json:"show_range"  yaml:"show_range"`
	FetchedAt  time.Time         `json:"fetched_at"  yaml:"fetched_at"`
	Summary    analysis.Summary  `json:"summary"     yaml:"summary"`
	Results    []analysis.Result `json:"results"     yaml:"results"`
}

// Service runs analyses over a Source.
type Service struct {
	source     Source
	normalizer *movie.Normalizer
	topN       int
	logger     *slog.Logger
	tracer     trace.Tracer
	red        *observability.REDMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *movie.Normalizer) Option {
	return func(s *Service) {
		s.normalizer = n
	}
}

// WithTopN sets the default result truncation. Zero or negative keeps every row.
func WithTopN(n int) Option {
	return func(s *Service) {
		s.topN = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithREDMetrics records one request metric per Analyze call.
func WithREDMetrics(red *observability.REDMetrics) Option {
	return func(s *Service) {
		s.red = red
	}
}

// NewService creates a Service reading from source.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:     source,
		normalizer: movie.NewNormalizer(),
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Analyze loads a week, normalizes it, and computes the requested variants.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	runID := uuid.NewString()
	logger := observability.WithRunID(s.logger, runID)

	ctx, span := s.tracer.Start(ctx, opAnalyze, trace.WithAttributes(attribute.String("run_id", runID)))
	defer span.End()

	start := time.Now()

	report, err := s.analyze(ctx, logger, req)

	s.red.RecordRequest(ctx, opAnalyze, observability.Status(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "analysis failed", "error", err)

		return nil, err
	}

	report.RunID = runID

	span.SetAttributes(
		attribute.String("week", report.Week),
		attribute.Int("titles", report.Summary.Titles),
		attribute.Int("dropped", report.Summary.Dropped),
	)

	logger.InfoContext(ctx, "analysis complete",
		"week", report.Week,
		"titles", report.Summary.Titles,
		"dropped", report.Summary.Dropped,
		"variants", len(report.Results),
		"duration", time.Since(start))

	return report, nil
}

func (s *Service) analyze(ctx context.Context, logger *slog.Logger, req Request) (*Report, error) {
	snap, err := s.source.Fetch(ctx, req.Week)
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}

	if snap == nil {
		return nil, ErrNilSnapshot
	}

	records, dropped := s.normalizer.NormalizeAll(snap.Titles)
	if dropped > 0 {
		logger.WarnContext(ctx, "titles dropped during normalization",
			"dropped", dropped, "kept", len(records))
	}

	params := req.Params
	if params.ReferenceDate.IsZero() {
		params.ReferenceDate = referenceDate(snap.Week, req.Week)
	}

	results := analysis.ComputeAll(records, params, req.Variants...)

	topN := req.TopN
	if topN == 0 {
		topN = s.topN
	}

	for i := range results {
		results[i] = results[i].Top(topN)
	}

	return &Report{
		SnapshotID: snap.RunID,
		Week:       snap.Week,
		ShowRange:  snap.ShowRange,
		FetchedAt:  snap.FetchedAt,
		Summary:    analysis.Summarize(records, dropped),
		Results:    results,
	}, nil
}

// referenceDate returns the Sunday ending the snapshot week, falling back to
// the requested week. Both unknown leaves the zero time, which disables the
// title-age variant.
func referenceDate(snapshotWeek string, requested time.Time) time.Time {
	week, err := movie.ParseDate(snapshotWeek)
	if err != nil {
		week = requested
	}

	if week.IsZero() {
		return time.Time{}
	}

	_, sunday := movie.WeekBounds(week)

	return sunday
}
