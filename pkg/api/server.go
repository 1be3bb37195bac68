// Package api serves box-office analyses over HTTP as JSON, with the
// Prometheus scrape endpoint alongside.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/terminal"
	"github.com/Sumatoshi-tech/boxoffice/pkg/snapshot"
)

// ErrBadParam is returned for a malformed query parameter.
var ErrBadParam = errors.New("bad parameter")

// Route paths.
const (
	PathHealth   = "/healthz"
	PathAnalysis = "/api/v1/analyses/{variant}"
	PathReport   = "/api/v1/report"
	PathMetrics  = "/metrics"
)

const (
	contentTypeJSON = "application/json"
	tracerName      = "boxoffice/api"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req boxoffice.Request) (*boxoffice.Report, error)
}

// Defaults fill query parameters the caller leaves out.
type Defaults struct {
	Family  movie.Family
	SortKey analysis.SortKey
	TopN    int
}

// Server holds the HTTP handlers.
type Server struct {
	analyzer       Analyzer
	defaults       Defaults
	logger         *slog.Logger
	tracer         trace.Tracer
	red            *observability.REDMetrics
	metricsHandler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTracer sets the tracer used by the request middleware.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = tracer
	}
}

// WithREDMetrics records RED metrics per route.
func WithREDMetrics(red *observability.REDMetrics) Option {
	return func(s *Server) {
		s.red = red
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// NewServer creates a Server.
func NewServer(analyzer Analyzer, defaults Defaults, opts ...Option) *Server {
	s := &Server{
		analyzer: analyzer,
		defaults: defaults,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router returns the routed handler.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.HTTPMiddleware(s.tracer, s.red, routeTemplate))

	r.HandleFunc(PathHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(PathAnalysis, s.handleAnalysis).Methods(http.MethodGet)
	r.HandleFunc(PathReport, s.handleReport).Methods(http.MethodGet)

	if s.metricsHandler != nil {
		r.Handle(PathMetrics, s.metricsHandler).Methods(http.MethodGet)
	}

	return r
}

// routeTemplate names a request by its mux path template, keeping variant
// names out of span names and metric labels.
func routeTemplate(hr *http.Request) string {
	route := mux.CurrentRoute(hr)
	if route == nil {
		return ""
	}

	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return ""
	}

	return tmpl
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, hr *http.Request) {
	variant, err := analysis.ParseVariant(mux.Vars(hr)["variant"])
	if err != nil {
		s.writeError(w, hr, http.StatusNotFound, err)

		return
	}

	req, err := s.parseRequest(hr)
	if err != nil {
		s.writeError(w, hr, http.StatusBadRequest, err)

		return
	}

	req.Variants = []analysis.Variant{variant}

	rep, err := s.analyzer.Analyze(hr.Context(), req)
	if err != nil {
		s.writeError(w, hr, statusFor(err), err)

		return
	}

	s.writeJSON(w, http.StatusOK, analysisResponse{
		RunID:     rep.RunID,
		Week:      rep.Week,
		ShowRange: rep.ShowRange,
		Summary:   rep.Summary,
		Result:    rep.Results[0],
	})
}

func (s *Server) handleReport(w http.ResponseWriter, hr *http.Request) {
	req, err := s.parseRequest(hr)
	if err != nil {
		s.writeError(w, hr, http.StatusBadRequest, err)

		return
	}

	variants, err := parseVariants(hr.URL.Query().Get("variants"))
	if err != nil {
		s.writeError(w, hr, http.StatusBadRequest, err)

		return
	}

	req.Variants = variants

	format := report.FormatJSON

	if raw := hr.URL.Query().Get("format"); raw != "" {
		format, err = report.ParseFormat(raw)
		if err != nil {
			s.writeError(w, hr, http.StatusBadRequest, err)

			return
		}
	}

	rep, err := s.analyzer.Analyze(hr.Context(), req)
	if err != nil {
		s.writeError(w, hr, statusFor(err), err)

		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))

	renderErr := report.Render(w, rep, format, report.Options{Terminal: terminal.Config{Width: terminal.DefaultWidth, NoColor: true}})
	if renderErr != nil {
		s.logger.ErrorContext(hr.Context(), "render report", "error", renderErr)
	}
}

type analysisResponse struct {
	RunID     string           `json:"run_id"`
	Week      string           `json:"week"`
	ShowRange string           `json:"show_range"`
	Summary   analysis.Summary `json:"summary"`
	Result    analysis.Result  `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// parseRequest reads week, reference, family, sort and top.
func (s *Server) parseRequest(hr *http.Request) (boxoffice.Request, error) {
	query := hr.URL.Query()

	req := boxoffice.Request{
		Params: analysis.Params{Family: s.defaults.Family, SortKey: s.defaults.SortKey},
		TopN:   s.defaults.TopN,
	}

	week, err := parseDateParam(query.Get("week"), "week")
	if err != nil {
		return req, err
	}

	req.Week = week

	reference, err := parseDateParam(query.Get("reference"), "reference")
	if err != nil {
		return req, err
	}

	req.Params.ReferenceDate = reference

	if raw := query.Get("family"); raw != "" {
		family, familyErr := movie.ParseFamily(raw)
		if familyErr != nil {
			return req, fmt.Errorf("%w: %w", ErrBadParam, familyErr)
		}

		req.Params.Family = family
	}

	if raw := query.Get("sort"); raw != "" {
		key, keyErr := analysis.ParseSortKey(raw)
		if keyErr != nil {
			return req, fmt.Errorf("%w: %w", ErrBadParam, keyErr)
		}

		req.Params.SortKey = key
	}

	if raw := query.Get("top"); raw != "" {
		top, atoiErr := strconv.Atoi(raw)
		if atoiErr != nil {
			return req, fmt.Errorf("%w: top %q", ErrBadParam, raw)
		}

		// 0 from a client means every row.
		if top == 0 {
			top = -1
		}

		req.TopN = top
	}

	return req, nil
}

func parseDateParam(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	normalized := movie.ParseOpenDate(raw)
	if normalized == movie.UnknownOpenDate {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrBadParam, name, raw)
	}

	return movie.ParseDate(normalized)
}

func parseVariants(raw string) ([]analysis.Variant, error) {
	if raw == "" || raw == "all" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	variants := make([]analysis.Variant, 0, len(parts))

	for _, part := range parts {
		variant, err := analysis.ParseVariant(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadParam, err)
		}

		variants = append(variants, variant)
	}

	return variants, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func contentTypeFor(format report.Format) string {
	switch format {
	case report.FormatHTML:
		return "text/html; charset=utf-8"
	case report.FormatYAML:
		return "application/yaml"
	case report.FormatText:
		return "text/plain; charset=utf-8"
	case report.FormatJSON:
		return contentTypeJSON
	default:
		return contentTypeJSON
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, hr *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	s.logger.Log(hr.Context(), level, "request failed",
		"path", hr.URL.Path, "status", status, "error", err)

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
