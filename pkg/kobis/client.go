// Package kobis fetches weekly box-office data from the KOBIS open API
// (Korean Film Council): the weekly and daily lists plus per-title movie
// details, with retries, a bounded detail cache, and tracing.
package kobis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/boxoffice/pkg/alg/lru"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// Sentinel errors.
var (
	ErrMissingAPIKey    = errors.New("kobis: api key is required")
	ErrMissingMovieCode = errors.New("kobis: movie code is required")
	ErrFault            = errors.New("kobis: api fault")
	ErrUpstream         = errors.New("kobis: upstream error")
	ErrDecode           = errors.New("kobis: decode response")
)

const (
	pathWeekly    = "/boxoffice/searchWeeklyBoxOfficeList.json"
	pathDaily     = "/boxoffice/searchDailyBoxOfficeList.json"
	pathMovieInfo = "/movie/searchMovieInfo.json"

	opWeekly    = "kobis.weekly"
	opDaily     = "kobis.daily"
	opMovieInfo = "kobis.movie_info"

	tracerName = "boxoffice/kobis"

	// maxBodyBytes bounds a single response; a full weekly list is a few KB.
	maxBodyBytes = 4 << 20
)

// Config holds the client settings.
type Config struct {
	BaseURL       string
	APIKey        string
	DetailAPIKey  string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	Concurrency   int
	CacheEntries  int
	// CacheTTL expires memoized details. Zero keeps them until evicted.
	CacheTTL time.Duration
	WeekType string
}

// Client talks to the KOBIS open API.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	red     *observability.REDMetrics
	fetch   *observability.FetchMetrics
	details *lru.Cache[string, movie.MovieInfo]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout wins over Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// WithREDMetrics records one request metric per KOBIS call.
func WithREDMetrics(red *observability.REDMetrics) Option {
	return func(c *Client) {
		c.red = red
	}
}

// WithFetchMetrics records title and cache counters per Titles run.
func WithFetchMetrics(fm *observability.FetchMetrics) Option {
	return func(c *Client) {
		c.fetch = fm
	}
}

// NewClient creates a Client. DetailAPIKey falls back to APIKey.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.DetailAPIKey == "" {
		cfg.DetailAPIKey = cfg.APIKey
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.RetryAttempts = max(cfg.RetryAttempts, 1)
	cfg.Concurrency = max(cfg.Concurrency, 1)
	cfg.CacheEntries = max(cfg.CacheEntries, 1)

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
		details: newDetailCache(cfg),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func newDetailCache(cfg Config) *lru.Cache[string, movie.MovieInfo] {
	if cfg.CacheTTL > 0 {
		return lru.New(cfg.CacheEntries, lru.WithTTL[string, movie.MovieInfo](cfg.CacheTTL))
	}

	return lru.New[string, movie.MovieInfo](cfg.CacheEntries)
}

// CacheStats returns the movie detail cache counters.
func (c *Client) CacheStats() lru.Stats {
	return c.details.Stats()
}

// WeeklyBoxOffice fetches the weekly list of the week containing week.
func (c *Client) WeeklyBoxOffice(ctx context.Context, week time.Time) (List, error) {
	_, sunday := movie.WeekBounds(week)

	query := url.Values{}
	query.Set("key", c.cfg.APIKey)
	query.Set("targetDt", sunday.Format(movie.OpenDateLayout))
	query.Set("weekGb", c.cfg.WeekType)

	var resp boxOfficeResponse

	err := c.getJSON(ctx, opWeekly, pathWeekly, query, &resp)
	if err != nil {
		return List{}, err
	}

	return List{
		Type:      resp.BoxOfficeResult.BoxofficeType,
		ShowRange: resp.BoxOfficeResult.ShowRange,
		YearWeek:  resp.BoxOfficeResult.YearWeekTime,
		Entries:   resp.BoxOfficeResult.WeeklyBoxOfficeList,
	}, nil
}

// DailyBoxOffice fetches the daily list of one day.
func (c *Client) DailyBoxOffice(ctx context.Context, day time.Time) (List, error) {
	query := url.Values{}
	query.Set("key", c.cfg.APIKey)
	query.Set("targetDt", day.Format(movie.OpenDateLayout))

	var resp boxOfficeResponse

	err := c.getJSON(ctx, opDaily, pathDaily, query, &resp)
	if err != nil {
		return List{}, err
	}

	return List{
		Type:      resp.BoxOfficeResult.BoxofficeType,
		ShowRange: resp.BoxOfficeResult.ShowRange,
		Entries:   resp.BoxOfficeResult.DailyBoxOfficeList,
	}, nil
}

// MovieInfo fetches the detail payload of one title. Successful lookups are
// cached by movie code.
func (c *Client) MovieInfo(ctx context.Context, code string) (movie.MovieInfo, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return movie.MovieInfo{}, ErrMissingMovieCode
	}

	if info, ok := c.details.Get(code); ok {
		return info, nil
	}

	query := url.Values{}
	query.Set("key", c.cfg.DetailAPIKey)
	query.Set("movieCd", code)

	var resp movieInfoResponse

	err := c.getJSON(ctx, opMovieInfo, pathMovieInfo, query, &resp)
	if err != nil {
		return movie.MovieInfo{}, err
	}

	info := resp.MovieInfoResult.MovieInfo
	c.details.Put(code, info)

	return info, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	ctx, span := c.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("kobis.path", path)),
	)
	defer span.End()

	start := time.Now()

	decInflight := c.red.TrackInflight(ctx, op)
	defer decInflight()

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.do(ctx, path, query)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.RetryAttempts)),
		retry.Delay(c.cfg.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, retryErr error) {
			c.logger.WarnContext(ctx, "kobis request failed, retrying",
				"op", op, "attempt", attempt+1, "error", retryErr)
		}),
	)
	if err == nil {
		decodeErr := json.Unmarshal(body, out)
		if decodeErr != nil {
			err = fmt.Errorf("%w: %w", ErrDecode, decodeErr)
		}
	}

	c.red.RecordRequest(ctx, op, observability.Status(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// faultEnvelope peeks at the faultInfo member every KOBIS response may carry.
type faultEnvelope struct {
	FaultInfo *FaultInfo `json:"faultInfo"`
}

// do performs one attempt. Network errors, 429 and 5xx are retried; other
// failures are wrapped as unrecoverable.
func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.cfg.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, retry.Unrecoverable(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}

	var envelope faultEnvelope

	err = json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("%w: %w", ErrDecode, err))
	}

	if envelope.FaultInfo != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("%w: %w", ErrFault, envelope.FaultInfo))
	}

	return body, nil
}
