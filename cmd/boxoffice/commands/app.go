// Package commands implements CLI command handlers for boxoffice.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/config"
	"github.com/Sumatoshi-tech/boxoffice/pkg/kobis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
	"github.com/Sumatoshi-tech/boxoffice/pkg/snapshot"
	"github.com/Sumatoshi-tech/boxoffice/pkg/version"
)

// GlobalOptions are the root persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// app is the per-invocation wiring: configuration, telemetry and the
// constructors built from them.
type app struct {
	cfg          *config.Config
	providers    observability.Providers
	red          *observability.REDMetrics
	fetchMetrics *observability.FetchMetrics
	fs           afero.Fs
}

func newApp(opts *GlobalOptions, mode observability.AppMode) (*app, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	providers, err := observability.Init(observabilityConfig(cfg, opts, mode))
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, shutdownOnError(providers, err)
	}

	fetchMetrics, err := observability.NewFetchMetrics(providers.Meter)
	if err != nil {
		return nil, shutdownOnError(providers, err)
	}

	return &app{
		cfg:          cfg,
		providers:    providers,
		red:          red,
		fetchMetrics: fetchMetrics,
		fs:           afero.NewOsFs(),
	}, nil
}

func observabilityConfig(cfg *config.Config, opts *GlobalOptions, mode observability.AppMode) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.Prometheus = mode == observability.ModeServe
	obsCfg.LogLevel = observability.ParseLogLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.LogOutput = cfg.Logging.Output

	switch {
	case opts.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case opts.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	// stdout carries the MCP protocol.
	if mode == observability.ModeMCP {
		obsCfg.LogJSON = true

		if obsCfg.LogOutput == observability.OutputStdout {
			obsCfg.LogOutput = observability.OutputStderr
		}
	}

	return obsCfg
}

func shutdownOnError(providers observability.Providers, err error) error {
	shutdownErr := providers.Shutdown(context.Background())
	if shutdownErr != nil {
		return fmt.Errorf("%w (shutdown: %w)", err, shutdownErr)
	}

	return err
}

func (a *app) logger() *slog.Logger {
	return a.providers.Logger
}

// close flushes telemetry. Failures are logged, never returned.
func (a *app) close() {
	shutdownErr := a.providers.Shutdown(context.Background())
	if shutdownErr != nil {
		a.logger().Warn("observability shutdown failed", "error", shutdownErr)
	}
}

func (a *app) store() *snapshot.Store {
	return snapshot.NewStore(a.fs, a.cfg.Snapshot.Directory, snapshot.WithCompression(a.cfg.Snapshot.Compress))
}

func (a *app) kobisClient() (*kobis.Client, error) {
	k := a.cfg.KOBIS

	return kobis.NewClient(kobis.Config{
		BaseURL:       k.BaseURL,
		APIKey:        k.APIKey,
		DetailAPIKey:  k.DetailAPIKey,
		Timeout:       k.Timeout,
		RetryAttempts: k.RetryAttempts,
		RetryDelay:    k.RetryDelay,
		Concurrency:   k.Concurrency,
		CacheEntries:  k.CacheEntries,
		CacheTTL:      k.CacheTTL,
		WeekType:      k.WeekType,
	},
		kobis.WithLogger(a.logger()),
		kobis.WithTracer(a.providers.Tracer),
		kobis.WithREDMetrics(a.red),
		kobis.WithFetchMetrics(a.fetchMetrics),
	)
}

// source returns a live KOBIS source when live is set, otherwise the
// snapshot store, pinned to pinned when non-empty.
func (a *app) source(live bool, pinned string) (boxoffice.Source, error) {
	if !live {
		return boxoffice.NewSnapshotSource(a.store(), pinned), nil
	}

	client, err := a.kobisClient()
	if err != nil {
		return nil, err
	}

	return boxoffice.NewLiveSource(client, a.store(), a.logger()), nil
}

func (a *app) service(source boxoffice.Source) *boxoffice.Service {
	normalizer := movie.NewNormalizer(
		movie.WithAudienceBasis(movie.AudienceBasis(a.cfg.Analysis.AudienceBasis)),
		movie.WithRoleKeywords(movie.RoleKeywords{
			Producer:    a.cfg.Analysis.ProducerKeywords,
			Distributor: a.cfg.Analysis.DistributorKeywords,
		}),
	)

	return boxoffice.NewService(source,
		boxoffice.WithNormalizer(normalizer),
		boxoffice.WithTopN(a.cfg.Analysis.TopN),
		boxoffice.WithLogger(a.logger()),
		boxoffice.WithTracer(a.providers.Tracer),
		boxoffice.WithREDMetrics(a.red),
	)
}

// defaults returns the configured family and sort key. Both were validated by
// config.LoadConfig.
func (a *app) defaults() (movie.Family, analysis.SortKey) {
	return movie.Family(a.cfg.Analysis.Family), analysis.SortKey(a.cfg.Analysis.SortKey)
}
