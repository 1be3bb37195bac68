// Package config loads boxoffice configuration from YAML, a .env file, and
// BOXOFFICE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort          = errors.New("invalid server port")
	ErrInvalidAudienceBasis = errors.New("invalid audience basis")
	ErrInvalidFamily        = errors.New("invalid relation family")
	ErrInvalidSortKey       = errors.New("invalid sort key")
	ErrInvalidTopN          = errors.New("top_n must not be negative")
	ErrInvalidConcurrency   = errors.New("kobis concurrency must be positive")
	ErrInvalidCacheEntries  = errors.New("kobis cache entries must be positive")
	ErrInvalidRetryAttempts = errors.New("kobis retry attempts must be positive")
	ErrInvalidWeekType      = errors.New("kobis week type must be 0, 1 or 2")
	ErrInvalidLogFormat     = errors.New("logging format must be text or json")
	ErrInvalidSampleRatio   = errors.New("telemetry sample ratio must be within [0, 1]")
)

const (
	maxPort   = 65535
	envPrefix = "BOXOFFICE"

	// DotEnvFile is read before the environment, without overriding it.
	DotEnvFile = ".env"
)

var (
	audienceBases = []string{"weekly", "cumulative"}
	families      = []string{"director", "company", "distributor"}
	sortKeys      = []string{"total", "efficiency", "stability"}
	weekTypes     = []string{"0", "1", "2"}
	logFormats    = []string{"text", "json"}
)

// Config holds all boxoffice configuration.
type Config struct {
	KOBIS     KOBISConfig     `mapstructure:"kobis"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// KOBISConfig configures the KOBIS Open API client.
type KOBISConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	// DetailAPIKey is used for movie detail calls. Empty reuses APIKey.
	DetailAPIKey  string        `mapstructure:"detail_api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	Concurrency   int           `mapstructure:"concurrency"`
	CacheEntries  int           `mapstructure:"cache_entries"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	// WeekType is the KOBIS weekGb: 0 full week, 1 weekend, 2 weekdays.
	WeekType string `mapstructure:"week_type"`
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	AudienceBasis       string   `mapstructure:"audience_basis"`
	Family              string   `mapstructure:"family"`
	SortKey             string   `mapstructure:"sort_key"`
	TopN                int      `mapstructure:"top_n"`
	ProducerKeywords    []string `mapstructure:"producer_keywords"`
	DistributorKeywords []string `mapstructure:"distributor_keywords"`
}

// SnapshotConfig configures the snapshot store.
type SnapshotConfig struct {
	Directory string `mapstructure:"directory"`
	Compress  bool   `mapstructure:"compress"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Environment  string  `mapstructure:"environment"`
}

// LoadConfig loads configuration. An empty configPath searches for
// boxoffice.yaml in ".", "./config" and "/etc/boxoffice"; a missing file is
// not an error then. Environment variables override file values, with "."
// replaced by "_" (BOXOFFICE_KOBIS_API_KEY).
func LoadConfig(configPath string) (*Config, error) {
	dotEnvErr := loadDotEnv(DotEnvFile)
	if dotEnvErr != nil {
		return nil, dotEnvErr
	}

	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("boxoffice")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/boxoffice")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	normalize(&config)

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// loadDotEnv exports variables from path without overriding the process
// environment. A missing file is ignored.
func loadDotEnv(path string) error {
	loadErr := godotenv.Load(path)
	if loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, loadErr)
	}

	return nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("kobis.base_url", DefaultKOBISBaseURL)
	viperCfg.SetDefault("kobis.api_key", "")
	viperCfg.SetDefault("kobis.detail_api_key", "")
	viperCfg.SetDefault("kobis.timeout", DefaultKOBISTimeout)
	viperCfg.SetDefault("kobis.retry_attempts", DefaultKOBISRetryAttempts)
	viperCfg.SetDefault("kobis.retry_delay", DefaultKOBISRetryDelay)
	viperCfg.SetDefault("kobis.concurrency", DefaultKOBISConcurrency)
	viperCfg.SetDefault("kobis.cache_entries", DefaultKOBISCacheEntries)
	viperCfg.SetDefault("kobis.cache_ttl", DefaultKOBISCacheTTL)
	viperCfg.SetDefault("kobis.week_type", DefaultKOBISWeekType)

	viperCfg.SetDefault("analysis.audience_basis", DefaultAudienceBasis)
	viperCfg.SetDefault("analysis.family", DefaultFamily)
	viperCfg.SetDefault("analysis.sort_key", DefaultSortKey)
	viperCfg.SetDefault("analysis.top_n", DefaultTopN)
	viperCfg.SetDefault("analysis.producer_keywords", []string{"제작", "producer", "production"})
	viperCfg.SetDefault("analysis.distributor_keywords", []string{"배급", "distributor", "distribution"})

	viperCfg.SetDefault("snapshot.directory", DefaultSnapshotDirectory)
	viperCfg.SetDefault("snapshot.compress", DefaultSnapshotCompress)

	viperCfg.SetDefault("server.host", DefaultServerHost)
	viperCfg.SetDefault("server.port", DefaultServerPort)
	viperCfg.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	viperCfg.SetDefault("server.write_timeout", DefaultServerWriteTimeout)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
	viperCfg.SetDefault("logging.output", DefaultLogOutput)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultTelemetrySampleRatio)
	viperCfg.SetDefault("telemetry.environment", "")
}

func normalize(config *Config) {
	config.Analysis.AudienceBasis = strings.ToLower(strings.TrimSpace(config.Analysis.AudienceBasis))
	config.Analysis.Family = strings.ToLower(strings.TrimSpace(config.Analysis.Family))
	config.Analysis.SortKey = strings.ToLower(strings.TrimSpace(config.Analysis.SortKey))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	if config.KOBIS.DetailAPIKey == "" {
		config.KOBIS.DetailAPIKey = config.KOBIS.APIKey
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > maxPort {
		return fmt.Errorf("%w: %d", ErrInvalidPort, config.Server.Port)
	}

	if !slices.Contains(audienceBases, config.Analysis.AudienceBasis) {
		return fmt.Errorf("%w: %q", ErrInvalidAudienceBasis, config.Analysis.AudienceBasis)
	}

	if !slices.Contains(families, config.Analysis.Family) {
		return fmt.Errorf("%w: %q", ErrInvalidFamily, config.Analysis.Family)
	}

	if !slices.Contains(sortKeys, config.Analysis.SortKey) {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, config.Analysis.SortKey)
	}

	if config.Analysis.TopN < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopN, config.Analysis.TopN)
	}

	return validateRuntime(config)
}

func validateRuntime(config *Config) error {
	if config.KOBIS.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, config.KOBIS.Concurrency)
	}

	if config.KOBIS.CacheEntries <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheEntries, config.KOBIS.CacheEntries)
	}

	if config.KOBIS.RetryAttempts <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRetryAttempts, config.KOBIS.RetryAttempts)
	}

	if !slices.Contains(weekTypes, config.KOBIS.WeekType) {
		return fmt.Errorf("%w: %q", ErrInvalidWeekType, config.KOBIS.WeekType)
	}

	if !slices.Contains(logFormats, config.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, config.Telemetry.SampleRatio)
	}

	return nil
}
