package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/boxoffice/pkg/config"
)

const (
	testAPIKey      = "list-key"
	testDetailKey   = "detail-key"
	testPort        = 9090
	testTopN        = 30
	testConcurrency = 8
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "boxoffice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultKOBISBaseURL, cfg.KOBIS.BaseURL)
	assert.Equal(t, config.DefaultKOBISTimeout, cfg.KOBIS.Timeout)
	assert.Equal(t, config.DefaultKOBISRetryAttempts, cfg.KOBIS.RetryAttempts)
	assert.Equal(t, config.DefaultKOBISCacheTTL, cfg.KOBIS.CacheTTL)
	assert.Equal(t, config.DefaultKOBISConcurrency, cfg.KOBIS.Concurrency)
	assert.Equal(t, config.DefaultKOBISWeekType, cfg.KOBIS.WeekType)
	assert.Equal(t, config.DefaultAudienceBasis, cfg.Analysis.AudienceBasis)
	assert.Equal(t, config.DefaultFamily, cfg.Analysis.Family)
	assert.Equal(t, config.DefaultSortKey, cfg.Analysis.SortKey)
	assert.Equal(t, config.DefaultTopN, cfg.Analysis.TopN)
	assert.Contains(t, cfg.Analysis.ProducerKeywords, "제작")
	assert.Contains(t, cfg.Analysis.DistributorKeywords, "배급")
	assert.Equal(t, config.DefaultSnapshotDirectory, cfg.Snapshot.Directory)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
	assert.InDelta(t, config.DefaultTelemetrySampleRatio, cfg.Telemetry.SampleRatio, 1e-9)
	assert.Empty(t, cfg.KOBIS.APIKey)
}

func TestLoadConfig_FileValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `kobis:
  api_key: list-key
  detail_api_key: detail-key
  timeout: 3s
  concurrency: 8
  week_type: "1"
analysis:
  audience_basis: Cumulative
  family: company
  sort_key: stability
  top_n: 30
server:
  port: 9090
logging:
  format: JSON
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, cfg.KOBIS.APIKey)
	assert.Equal(t, testDetailKey, cfg.KOBIS.DetailAPIKey)
	assert.Equal(t, 3*time.Second, cfg.KOBIS.Timeout)
	assert.Equal(t, testConcurrency, cfg.KOBIS.Concurrency)
	assert.Equal(t, "1", cfg.KOBIS.WeekType)
	assert.Equal(t, "cumulative", cfg.Analysis.AudienceBasis)
	assert.Equal(t, "company", cfg.Analysis.Family)
	assert.Equal(t, "stability", cfg.Analysis.SortKey)
	assert.Equal(t, testTopN, cfg.Analysis.TopN)
	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
}

func TestLoadConfig_DetailKeyDefaultsToListKey(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "kobis:\n  api_key: list-key\n"))
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, cfg.KOBIS.DetailAPIKey)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("BOXOFFICE_KOBIS_API_KEY", "from-env")
	t.Setenv("BOXOFFICE_ANALYSIS_TOP_N", "5")

	cfg, err := config.LoadConfig(writeConfig(t, "kobis:\n  api_key: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.KOBIS.APIKey)
	assert.Equal(t, 5, cfg.Analysis.TopN)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"port", "server:\n  port: 70000\n", config.ErrInvalidPort},
		{"basis", "analysis:\n  audience_basis: daily\n", config.ErrInvalidAudienceBasis},
		{"family", "analysis:\n  family: actor\n", config.ErrInvalidFamily},
		{"sort_key", "analysis:\n  sort_key: median\n", config.ErrInvalidSortKey},
		{"top_n", "analysis:\n  top_n: -1\n", config.ErrInvalidTopN},
		{"concurrency", "kobis:\n  concurrency: 0\n", config.ErrInvalidConcurrency},
		{"cache", "kobis:\n  cache_entries: 0\n", config.ErrInvalidCacheEntries},
		{"retries", "kobis:\n  retry_attempts: 0\n", config.ErrInvalidRetryAttempts},
		{"week_type", "kobis:\n  week_type: \"7\"\n", config.ErrInvalidWeekType},
		{"log_format", "logging:\n  format: xml\n", config.ErrInvalidLogFormat},
		{"sample_ratio", "telemetry:\n  sample_ratio: 2\n", config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
