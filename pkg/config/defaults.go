package config

import "time"

// KOBIS defaults.
const (
	DefaultKOBISBaseURL       = "https://www.kobis.or.kr/kobisopenapi/webservice/rest"
	DefaultKOBISTimeout       = 10 * time.Second
	DefaultKOBISRetryAttempts = 3
	DefaultKOBISRetryDelay    = 500 * time.Millisecond
	DefaultKOBISConcurrency   = 4
	DefaultKOBISCacheEntries  = 512
	DefaultKOBISCacheTTL      = 24 * time.Hour
	DefaultKOBISWeekType      = "0"
)

// Analysis defaults.
const (
	DefaultAudienceBasis = "weekly"
	DefaultFamily        = "director"
	DefaultSortKey       = "total"
	DefaultTopN          = 10
)

// Snapshot defaults.
const (
	DefaultSnapshotDirectory = "./snapshots"
	DefaultSnapshotCompress  = false
)

// Server defaults.
const (
	DefaultServerHost         = "127.0.0.1"
	DefaultServerPort         = 8080
	DefaultServerReadTimeout  = 15 * time.Second
	DefaultServerWriteTimeout = 30 * time.Second
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stderr"
)

// Telemetry defaults.
const (
	DefaultTelemetrySampleRatio = 1.0
)
