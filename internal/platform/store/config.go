package store

import (
	"time"

	"servicehistory/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled      bool
	URL          string
	LogSQL       bool
	MaxOpenConns int
	PingTimeout  time.Duration

	// ClientName and ClientTag show up in system.query_log client info
	ClientName string
	ClientTag  string
}

// ConfigFromEnv reads SERVICE_CLICKHOUSE_* and SERVICE_PGSQL_* into a Config.
// ClickHouse is always enabled; Postgres only when SERVICE_PGSQL_DBURL is set
func ConfigFromEnv(root config.Conf, role string) Config {
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	return Config{
		AppName: "servicehistory",
		CH: CHConfig{
			Enabled:      true,
			URL:          chCfg.MustString("DBURL"),
			LogSQL:       chCfg.MayBool("LOG_SQL", false),
			MaxOpenConns: chCfg.MayInt("MAX_OPEN_CONNS", 10),
			PingTimeout:  chCfg.MayDuration("PING_TIMEOUT", 5*time.Second),
			ClientName:   "servicehistory",
			ClientTag:    role,
		},
		PG: PGConfig{
			Enabled:        pgCfg.Has("DBURL"),
			URL:            pgCfg.MayString("DBURL", ""),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 6),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
