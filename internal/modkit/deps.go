// Package modkit provides module wiring and core deps
package modkit

import (
	"servicehistory/internal/modkit/repokit"
	"servicehistory/internal/platform/config"
	"servicehistory/internal/platform/logger"
	"servicehistory/internal/platform/store"
)

// Deps holds the process wide handles a module may need.
// PG is nil when Postgres is not configured; CH is required by the ingest module
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
