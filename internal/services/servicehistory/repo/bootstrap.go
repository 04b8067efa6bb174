package repo

import (
	"context"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/modkit/repokit"
	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/logger"
	"servicehistory/internal/platform/store"
)

// BootstrapOptions controls schema bootstrap
type BootstrapOptions struct {
	// Recreate drops each destination table before creating it
	Recreate bool
}

// Bootstrap creates the destination databases and tables, then the receipts ledger in one transaction when pg is set.
// Every statement is idempotent unless Recreate is on
func Bootstrap(ctx context.Context, ch store.Clickhouse, pg repokit.TxRunner, schemas []core.Schema, o BootstrapOptions) error {
	if ch == nil {
		return perr.Unavailablef("bootstrap: clickhouse not configured")
	}
	log := logger.C(ctx)

	for _, s := range schemas {
		stmts := []string{s.CreateDatabaseSQL()}
		if o.Recreate {
			stmts = append(stmts, s.DropTableSQL())
		}
		stmts = append(stmts, s.CreateTableSQL())

		for _, sql := range stmts {
			if err := ch.Exec(ctx, sql); err != nil {
				return perr.FromClickhouse(err, "bootstrap "+s.Qualified())
			}
		}
		log.Info().Str("schema", s.Name).Str("table", s.Qualified()).Bool("recreate", o.Recreate).Msg("clickhouse table ready")
	}

	if pg == nil {
		log.Info().Msg("postgres not configured, skipping receipts ledger")
		return nil
	}
	err := repokit.ExecInTx(ctx, pg, ReceiptsDDL...)
	if err != nil {
		return perr.FromPostgres(err, "bootstrap ingest_receipts")
	}
	log.Info().Msg("receipts ledger ready")
	return nil
}
