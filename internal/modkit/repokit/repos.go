// Package repokit holds the storage surface repositories are written against
package repokit

import (
	"context"
	"fmt"

	"servicehistory/internal/platform/store"
)

type (
	// Queryer is what a repository method runs statements on
	Queryer = store.RowQuerier
	// TxRunner opens transactions. Postgres is the only one today
	TxRunner = store.TxRunner
)

// ExecInTx runs stmts in order inside one transaction. The first failure
// rolls back and is returned with the index of the failing statement
func ExecInTx(ctx context.Context, tx TxRunner, stmts ...string) error {
	return tx.Tx(ctx, func(q Queryer) error {
		for i, sql := range stmts {
			if _, err := store.Exec(ctx, q, sql); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		}
		return nil
	})
}
