// Package repo provides storage for service history rows and ingest receipts
package repo

import (
	"context"

	core "servicehistory/internal/core/servicehistory"
	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/store"
)

// RowWriter writes normalized rows for a schema in one batch
type RowWriter interface {
	WriteRows(ctx context.Context, s core.Schema, rows []core.Row) error
}

// CH writes rows to ClickHouse
type CH struct{ db store.Clickhouse }

// NewCH constructs a ClickHouse row writer
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("servicehistory repo requires a non nil ClickHouse store")
	}
	return &CH{db: db}
}

// WriteRows implements RowWriter
func (r *CH) WriteRows(ctx context.Context, s core.Schema, rows []core.Row) error {
	data := make([][]any, len(rows))
	for i, row := range rows {
		data[i] = row
	}
	err := r.db.Insert(ctx, s.Qualified(), s.ColumnNames(), data)
	return perr.FromClickhouse(err, "insert into "+s.Qualified())
}
