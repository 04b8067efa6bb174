package repo

import (
	"context"
	"time"

	"servicehistory/internal/modkit/repokit"
	"servicehistory/internal/platform/store"
	"servicehistory/internal/services/servicehistory/domain"
)

// ReceiptsDDL creates the receipts ledger, one statement per entry
var ReceiptsDDL = []string{
	`create table if not exists ingest_receipts (
	id uuid primary key,
	request_id text not null default '',
	schema_name text not null,
	vehicle_number text not null,
	rows_inserted integer not null,
	status text not null,
	error text not null default '',
	created_at timestamptz not null default now()
)`,
	`create index if not exists ingest_receipts_vehicle_idx on ingest_receipts (vehicle_number, created_at desc)`,
}

// Receipts stores and lists ingest receipts
type Receipts interface {
	Record(ctx context.Context, r domain.Receipt) error
	Recent(ctx context.Context, vehicle string, limit int) ([]domain.Receipt, error)
}

type (
	// PG binds Receipts to a Postgres queryer
	PG struct{}

	receipts struct{ q repokit.Queryer }
)

// NewPG creates a receipts binder for Postgres
func NewPG() repokit.Binder[Receipts] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Receipts { return &receipts{q: q} }

func (r *receipts) Record(ctx context.Context, rc domain.Receipt) error {
	const sql = `
insert into ingest_receipts (id, request_id, schema_name, vehicle_number, rows_inserted, status, error, created_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
`
	return store.ExecOne(ctx, r.q, sql,
		rc.ID, rc.RequestID, rc.Schema, rc.Vehicle, rc.Rows, rc.Status, rc.Error, rc.CreatedAt)
}

func (r *receipts) Recent(ctx context.Context, vehicle string, limit int) ([]domain.Receipt, error) {
	const sql = `
select id::text, request_id, schema_name, vehicle_number, rows_inserted, status, error, created_at
from ingest_receipts
where ($1 = '' or vehicle_number = $1)
order by created_at desc
limit $2
`
	return store.Many(ctx, r.q, scanReceipt, sql, vehicle, limit)
}

func scanReceipt(row store.Row) (domain.Receipt, error) {
	var (
		rc   domain.Receipt
		rows int32
		at   time.Time
	)
	if err := row.Scan(&rc.ID, &rc.RequestID, &rc.Schema, &rc.Vehicle, &rows, &rc.Status, &rc.Error, &at); err != nil {
		return domain.Receipt{}, err
	}
	rc.Rows = int(rows)
	rc.CreatedAt = at.UTC()
	return rc, nil
}
