// Package service contains the service history ingest workflow
package service

import (
	"context"
	"time"

	core "servicehistory/internal/core/servicehistory"
	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/logger"
	pnet "servicehistory/internal/platform/net"
	"servicehistory/internal/services/servicehistory/domain"
	"servicehistory/internal/services/servicehistory/repo"

	"github.com/google/uuid"
)

// Service is the ingest contract exposed to transports and other modules
type Service interface {
	domain.IngestPort
	domain.ReceiptsPort
}

// Config selects the destination descriptor for each payload version
type Config struct {
	V1 core.Schema
	V2 core.Schema

	// ReceiptLimit caps the receipts listing
	ReceiptLimit int
}

// receiptTimeout bounds the receipt write, which outlives the request context
const receiptTimeout = 3 * time.Second

// Svc implements Service
type Svc struct {
	rows     repo.RowWriter
	receipts repo.Receipts // nil when Postgres is not configured
	cfg      Config

	now   func() time.Time
	newID func() string
}

// New constructs the ingest service. receipts may be nil
func New(rows repo.RowWriter, receipts repo.Receipts, cfg Config) *Svc {
	if rows == nil {
		panic("servicehistory.Service requires a non nil RowWriter")
	}
	if cfg.V1.Table == "" {
		cfg.V1 = core.SchemaV1
	}
	if cfg.V2.Table == "" {
		cfg.V2 = core.SchemaV2
	}
	if cfg.ReceiptLimit <= 0 {
		cfg.ReceiptLimit = 200
	}
	return &Svc{
		rows:     rows,
		receipts: receipts,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// IngestV1 normalizes a v1 payload and inserts its rows
func (s *Svc) IngestV1(ctx context.Context, req core.RequestV1) (domain.InsertResult, error) {
	return ingest(ctx, s, s.cfg.V1, req)
}

// IngestV2 normalizes a v2 payload and inserts its rows
func (s *Svc) IngestV2(ctx context.Context, req core.RequestV2) (domain.InsertResult, error) {
	return ingest(ctx, s, s.cfg.V2, req)
}

func ingest[R core.Record](ctx context.Context, s *Svc, schema core.Schema, req core.Request[R]) (domain.InsertResult, error) {
	ctx = logger.WithSchema(ctx, schema.Name)
	log := logger.C(ctx)

	rows, err := core.Normalize(schema, req)
	if err != nil {
		log.Debug().Err(err).Msg("service history rejected")
		return domain.InsertResult{}, err
	}
	vehicle := req.Vehicle()
	res := domain.InsertResult{Schema: schema.Name, Table: schema.Qualified(), Vehicle: vehicle}

	// nothing to send for an empty visit list
	if len(rows) == 0 {
		log.Info().Str("vehicle", vehicle).Msg("service history empty")
		return res, nil
	}

	start := time.Now()
	err = s.rows.WriteRows(ctx, schema, rows)
	s.record(ctx, schema, vehicle, len(rows), err)
	if err != nil {
		ev := log.Error().Err(err).
			Str("vehicle", vehicle).
			Int("rows", len(rows)).
			Bool("retryable", perr.IsRetryable(err))
		if perr.IsMissingSchema(err) {
			ev = ev.Str("hint", "run servicehistory-migrate")
		}
		ev.Msg("service history insert failed")
		return domain.InsertResult{}, err
	}

	log.Info().
		Str("vehicle", vehicle).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("service history inserted")
	res.RowsInserted = len(rows)
	return res, nil
}

// record writes a receipt and never fails the ingest
func (s *Svc) record(ctx context.Context, schema core.Schema, vehicle string, n int, insertErr error) {
	if s.receipts == nil {
		return
	}
	rc := domain.Receipt{
		ID:        s.newID(),
		RequestID: pnet.RequestID(ctx),
		Schema:    schema.Name,
		Vehicle:   vehicle,
		Rows:      n,
		Status:    domain.ReceiptOK,
		CreatedAt: s.now().UTC(),
	}
	if insertErr != nil {
		rc.Status = domain.ReceiptFailed
		rc.Rows = 0
		rc.Error = insertErr.Error()
	}
	// a request that timed out still gets its failed receipt
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), receiptTimeout)
	defer cancel()
	if err := s.receipts.Record(rctx, rc); err != nil {
		logger.C(ctx).Warn().Err(perr.FromPostgres(err, "record receipt")).Str("receipt", rc.ID).Msg("receipt not recorded")
	}
}

// Receipts lists the most recent ingest receipts
func (s *Svc) Receipts(ctx context.Context, in domain.ReceiptsInput) ([]domain.Receipt, error) {
	if s.receipts == nil {
		return nil, perr.Unavailablef("receipts are not configured")
	}
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = min(50, s.cfg.ReceiptLimit)
	case limit > s.cfg.ReceiptLimit:
		limit = s.cfg.ReceiptLimit
	}
	out, err := s.receipts.Recent(ctx, in.Vehicle, limit)
	if err != nil {
		if perr.IsUndefinedTable(err) {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "receipts table missing, run servicehistory-migrate")
		}
		return nil, perr.FromPostgres(err, "list receipts")
	}
	if out == nil {
		out = []domain.Receipt{}
	}
	return out, nil
}
