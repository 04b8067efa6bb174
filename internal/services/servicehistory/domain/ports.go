package domain

import (
	"context"

	core "servicehistory/internal/core/servicehistory"
)

// IngestPort accepts service history payloads for each schema version
type IngestPort interface {
	IngestV1(ctx context.Context, req core.RequestV1) (InsertResult, error)
	IngestV2(ctx context.Context, req core.RequestV2) (InsertResult, error)
}

// ReceiptsPort lists recorded ingest attempts
type ReceiptsPort interface {
	Receipts(ctx context.Context, in ReceiptsInput) ([]Receipt, error)
}
