// Package domain defines the types and ports for the service history ingest module
package domain

import "time"

// InsertResult reports a successful ingest
type InsertResult struct {
	Schema       string `json:"schema" example:"v2"`
	Table        string `json:"table" example:"vehicle_db.service_history"`
	Vehicle      string `json:"vehicle_number" example:"KA01AB1234"`
	RowsInserted int    `json:"rows_inserted" example:"3"`
}

// CompatSuccess is the body the legacy insert route returns on success
type CompatSuccess struct {
	Status       string `json:"status" example:"success"`
	RowsInserted int    `json:"rows_inserted" example:"3"`
}

// CompatError is the body the legacy insert route returns on failure
type CompatError struct {
	Detail string `json:"detail" example:"result.vehicleNumber is a required field"`
}

// Receipt statuses
const (
	ReceiptOK     = "ok"
	ReceiptFailed = "failed"
)

// Receipt is one ingest attempt that reached storage
type Receipt struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	Schema    string    `json:"schema"`
	Vehicle   string    `json:"vehicle_number"`
	Rows      int       `json:"rows"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReceiptsInput filters the receipts listing
type ReceiptsInput struct {
	Vehicle string `json:"vehicle_number,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}
