package module

import (
	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/platform/config"
)

// Options holds configuration for the service history module
type Options struct {
	// DefaultSchema is the payload version served on the legacy insert route
	DefaultSchema string
	MaxBodyBytes  int64
	ReceiptLimit  int

	V1 core.Schema
	V2 core.Schema
}

// FromConfig reads module settings from CORE_API_ and the destination overrides from SERVICE_CLICKHOUSE_
func FromConfig(cfg config.Conf) (Options, error) {
	api := cfg.Prefix("CORE_API_")
	v1, v2, err := Targets(cfg)
	if err != nil {
		return Options{}, err
	}
	return Options{
		DefaultSchema: api.MayEnum("DEFAULT_SCHEMA", core.SchemaV2.Name, core.SchemaV1.Name, core.SchemaV2.Name),
		MaxBodyBytes:  api.MayInt64("MAX_BODY_BYTES", 8<<20),
		ReceiptLimit:  api.MayInt("RECEIPTS_LIMIT", 200),
		V1:            v1,
		V2:            v2,
	}, nil
}

// Targets returns the v1 and v2 descriptors with database and table overrides applied
func Targets(cfg config.Conf) (v1, v2 core.Schema, err error) {
	chc := cfg.Prefix("SERVICE_CLICKHOUSE_")
	v1, err = core.SchemaV1.WithTarget(
		chc.MayString("V1_DATABASE", core.SchemaV1.Database),
		chc.MayString("V1_TABLE", core.SchemaV1.Table),
	)
	if err != nil {
		return core.Schema{}, core.Schema{}, err
	}
	v2, err = core.SchemaV2.WithTarget(
		chc.MayString("V2_DATABASE", core.SchemaV2.Database),
		chc.MayString("V2_TABLE", core.SchemaV2.Table),
	)
	if err != nil {
		return core.Schema{}, core.Schema{}, err
	}
	return v1, v2, nil
}
