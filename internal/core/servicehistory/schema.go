package servicehistory

import (
	"fmt"
	"regexp"
	"strings"

	perr "servicehistory/internal/platform/errors"
)

// Kind is the value shape a column accepts
type Kind uint8

const (
	// KindText is a ClickHouse String, Go string
	KindText Kind = iota
	// KindFloat64 is a ClickHouse Float64, Go float64
	KindFloat64
	// KindUInt32 is a ClickHouse UInt32, Go uint32
	KindUInt32
	// KindNullableText is a ClickHouse Nullable(String), Go *string (nil is NULL)
	KindNullableText
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFloat64:
		return "float64"
	case KindUInt32:
		return "uint32"
	case KindNullableText:
		return "nullable text"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// CHType returns the ClickHouse column type for k
func (k Kind) CHType() string {
	switch k {
	case KindFloat64:
		return "Float64"
	case KindUInt32:
		return "UInt32"
	case KindNullableText:
		return "Nullable(String)"
	}
	return "String"
}

// Column is one destination column
type Column struct {
	Name string
	Kind Kind
	Date bool // DD/MM/YYYY input rewritten to YYYY-MM-DD
}

// Schema describes one destination table and its ordered columns.
// Columns[0] is always the vehicle identifier
type Schema struct {
	Name     string
	Database string
	Table    string
	Columns  []Column
}

// VehicleColumn leads every row
const VehicleColumn = "vehicleNumber"

// SchemaV1 is the all-text layout in service_db
var SchemaV1 = Schema{
	Name:     "v1",
	Database: "service_db",
	Table:    "service_history",
	Columns: []Column{
		{Name: VehicleColumn, Kind: KindText},
		{Name: "dealerName", Kind: KindText},
		{Name: "totalAmmount", Kind: KindText},
		{Name: "dateOfSVC", Kind: KindText, Date: true},
		{Name: "dealerNo", Kind: KindText},
		{Name: "serviceType", Kind: KindText},
		{Name: "noOfRo", Kind: KindText},
		{Name: "mileAge", Kind: KindText},
		{Name: "typeOfPayment", Kind: KindText},
	},
}

// SchemaV2 is the typed layout in vehicle_db
var SchemaV2 = Schema{
	Name:     "v2",
	Database: "vehicle_db",
	Table:    "service_history",
	Columns: []Column{
		{Name: VehicleColumn, Kind: KindText},
		{Name: "labourAmount", Kind: KindFloat64},
		{Name: "partAmount", Kind: KindFloat64},
		{Name: "totalAmount", Kind: KindFloat64},
		{Name: "dateOfBill", Kind: KindText, Date: true},
		{Name: "repairOrderDate", Kind: KindText, Date: true},
		{Name: "dealerAddress", Kind: KindText},
		{Name: "groupOfParent", Kind: KindText},
		{Name: "srVehicleCd", Kind: KindText},
		{Name: "cdLoc", Kind: KindText},
		{Name: "nameOfSA", Kind: KindText},
		{Name: "noOfJobCard", Kind: KindText},
		{Name: "dateOfSVC", Kind: KindText, Date: true},
		{Name: "noOfRO", Kind: KindText},
		{Name: "dealerName", Kind: KindText},
		{Name: "dealerNo", Kind: KindUInt32},
		{Name: "mileage", Kind: KindUInt32},
		{Name: "serviceType", Kind: KindText},
		{Name: "typOfPayment", Kind: KindNullableText},
	},
}

// Schemas lists every known schema by name
func Schemas() []Schema { return []Schema{SchemaV1, SchemaV2} }

// Lookup returns the schema with the given name (v1, v2)
func Lookup(name string) (Schema, error) {
	for _, s := range Schemas() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Schema{}, perr.InvalidArgf("unknown schema %q (want v1 or v2)", name)
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether s is safe to splice into DDL and INSERT statements unquoted
func ValidIdent(s string) bool { return identRe.MatchString(s) }

// WithTarget returns a copy of s pointed at another database and table.
// Empty arguments keep the current value
func (s Schema) WithTarget(database, table string) (Schema, error) {
	if database != "" {
		s.Database = database
	}
	if table != "" {
		s.Table = table
	}
	if !ValidIdent(s.Database) {
		return s, perr.InvalidArgf("invalid database name %q", s.Database)
	}
	if !ValidIdent(s.Table) {
		return s, perr.InvalidArgf("invalid table name %q", s.Table)
	}
	return s, nil
}

// Qualified returns db.table
func (s Schema) Qualified() string { return s.Database + "." + s.Table }

// ColumnNames returns the destination column list in row order
func (s Schema) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// DateColumns returns the names of columns rewritten by ParseDate
func (s Schema) DateColumns() []string {
	var out []string
	for _, c := range s.Columns {
		if c.Date {
			out = append(out, c.Name)
		}
	}
	return out
}

// CreateDatabaseSQL is the idempotent database bootstrap statement
func (s Schema) CreateDatabaseSQL() string {
	return "CREATE DATABASE IF NOT EXISTS " + s.Database
}

// CreateTableSQL is the idempotent table bootstrap statement
func (s Schema) CreateTableSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(s.Qualified())
	b.WriteString("\n(\n")
	for i, c := range s.Columns {
		b.WriteString("    ")
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.Kind.CHType())
		if i < len(s.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(")\nENGINE = MergeTree\nORDER BY ")
	b.WriteString(VehicleColumn)
	return b.String()
}

// DropTableSQL drops the destination table; only the migrate tool's -recreate uses it
func (s Schema) DropTableSQL() string {
	return "DROP TABLE IF EXISTS " + s.Qualified()
}
