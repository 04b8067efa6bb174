package servicehistory

import (
	"strings"
	"testing"

	perr "servicehistory/internal/platform/errors"
)

func TestSchemas_LeadWithVehicle(t *testing.T) {
	for _, s := range Schemas() {
		if s.Columns[0].Name != VehicleColumn || s.Columns[0].Kind != KindText {
			t.Fatalf("%s does not lead with %s", s.Name, VehicleColumn)
		}
	}
}

func TestSchemaV1_Layout(t *testing.T) {
	want := []string{
		"vehicleNumber", "dealerName", "totalAmmount", "dateOfSVC", "dealerNo",
		"serviceType", "noOfRo", "mileAge", "typeOfPayment",
	}
	got := SchemaV1.ColumnNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("v1 columns\n got %v\nwant %v", got, want)
	}
	for _, c := range SchemaV1.Columns {
		if c.Kind != KindText {
			t.Fatalf("v1 column %s should be text", c.Name)
		}
	}
	if d := SchemaV1.DateColumns(); len(d) != 1 || d[0] != "dateOfSVC" {
		t.Fatalf("v1 date columns %v", d)
	}
	if SchemaV1.Qualified() != "service_db.service_history" {
		t.Fatalf("v1 target %s", SchemaV1.Qualified())
	}
}

func TestSchemaV2_Layout(t *testing.T) {
	if len(SchemaV2.Columns) != 19 {
		t.Fatalf("v2 should have 19 columns, got %d", len(SchemaV2.Columns))
	}
	kinds := map[string]Kind{}
	for _, c := range SchemaV2.Columns {
		kinds[c.Name] = c.Kind
	}
	checks := map[string]Kind{
		"labourAmount": KindFloat64,
		"partAmount":   KindFloat64,
		"totalAmount":  KindFloat64,
		"dealerNo":     KindUInt32,
		"mileage":      KindUInt32,
		"typOfPayment": KindNullableText,
		"dealerName":   KindText,
	}
	for name, k := range checks {
		if kinds[name] != k {
			t.Fatalf("v2 %s kind %s want %s", name, kinds[name], k)
		}
	}
	if d := strings.Join(SchemaV2.DateColumns(), ","); d != "dateOfBill,repairOrderDate,dateOfSVC" {
		t.Fatalf("v2 date columns %s", d)
	}
	if SchemaV2.Qualified() != "vehicle_db.service_history" {
		t.Fatalf("v2 target %s", SchemaV2.Qualified())
	}
}

func TestRecordValues_MatchColumnCount(t *testing.T) {
	if n := len(RecordV1{}.Values()); n != len(SchemaV1.Columns)-1 {
		t.Fatalf("v1 values %d", n)
	}
	if n := len(RecordV2{}.Values()); n != len(SchemaV2.Columns)-1 {
		t.Fatalf("v2 values %d", n)
	}
}

func TestCreateTableSQL_V2(t *testing.T) {
	ddl := SchemaV2.CreateTableSQL()
	for _, frag := range []string{
		"CREATE TABLE IF NOT EXISTS vehicle_db.service_history",
		"    labourAmount Float64,",
		"    dealerNo UInt32,",
		"    typOfPayment Nullable(String)\n)",
		"ENGINE = MergeTree\nORDER BY vehicleNumber",
	} {
		if !strings.Contains(ddl, frag) {
			t.Fatalf("ddl missing %q:\n%s", frag, ddl)
		}
	}
	if SchemaV2.CreateDatabaseSQL() != "CREATE DATABASE IF NOT EXISTS vehicle_db" {
		t.Fatalf("db ddl %q", SchemaV2.CreateDatabaseSQL())
	}
	if SchemaV1.DropTableSQL() != "DROP TABLE IF EXISTS service_db.service_history" {
		t.Fatalf("drop %q", SchemaV1.DropTableSQL())
	}
}

func TestWithTarget(t *testing.T) {
	s, err := SchemaV2.WithTarget("fleet", "")
	if err != nil {
		t.Fatalf("WithTarget: %v", err)
	}
	if s.Qualified() != "fleet.service_history" {
		t.Fatalf("got %s", s.Qualified())
	}
	if SchemaV2.Database != "vehicle_db" {
		t.Fatalf("WithTarget mutated the package schema")
	}
	if _, err := SchemaV1.WithTarget("", "bad;drop"); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"v1", "V2", " v2 "} {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
	}
	if _, err := Lookup("v3"); err == nil {
		t.Fatalf("expected error for v3")
	}
}

func TestKind_Strings(t *testing.T) {
	if KindNullableText.CHType() != "Nullable(String)" || KindText.String() != "text" {
		t.Fatalf("unexpected kind rendering")
	}
	if Kind(99).String() != "kind(99)" {
		t.Fatalf("unknown kind rendering %q", Kind(99).String())
	}
}
