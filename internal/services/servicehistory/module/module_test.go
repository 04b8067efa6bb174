package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/modkit"
	"servicehistory/internal/platform/config"
	phttp "servicehistory/internal/platform/net/http"
	"servicehistory/internal/platform/store"
)

type fakeCH struct{ inserts int }

func (f *fakeCH) Insert(context.Context, string, []string, [][]any) error {
	f.inserts++
	return nil
}
func (f *fakeCH) Exec(context.Context, string, ...any) error               { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Ping(context.Context) error                               { return nil }
func (f *fakeCH) Close() error                                             { return nil }

func TestFromConfig_Defaults(t *testing.T) {
	o, err := FromConfig(config.New())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if o.DefaultSchema != "v2" || o.MaxBodyBytes != 8<<20 || o.ReceiptLimit != 200 {
		t.Fatalf("defaults = %+v", o)
	}
	if o.V1.Qualified() != "service_db.service_history" || o.V2.Qualified() != "vehicle_db.service_history" {
		t.Fatalf("targets = %s %s", o.V1.Qualified(), o.V2.Qualified())
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("CORE_API_DEFAULT_SCHEMA", "V1")
	t.Setenv("CORE_API_MAX_BODY_BYTES", "1024")
	t.Setenv("SERVICE_CLICKHOUSE_V2_DATABASE", "staging")
	t.Setenv("SERVICE_CLICKHOUSE_V2_TABLE", "history")

	o, err := FromConfig(config.New())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if o.DefaultSchema != "v1" || o.MaxBodyBytes != 1024 {
		t.Fatalf("overrides = %+v", o)
	}
	if o.V2.Qualified() != "staging.history" || o.V1.Qualified() != "service_db.service_history" {
		t.Fatalf("targets = %s %s", o.V1.Qualified(), o.V2.Qualified())
	}
}

func TestFromConfig_RejectsBadIdentifier(t *testing.T) {
	t.Setenv("SERVICE_CLICKHOUSE_V1_TABLE", "history; drop table x")
	if _, err := FromConfig(config.New()); err == nil {
		t.Fatalf("expected error for unsafe table name")
	}
}

func TestModule_MountsRoutes(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	m := New(modkit.Deps{Cfg: config.New(), CH: ch}, Options{DefaultSchema: "v1", V1: core.SchemaV1, V2: core.SchemaV2})
	if m.Name() != "servicehistory" || m.Prefix() != "/service-history" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	if err := m.MountCompat(r); err != nil {
		t.Fatalf("MountCompat: %v", err)
	}
	r.Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })

	body := `{"code":1,"message":"m","result":{"vehicleNumber":"KA01","serviceHistoryDetails":[
{"dealerName":"d","totalAmmount":"1","dateOfSVC":"1/1/2024","dealerNo":"1","serviceType":"s","noOfRo":"r","mileAge":"1","typeOfPayment":"p"}]}}`
	for _, path := range []string{"/insert_service_history", "/api/v1/service-history/v1/insert_service_history"} {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body)))
		if rr.Code != stdhttp.StatusOK {
			t.Fatalf("%s: status=%d body=%s", path, rr.Code, rr.Body.String())
		}
	}
	if ch.inserts != 2 {
		t.Fatalf("expected 2 inserts, got %d", ch.inserts)
	}
}

func TestDescribeCompat(t *testing.T) {
	t.Parallel()

	spec := func() map[string]any {
		return map[string]any{"paths": map[string]any{"/insert_service_history": map[string]any{"post": map[string]any{
			"requestBody": map[string]any{"content": map[string]any{"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/RequestV2"},
			}}},
		}}}}
	}
	ref := func(s map[string]any) any {
		return s["paths"].(map[string]any)["/insert_service_history"].(map[string]any)["post"].(map[string]any)["requestBody"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["$ref"]
	}

	s := spec()
	New(modkit.Deps{CH: &fakeCH{}}, Options{DefaultSchema: "v1"}).DescribeCompat(s)
	if ref(s) != "#/components/schemas/RequestV1" {
		t.Fatalf("ref = %v", ref(s))
	}

	s = spec()
	New(modkit.Deps{CH: &fakeCH{}}, Options{DefaultSchema: "v2"}).DescribeCompat(s)
	if ref(s) != "#/components/schemas/RequestV2" {
		t.Fatalf("ref = %v", ref(s))
	}

	// missing path is left alone
	New(modkit.Deps{CH: &fakeCH{}}, Options{}).DescribeCompat(map[string]any{})
}

func TestModule_PrefixOverride(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{CH: &fakeCH{}}, Options{DefaultSchema: "v2"}, modkit.WithPrefix("history/"))
	if m.Prefix() != "/history" {
		t.Fatalf("prefix = %q", m.Prefix())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/history/receipts", nil))
	// no Postgres, so the listing is mounted but unavailable
	if rr.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
}
