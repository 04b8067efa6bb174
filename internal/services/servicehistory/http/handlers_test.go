package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	core "servicehistory/internal/core/servicehistory"
	perr "servicehistory/internal/platform/errors"
	phttp "servicehistory/internal/platform/net/http"
	"servicehistory/internal/platform/net/middleware"
	"servicehistory/internal/services/servicehistory/service"
)

type countingWriter struct {
	calls int
	rows  []core.Row
	err   error
}

func (w *countingWriter) WriteRows(_ context.Context, _ core.Schema, rows []core.Row) error {
	w.calls++
	w.rows = rows
	return w.err
}

const v1Payload = `{"code":200,"message":"Success","result":{"vehicleNumber":"KA01AB1234","serviceHistoryDetails":[
{"dealerName":"Metro","totalAmmount":"4500","dateOfSVC":"05/03/2024","dealerNo":"1021","serviceType":"PAID","noOfRo":"RO-7","mileAge":"12000","typeOfPayment":"CASH"},
{"dealerName":"Metro","totalAmmount":"900","dateOfSVC":"bad date","dealerNo":"1021","serviceType":"FREE","noOfRo":"RO-8","mileAge":"15000","typeOfPayment":"UPI"}]}}`

func v2Payload(mileage string) string {
	return `{"code":200,"message":"Success","result":{"vehicleNumber":"KA01AB1234","serviceHistoryDetails":[
{"labourAmount":1200.5,"partAmount":3300,"totalAmount":4500.5,"dateOfBill":"05/03/2024","repairOrderDate":"04/03/2024",
"dealerAddress":"MG Road","groupOfParent":"South","srVehicleCd":"SRV1","cdLoc":"BLR","nameOfSA":"Asha","noOfJobCard":"JC-9",
"dateOfSVC":"06/03/2024","noOfRO":"RO-1","dealerName":"Metro","dealerNo":1021,"mileage":` + mileage + `,"serviceType":"FREE",
"typOfPayment":null,"vendorExtra":"ignored"}]}}`
}

func newRouter(t *testing.T, w *countingWriter, schema string, o Options) phttp.Router {
	t.Helper()
	s := service.New(w, nil, service.Config{})
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Use(middleware.RequestID())
	if err := RegisterCompat(r, s, schema, o); err != nil {
		t.Fatalf("RegisterCompat: %v", err)
	}
	r.Route("/api/v1/service-history", func(sub phttp.Router) { Register(sub, s, o) })
	return r
}

func do(r phttp.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, req)
	return rr
}

func TestCompat_V2Success(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	rr := do(newRouter(t, w, "v2", Options{}), stdhttp.MethodPost, "/insert_service_history", v2Payload("18000"))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "success" || body["rows_inserted"] != float64(1) || len(body) != 2 {
		t.Fatalf("body = %v", body)
	}
	if w.calls != 1 {
		t.Fatalf("expected one insert, got %d", w.calls)
	}
	if p, ok := w.rows[0][18].(*string); !ok || p != nil {
		t.Fatalf("null payment type should stay NULL, got %#v", w.rows[0][18])
	}
}

func TestCompat_RejectsBadMileage(t *testing.T) {
	t.Parallel()

	for _, m := range []string{`"abc"`, `-5`, `12.5`} {
		w := &countingWriter{}
		rr := do(newRouter(t, w, "v2", Options{}), stdhttp.MethodPost, "/insert_service_history", v2Payload(m))
		if rr.Code != stdhttp.StatusBadRequest {
			t.Fatalf("mileage %s: status = %d", m, rr.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(rr.Body.Bytes(), &body)
		if !strings.Contains(body["detail"], "mileage") {
			t.Fatalf("mileage %s: detail = %q", m, body["detail"])
		}
		if w.calls != 0 {
			t.Fatalf("mileage %s: invalid payload reached storage", m)
		}
	}
}

func TestCompat_MissingVehicleRejected(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	body := `{"code":200,"message":"m","result":{"serviceHistoryDetails":[]}}`
	rr := do(newRouter(t, w, "v1", Options{}), stdhttp.MethodPost, "/insert_service_history", body)
	if rr.Code != stdhttp.StatusBadRequest || !strings.Contains(rr.Body.String(), "vehicleNumber") {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if w.calls != 0 {
		t.Fatalf("rejected payload reached storage")
	}
}

func TestCompat_StorageFailureIs500WithDetail(t *testing.T) {
	t.Parallel()

	w := &countingWriter{err: perr.Wrap(errors.New("connection refused"), perr.ErrorCodeDB, "insert into service_db.service_history")}
	rr := do(newRouter(t, w, "v1", Options{}), stdhttp.MethodPost, "/insert_service_history", v1Payload)
	if rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if !strings.Contains(body["detail"], "connection refused") {
		t.Fatalf("detail = %q", body["detail"])
	}
}

func TestCompat_OnlyTwoStatuses(t *testing.T) {
	t.Parallel()

	// the envelope keeps the precise status, the legacy route folds server faults into 500
	w := &countingWriter{err: perr.Unavailablef("clickhouse unreachable")}
	r := newRouter(t, w, "v1", Options{})

	if rr := do(r, stdhttp.MethodPost, "/insert_service_history", v1Payload); rr.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("compat status = %d", rr.Code)
	}
	if rr := do(r, stdhttp.MethodPost, "/api/v1/service-history/v1/insert_service_history", v1Payload); rr.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("envelope status = %d", rr.Code)
	}
	if rr := do(r, stdhttp.MethodPost, "/insert_service_history", `{"result":`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad json compat status = %d", rr.Code)
	}
}

func TestCompat_V1DatesNormalized(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	rr := do(newRouter(t, w, "V1", Options{}), stdhttp.MethodPost, "/insert_service_history", v1Payload)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if len(w.rows) != 2 || w.rows[0][3] != "2024-03-05" || w.rows[1][3] != "bad date" {
		t.Fatalf("rows = %v", w.rows)
	}
}

func TestCompat_EmptyAndTrailingBody(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	r := newRouter(t, w, "v1", Options{})
	if rr := do(r, stdhttp.MethodPost, "/insert_service_history", ""); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("empty body status = %d", rr.Code)
	}
	if rr := do(r, stdhttp.MethodPost, "/insert_service_history", v1Payload+`{}`); rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("trailing body status = %d", rr.Code)
	}
	if w.calls != 0 {
		t.Fatalf("bad bodies reached storage")
	}
}

func TestCompat_BodyLimit(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	rr := do(newRouter(t, w, "v1", Options{MaxBodyBytes: 64}), stdhttp.MethodPost, "/insert_service_history", v1Payload)
	if rr.Code != stdhttp.StatusBadRequest || w.calls != 0 {
		t.Fatalf("oversized body: status = %d calls=%d", rr.Code, w.calls)
	}
}

func TestRegisterCompat_UnknownSchema(t *testing.T) {
	t.Parallel()

	r := phttp.AdaptChi(chi.NewRouter())
	s := service.New(&countingWriter{}, nil, service.Config{})
	if err := RegisterCompat(r, s, "v3", Options{}); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

type envelopeBody struct {
	StatusCode int    `json:"status_code"`
	Code       int    `json:"code"`
	Error      string `json:"error"`
	RequestID  string `json:"request_id"`
	Data       struct {
		Schema       string `json:"schema"`
		Table        string `json:"table"`
		RowsInserted int    `json:"rows_inserted"`
	} `json:"data"`
}

func TestEnvelope_V1AndV2Routes(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	r := newRouter(t, w, "v2", Options{})

	rr := do(r, stdhttp.MethodPost, "/api/v1/service-history/v1/insert_service_history", v1Payload)
	var env envelopeBody
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rr.Code != stdhttp.StatusOK || env.Data.RowsInserted != 2 || env.Data.Schema != "v1" || env.RequestID == "" {
		t.Fatalf("v1 envelope = %+v", env)
	}

	rr = do(r, stdhttp.MethodPost, "/api/v1/service-history/v2/insert_service_history", v2Payload("18000"))
	env = envelopeBody{}
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	if rr.Code != stdhttp.StatusOK || env.Data.Table != "vehicle_db.service_history" || env.Data.RowsInserted != 1 {
		t.Fatalf("v2 envelope = %+v", env)
	}
	if w.calls != 2 {
		t.Fatalf("expected 2 inserts, got %d", w.calls)
	}
}

func TestEnvelope_ValidationError(t *testing.T) {
	t.Parallel()

	w := &countingWriter{}
	rr := do(newRouter(t, w, "v2", Options{}), stdhttp.MethodPost, "/api/v1/service-history/v2/insert_service_history", v2Payload(`"abc"`))
	var env envelopeBody
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	if rr.Code != stdhttp.StatusBadRequest || env.Code != int(perr.ErrorCodeValidation) || !strings.Contains(env.Error, "mileage") {
		t.Fatalf("status=%d envelope=%+v", rr.Code, env)
	}
}

func TestReceipts_Routes(t *testing.T) {
	t.Parallel()

	r := newRouter(t, &countingWriter{}, "v2", Options{})
	if rr := do(r, stdhttp.MethodGet, "/api/v1/service-history/receipts?limit=x", ""); rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad limit status = %d", rr.Code)
	}
	if rr := do(r, stdhttp.MethodGet, "/api/v1/service-history/receipts", ""); rr.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("disabled receipts status = %d", rr.Code)
	}
}
