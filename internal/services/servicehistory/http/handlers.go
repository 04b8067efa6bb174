// Package http provides the service history ingest transport
package http

import (
	"context"
	stdhttp "net/http"
	"strconv"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/modkit/httpkit"
	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/net/http/bind"
	"servicehistory/internal/services/servicehistory/domain"
	svc "servicehistory/internal/services/servicehistory/service"
)

// Options controls request binding
type Options struct {
	// MaxBodyBytes caps the payload read from the request, 0 means the binder default
	MaxBodyBytes int64
}

type handlers struct {
	svc  svc.Service
	opts Options
}

// Register mounts the versioned ingest routes and the receipts listing
func Register(r httpkit.Router, s svc.Service, o Options) {
	h := &handlers{svc: s, opts: o}
	r.Post("/v1/insert_service_history", httpkit.JSON(envelope[core.RecordV1](h.svc.IngestV1), h.bindOptions()))
	r.Post("/v2/insert_service_history", httpkit.JSON(envelope[core.RecordV2](h.svc.IngestV2), h.bindOptions()))
	httpkit.Get(r, "/receipts", h.receipts)
}

// RegisterCompat mounts POST /insert_service_history with the original wire format.
// schema picks which payload version the route accepts
func RegisterCompat(r httpkit.Router, s svc.Service, schema string, o Options) error {
	sc, err := core.Lookup(schema)
	if err != nil {
		return err
	}
	h := &handlers{svc: s, opts: o}
	switch sc.Name {
	case core.SchemaV1.Name:
		r.Post("/insert_service_history", compat[core.RecordV1](h, h.svc.IngestV1))
	default:
		r.Post("/insert_service_history", compat[core.RecordV2](h, h.svc.IngestV2))
	}
	return nil
}

func (h *handlers) bindOptions() bind.JSONOptions {
	o := bind.DefaultJSONOptions()
	// upstream payloads carry fields we do not store
	o.DisallowUnknown = false
	if h.opts.MaxBodyBytes > 0 {
		o.MaxBytes = h.opts.MaxBodyBytes
	}
	return o
}

type ingestFunc[R core.Record] func(context.Context, core.Request[R]) (domain.InsertResult, error)

// parseAndIngest binds the payload itself so the compat route keeps its own error body
func parseAndIngest[R core.Record](h *handlers, r *stdhttp.Request, fn ingestFunc[R]) (domain.InsertResult, error) {
	in, err := bind.ParseJSON[core.Request[R]](r, h.bindOptions())
	if err != nil {
		return domain.InsertResult{}, err
	}
	return fn(r.Context(), in)
}

// swagger:route POST /service-history/{version}/insert_service_history ServiceHistory insertServiceHistory
// @Summary Insert a vehicle's service history
// @Tags ServiceHistory
// @Accept json
// @Produce json
// @Success 200 {object} domain.InsertResult "ok"
// @Router /service-history/v1/insert_service_history [post]
// @Router /service-history/v2/insert_service_history [post]
func envelope[R core.Record](fn ingestFunc[R]) func(*stdhttp.Request, core.Request[R]) (any, error) {
	return func(r *stdhttp.Request, in core.Request[R]) (any, error) {
		return fn(r.Context(), in)
	}
}

// swagger:route POST /insert_service_history ServiceHistory insertServiceHistoryCompat
// @Summary Insert a vehicle's service history (original wire format)
// @Tags ServiceHistory
// @Accept json
// @Produce json
// @Success 200 {object} domain.CompatSuccess "ok"
// @Failure 400 {object} domain.CompatError "invalid payload"
// @Failure 500 {object} domain.CompatError "insert failed"
// @Router /insert_service_history [post]
func compat[R core.Record](h *handlers, fn ingestFunc[R]) httpkit.Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		res, err := parseAndIngest(h, r, fn)
		if err != nil {
			// legacy clients only tell bad input from failed inserts
			status := stdhttp.StatusInternalServerError
			if perr.IsClientError(err) {
				status = stdhttp.StatusBadRequest
			}
			httpkit.WriteJSON(w, status, domain.CompatError{Detail: err.Error()})
			return
		}
		httpkit.WriteJSON(w, stdhttp.StatusOK, domain.CompatSuccess{Status: "success", RowsInserted: res.RowsInserted})
	}
}

// swagger:route GET /service-history/receipts ServiceHistory serviceHistoryReceipts
// @Summary Recent ingest receipts
// @Tags ServiceHistory
// @Produce json
// @Param vehicle_number query string false "Vehicle filter"
// @Param limit query int false "Max receipts"
// @Success 200 {array} domain.Receipt "ok"
// @Router /service-history/receipts [get]
func (h *handlers) receipts(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.ReceiptsInput{Vehicle: q.Get("vehicle_number")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a non-negative integer"), "limit")
		}
		in.Limit = n
	}
	return h.svc.Receipts(r.Context(), in)
}
