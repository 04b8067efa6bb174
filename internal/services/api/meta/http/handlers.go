// Package http serves health, readiness, build and schema information
package http

import (
	stdctx "context"
	"net/http"
	"time"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/core/version"
	"servicehistory/internal/modkit/httpkit"
	"servicehistory/internal/modkit/repokit"
)

// Dependency is one backend checked by /ready. A nil Pinger is not configured
type Dependency struct {
	Name     string
	Required bool
	Pinger   repokit.Pinger
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Dependency
	Schemas     []core.Schema

	// ReadyTimeout bounds all pings together, default 2s
	ReadyTimeout time.Duration
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/schemas", h.schemas)
}

// Readiness values, per check and overall
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusDegraded = "degraded"
)

// HealthResponse is the /health body
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"servicehistory-api"`
	Started string `json:"started" example:"2026-03-05T10:00:00Z"`
	Now     string `json:"now" example:"2026-03-05T10:05:00Z"`
}

// ReadyCheck is the outcome for one backend
type ReadyCheck struct {
	Name     string `json:"name" example:"ch"`
	Required bool   `json:"required" example:"true"`
	Status   string `json:"status" example:"ok" enums:"ok,fail,skipped"`
	Error    string `json:"error,omitempty" example:"dial tcp 127.0.0.1:9000: connect: connection refused"`
}

// ReadyResponse is the /ready body
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,degraded,fail"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2026-03-05T10:05:00Z"`
}

// ServiceResponse is the /service body. Uptime is in seconds
type ServiceResponse struct {
	Name    string `json:"name" example:"servicehistory-api"`
	Started string `json:"started" example:"2026-03-05T10:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

// SchemaColumn is one destination column
type SchemaColumn struct {
	Name string `json:"name" example:"dateOfSVC"`
	Type string `json:"type" example:"String"`
	Date bool   `json:"date,omitempty"`
}

// SchemaResponse is one payload version and the table it lands in
type SchemaResponse struct {
	Name    string         `json:"name" example:"v2"`
	Table   string         `json:"table" example:"vehicle_db.service_history"`
	Columns []SchemaColumn `json:"columns"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness of the storage backends
// @Description A required backend that is not ok fails the check with 503. An optional one only degrades it
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok or degraded"
// @Failure 503 {object} ReadyResponse "a required backend is down"
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Status: StatusOK, Checks: make([]ReadyCheck, 0, len(h.Backends))}
	for _, d := range h.Backends {
		c := ReadyCheck{Name: d.Name, Required: d.Required, Status: StatusSkipped}
		if d.Pinger != nil {
			c.Status = StatusOK
			if err := d.Pinger.Ping(ctx); err != nil {
				c.Status, c.Error = StatusFail, err.Error()
			}
		}
		switch {
		case d.Required && c.Status != StatusOK:
			out.Status = StatusFail
		case c.Status == StatusFail && out.Status == StatusOK:
			out.Status = StatusDegraded
		}
		out.Checks = append(out.Checks, c)
	}
	out.Now = stamp(time.Now())

	if out.Status == StatusFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Payload versions and their destination columns
// @Tags Meta
// @Produce json
// @Success 200 {array} SchemaResponse
// @Router /meta/schemas [get]
func (h handlers) schemas(*http.Request) (any, error) {
	out := make([]SchemaResponse, len(h.Schemas))
	for i, s := range h.Schemas {
		out[i] = SchemaResponse{Name: s.Name, Table: s.Qualified(), Columns: make([]SchemaColumn, len(s.Columns))}
		for j, c := range s.Columns {
			out[i].Columns[j] = SchemaColumn{Name: c.Name, Type: c.Kind.CHType(), Date: c.Date}
		}
	}
	return out, nil
}
