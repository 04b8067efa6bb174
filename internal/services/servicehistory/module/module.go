// Package module wires service history ingest into the API using modkit
package module

import (
	"strings"

	core "servicehistory/internal/core/servicehistory"
	modkit "servicehistory/internal/modkit"
	"servicehistory/internal/modkit/httpkit"
	"servicehistory/internal/modkit/repokit"
	str "servicehistory/internal/platform/strings"
	shhttp "servicehistory/internal/services/servicehistory/http"
	shrepo "servicehistory/internal/services/servicehistory/repo"
	shsvc "servicehistory/internal/services/servicehistory/service"
)

// Module implements modkit.Module for service history ingest
type Module struct {
	opts   Options
	name   string
	prefix string

	svc shsvc.Service
}

var _ modkit.Module = (*Module)(nil)

// New constructs the service history module. deps.CH is required, deps.PG enables receipts
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("servicehistory"),
		modkit.WithPrefix("/service-history"),
	}, opts...)...)

	var receipts shrepo.Receipts
	if deps.PG != nil {
		receipts = repokit.MustBind(shrepo.NewPG(), deps.PG)
	}
	svc := shsvc.New(shrepo.NewCH(deps.CH), receipts, shsvc.Config{
		V1:           o.V1,
		V2:           o.V2,
		ReceiptLimit: o.ReceiptLimit,
	})

	return &Module{
		opts:   o,
		name:   b.Name,
		prefix: b.Prefix,
		svc:    svc,
	}
}

func (m *Module) httpOptions() shhttp.Options {
	return shhttp.Options{MaxBodyBytes: m.opts.MaxBodyBytes}
}

// MountRoutes mounts the versioned insert routes and receipts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		shhttp.Register(rr, m.svc, m.httpOptions())
	})
}

// MountCompat mounts the unversioned legacy insert route on r
func (m *Module) MountCompat(r httpkit.Router) error {
	return shhttp.RegisterCompat(r, m.svc, m.opts.DefaultSchema, m.httpOptions())
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// DescribeCompat points the legacy route's documented body at the configured payload version
func (m *Module) DescribeCompat(spec map[string]any) {
	ref := "#/components/schemas/RequestV2"
	if strings.EqualFold(m.opts.DefaultSchema, core.SchemaV1.Name) {
		ref = "#/components/schemas/RequestV1"
	}
	node := spec
	for _, k := range []string{"paths", "/insert_service_history", "post", "requestBody", "content", "application/json", "schema"} {
		next, ok := node[k].(map[string]any)
		if !ok {
			return
		}
		node = next
	}
	node["$ref"] = ref
}
