// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/core/version"
	modkit "servicehistory/internal/modkit"
	"servicehistory/internal/modkit/httpkit"
	"servicehistory/internal/modkit/repokit"
	str "servicehistory/internal/platform/strings"

	metahttp "servicehistory/internal/services/api/meta/http"
)

// Module implements modkit.Module for health, readiness and build info
type Module struct {
	name   string
	prefix string
	deps   metahttp.Deps
}

var _ modkit.Module = (*Module)(nil)

// New constructs a meta module. schemas are the destination descriptors in effect
func New(deps modkit.Deps, schemas []core.Schema, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	md := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Schemas:     schemas,
		Backends: []metahttp.Dependency{
			{Name: "ch", Required: true, Pinger: pingerOf(deps.CH)},
			{Name: "pg", Pinger: pingerOf(deps.PG)},
		},
	}
	return &Module{name: b.Name, prefix: b.Prefix, deps: md}
}

// pingerOf keeps a nil interface nil so the check reports skipped
func pingerOf(v any) repokit.Pinger {
	if p, ok := v.(repokit.Pinger); ok && p != nil {
		return p
	}
	return nil
}

// MountRoutes mounts the meta endpoints under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
