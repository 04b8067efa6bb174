// Package api composes the HTTP API from modules
package api

import (
	"errors"

	"servicehistory/internal/platform/config"
	phttp "servicehistory/internal/platform/net/http"
	"servicehistory/internal/platform/store"

	core "servicehistory/internal/core/servicehistory"
	"servicehistory/internal/modkit"
	"servicehistory/internal/modkit/httpkit"
	"servicehistory/internal/modkit/swaggerkit"

	metamod "servicehistory/internal/services/api/meta/module"
	shmod "servicehistory/internal/services/servicehistory/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API onto the given router.
// The legacy insert route lives at the root, everything else under /api/v1
func Mount(r phttp.Router, opt Options) error {
	if opt.Store == nil || opt.Store.CH == nil {
		return errors.New("api: clickhouse store is required")
	}

	deps := modkit.Deps{
		Log: opt.Store.Log,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	shOpts, err := shmod.FromConfig(deps.Cfg)
	if err != nil {
		return err
	}
	history := shmod.New(deps, shOpts)

	mods := []modkit.Module{
		metamod.New(deps, []core.Schema{shOpts.V1, shOpts.V2}),
		history,
	}

	stack := httpkit.CommonStack(httpkit.StackOptionsFromConfig(opt.Config.Prefix("CORE_API_")))

	swaggerkit.Register(history.DescribeCompat)
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	r.Group(func(root phttp.Router) {
		root.Use(stack...)
		err = history.MountCompat(root)
	})
	if err != nil {
		return err
	}

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Str("prefix", "/api/v1"+m.Prefix()).Msg("module mounted")
		}
	})
	return nil
}
