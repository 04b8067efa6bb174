package httpkit

import "net/http"

// APIV1Prefix is where every envelope route lives
const APIV1Prefix = "/api/v1"

// MountAPIV1 opens the /api/v1 scope, installs mw on it and hands it to mount.
// Routes outside the scope, like the legacy ingest path, never see mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIV1Prefix, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
