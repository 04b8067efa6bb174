package modkit

import (
	phttp "servicehistory/internal/platform/net/http"
)

// Module is a feature that owns a route prefix under /api/v1
type Module interface {
	// Name labels the module in logs
	Name() string
	// Prefix is the path the module mounts under, relative to the API root
	Prefix() string
	// MountRoutes attaches the module's routes beneath r at Prefix
	MountRoutes(r phttp.Router)
}
