// Package version reports build information stamped at link time
package version

import "runtime"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns the build information.
// Set with -ldflags "-X 'servicehistory/internal/core/version.version=v0.1.0'
// -X 'servicehistory/internal/core/version.commit=abcd' -X 'servicehistory/internal/core/version.date=2026-01-02'"
func Info() BuildInfo {
	return BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

var (
	service = "servicehistory-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
