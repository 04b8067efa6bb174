package ch

import (
	"os"
	"runtime/debug"
	"strings"

	"servicehistory/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const unknown = "unknown"

// BuildClientInfo names this process in system.query_log. role is "api" or
// "migrate", tag defaults to the linked build version
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	host, _ := os.Hostname()
	product := func(name, v string) struct{ Name, Version string } {
		if v = strings.TrimSpace(v); v == "" {
			v = unknown
		}
		return struct{ Name, Version string }{name, v}
	}
	if strings.TrimSpace(tag) == "" {
		tag = bi.Version
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		product("servicehistory", tag),
		product("role", role),
		product("go", bi.GoVersion),
		product("commit", commitOf(bi.Commit)),
		product("host", host),
	}}
}

// commitOf prefers the linked commit, then the VCS stamp go build records
func commitOf(linked string) string {
	if linked != "" && linked != "none" {
		return linked
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return unknown
}
