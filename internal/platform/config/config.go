// Package config reads typed settings from the environment under a key prefix
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"servicehistory/internal/platform/logger"
)

// Conf is a view of the environment under prefix, e.g. "SERVICE_CLICKHOUSE_"
type Conf struct{ prefix string }

// New is the unprefixed root
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// Has reports a non-blank value for k
func (c Conf) Has(k string) bool { return c.lookup(k) != "" }

// may parses k with parse. Unset keys give def, unparsable ones log and give def
func may[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).
			Str("default", fmt.Sprint(def)).Msg("unparsable env value, using default")
		return def
	}
	return v
}

// MustString panics when k is unset
func (c Conf) MustString(k string) string {
	v := c.lookup(k)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	return v
}

// MayString is k or def
func (c Conf) MayString(k, def string) string {
	return may(c, k, def, func(s string) (string, error) { return s, nil })
}

// MayInt is k as an int or def
func (c Conf) MayInt(k string, def int) int { return may(c, k, def, strconv.Atoi) }

// MayInt64 is MayInt for byte sizes
func (c Conf) MayInt64(k string, def int64) int64 {
	return may(c, k, def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

// MayBool accepts what strconv.ParseBool does
func (c Conf) MayBool(k string, def bool) bool { return may(c, k, def, strconv.ParseBool) }

// MayDuration accepts time.ParseDuration syntax
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return may(c, k, def, time.ParseDuration)
}

// MayCSV splits k on commas and drops blanks. A list with nothing left is def
func (c Conf) MayCSV(k string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the allowed spelling k matches case-insensitively, or def
// when unset. Any other value panics
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	if v == "" {
		return ""
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("env value not allowed")
	return ""
}
