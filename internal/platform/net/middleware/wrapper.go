// Package middleware adapts chi and go-chi/cors middleware so callers never import chi
package middleware

import (
	"net/http"
	"time"

	pstrings "servicehistory/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-Id or mints one, then stores it on the context
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
func RealIP() Middleware { return chimw.RealIP }

// Timeout bounds the request context. Handlers that outlive it get a 504
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache marks every response as uncacheable
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips or deflates responses at level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// StripSlashes routes /x/ as /x
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing, for load balancers
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
)

// CORSOptions are the go-chi/cors settings we expose. Empty method and header lists get defaults
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS builds a go-chi/cors handler from o
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
