package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"servicehistory/internal/platform/config"
	"servicehistory/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// RequestTimeout cancels the request context, bounding the storage call
	RequestTimeout time.Duration
	// SlowRequest logs requests at warn level once they take this long
	SlowRequest time.Duration
	CORS        middleware.CORSOptions
}

// StackOptionsFromConfig reads REQUEST_TIMEOUT, SLOW_REQUEST and CORS_ORIGINS from cfg
func StackOptionsFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		RequestTimeout: cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest:    cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		CORS: middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		},
	}
}

// CommonStack returns the baseline middleware slice for API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability, outside recovery so panics are logged with their 500
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/ping"),
		middleware.StripSlashes(),
		middleware.Timeout(o.RequestTimeout),
	}
}
