package middleware

import (
	"net/http"
	"time"

	"servicehistory/internal/platform/logger"
	pnet "servicehistory/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long. Zero disables it
	Slow time.Duration
	// Log replaces the root logger. Request fields are still added
	Log *logger.Logger
}

// AccessLog writes one line per request. It also puts the chi request id on
// the logger context so logger.C picks it up downstream; mount after RequestID
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()))
			r = r.WithContext(ctx)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			took := time.Since(start)
			log := logger.C(ctx)
			if opt.Log != nil {
				l := opt.Log.With().Str("request_id", pnet.RequestID(ctx)).Logger()
				log = &l
			}
			evt := log.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				evt = log.Warn().Bool("slow", true)
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Int64("content_length", r.ContentLength).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
