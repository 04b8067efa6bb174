package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"servicehistory/internal/platform/config"
	perr "servicehistory/internal/platform/errors"
	"servicehistory/internal/platform/logger"
	pnet "servicehistory/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	addr         string
	mux          *chi.Mux
	srv          *stdhttp.Server
	drainTimeout time.Duration
}

// NewServer builds the API server from CORE_API_ settings: PORT, READ_TIMEOUT,
// WRITE_TIMEOUT and SHUTDOWN_TIMEOUT. Unknown routes and methods answer in the JSON envelope
func NewServer(cfg config.Conf) *Server {
	addr := cfg.MayString("PORT", ":8000")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr // bare port, e.g. CORE_API_PORT=8000
	}
	m := chi.NewRouter()
	m.NotFound(Handle(func(*stdhttp.Request) Response {
		return Error(perr.New(perr.ErrorCodeNotFound, "route not found"))
	}))
	m.MethodNotAllowed(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		JSON(w, stdhttp.StatusMethodNotAllowed, Envelope{
			StatusCode: stdhttp.StatusMethodNotAllowed,
			Status:     stdhttp.StatusText(stdhttp.StatusMethodNotAllowed),
			Error:      r.Method + " is not allowed on " + r.URL.Path,
			RequestID:  pnet.RequestID(r.Context()),
		})
	})
	return &Server{
		addr:         addr,
		mux:          m,
		drainTimeout: cfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
		},
	}
}

// Router exposes the server mux for mounting
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until ctx is done or the listener fails.
// On ctx cancellation in-flight requests get drainTimeout to finish
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, stdhttp.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("drain", s.drainTimeout).Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	return <-errc
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
