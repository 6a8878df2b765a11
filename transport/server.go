package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-repo-activity/core"
)

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
)

// Server hosts the HTTP surface of the activity feed.
type Server struct {
	handlers *Handlers
	logger   core.Logger
	httpSrv  *http.Server
}

func NewServer(addr string, handlers *Handlers, logger core.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", handlers.handleWebhook)
	mux.HandleFunc("/api/events", handlers.handleEvents)
	mux.HandleFunc("/", handlers.handleIndex)

	return &Server{
		handlers: handlers,
		logger:   logger,
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe blocks until the listener fails or Shutdown completes.
func (s *Server) ListenAndServe() error {
	if s.logger != nil {
		s.logger.Info("http server listening", "addr", s.httpSrv.Addr)
	}
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline. Callers
// without a deadline get defaultShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.httpSrv == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}
	if s.logger != nil {
		s.logger.Info("http server shutting down")
	}
	return s.httpSrv.Shutdown(ctx)
}
