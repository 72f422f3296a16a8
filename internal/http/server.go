package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type ServerOptions struct {
	Addr        string
	ReadTimeout time.Duration
	// ShutdownTimeout bounds the graceful drain. Zero means ten seconds.
	ShutdownTimeout time.Duration
}

type Server struct {
	Engine *gin.Engine

	srv             *nethttp.Server
	log             *logger.Logger
	shutdownTimeout time.Duration
}

// NewServer leaves WriteTimeout unset: stream routes hold their response open.
func NewServer(log *logger.Logger, opts ServerOptions, cfg RouterConfig) *Server {
	if log == nil {
		log = logger.Nop()
	}
	engine := NewRouter(cfg)
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &Server{
		Engine: engine,
		srv: &nethttp.Server{
			Addr:              opts.Addr,
			Handler:           engine,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:             log.With("component", "HTTPServer"),
		shutdownTimeout: shutdownTimeout,
	}
}

// OnShutdown registers fn to run when shutdown starts, before connections
// drain. Stream subscriptions are ended here so their handlers return.
func (s *Server) OnShutdown(fn func()) {
	s.srv.RegisterOnShutdown(fn)
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
