package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sghaida/verchain/internal/logger"
)

// Server runs the router with graceful shutdown.
type Server struct {
	Engine *gin.Engine

	addr            string
	shutdownTimeout time.Duration
	log             *logger.Logger
}

// NewServer builds the router for addr; nothing listens until Run or Serve.
func NewServer(addr string, shutdownTimeout time.Duration, cfg RouterConfig) (*Server, error) {
	engine, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		Engine:          engine,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		log:             cfg.Logger,
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within the
// configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	if s.log != nil {
		s.log.Info("server listening", "addr", ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if s.log != nil {
		s.log.Info("server shutting down", "timeout_ms", s.shutdownTimeout.Milliseconds())
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
