package interaction

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// FormShell serves the add-room form, table and downloads over HTTP.
type FormShell struct {
	srv    *http.Server
	logger *zap.Logger

	mu       sync.Mutex
	addr     net.Addr
	ready    chan struct{}
	readyErr error
}

func NewFormShell(addr string, handler http.Handler, logger *zap.Logger) *FormShell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormShell{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      20 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once Run has bound its listener or failed to.
func (s *FormShell) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound listen address; nil before Ready.
func (s *FormShell) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// A listen failure is returned immediately.
func (s *FormShell) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		s.logger.Error("listen failed", zap.String("addr", s.srv.Addr), zap.Error(err))
		close(s.ready)
		return err
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	close(s.ready)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.Stringer("addr", ln.Addr()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received, shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
