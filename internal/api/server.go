package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// httpServer matches *http.Server's lifecycle methods, letting ServerService
// be tested against a fake without a real listener.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// ServerService wraps an HTTP server as a suture.Service, translating
// http.Server's blocking ListenAndServe into suture's context-aware Serve.
type ServerService struct {
	server          httpServer
	shutdownTimeout time.Duration
}

// NewServerService wraps server as a supervised service.
func NewServerService(server *http.Server, shutdownTimeout time.Duration) *ServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &ServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (s *ServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer; suture uses it to identify the service
// in log messages.
func (s *ServerService) String() string {
	return "query-api-http-server"
}
