package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ogdevs/backoffice-client/internal/logger"
)

const defaultShutdownTimeout = 5 * time.Second

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, requestTimeout time.Duration, logger *logger.Logger) *httpServer {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: requestTimeout,
	}
	if requestTimeout > 0 {
		srv.Handler = http.TimeoutHandler(handler, requestTimeout, "request timed out")
	}

	return &httpServer{
		server:          srv,
		shutdownTimeout: defaultShutdownTimeout,
		ready:           make(chan struct{}),
		logger:          logger,
	}
}

func (h *httpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("status server listen on %s: %w", h.server.Addr, err)
	}
	h.mu.Lock()
	h.listener = ln
	h.mu.Unlock()
	close(h.ready)

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("func", "httpServer.Run").Str("address", ln.Addr().String()).Msg("status server listening")
		errCh <- h.server.Serve(ln)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err = h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Err(err).Str("func", "httpServer.Run").Msg("status server shutdown")
		return fmt.Errorf("status server shutdown: %w", err)
	}
	h.logger.Info().Str("func", "httpServer.Run").Msg("status server shut down gracefully")
	return nil
}

// Addr blocks until the listener is bound.
func (h *httpServer) Addr() string {
	<-h.ready
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listener.Addr().String()
}
