package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	readTimeout     = 15 * time.Second
	shutdownTimeout = 20 * time.Second
)

// Server wraps the HTTP server with graceful shutdown support
type Server struct {
	server *http.Server
}

// NewServer creates a server on addr. The write timeout leaves room for
// a decision that runs to its full decide-timeout.
func NewServer(handler http.Handler, addr string, decideTimeout time.Duration) *Server {
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: decideTimeout + readTimeout,
		},
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.server.Addr).Msg("starting-http-server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("server error: %w", err)
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting-down-http-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}
