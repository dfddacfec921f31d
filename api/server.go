// Package api assembles the HTTP server for the storefront backend.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/tailorline/storefront/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server runs the HTTP handler and releases its resources on shutdown.
type Server struct {
	http    *http.Server
	logg    *logger.Logger
	closers []io.Closer
}

func NewServer(addr string, handler http.Handler, logg *logger.Logger, closers ...io.Closer) *Server {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		logg:    logg,
		closers: closers,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes every resource. All shutdown failures are reported together.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logg.Info(s.logg.WithField(ctx, "addr", s.http.Addr), "api.listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.logg.Info(ctx, "api.shutting_down")
	err := multierr.Append(runErr, s.http.Shutdown(shutdownCtx))
	for _, c := range s.closers {
		if c != nil {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
