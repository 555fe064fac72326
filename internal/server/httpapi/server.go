// Package httpapi exposes the account and contact services as a JSON REST
// API over chi.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/models"
	"github.com/knothost/siteapi/internal/server/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// AuthService is the account behaviour the HTTP layer depends on.
type AuthService interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, password string) error
	WhoAmI(ctx context.Context, token string) (*models.User, error)
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, in services.ContactInput) (*models.Message, error)
}

// Options configures a Server.
type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts    Options
	logger  logging.Logger
	auth    AuthService
	contact ContactService
}

func NewServer(opts Options, l logging.Logger, as AuthService, cs ContactService) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		opts:    opts,
		logger:  l.With("module", "http_server"),
		auth:    as,
		contact: cs,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listen)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
