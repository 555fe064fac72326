// Package server initializes and runs the KnotHost API: it opens and
// migrates the database, builds the services and serves HTTP until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/auth"
	"github.com/knothost/siteapi/internal/server/config"
	"github.com/knothost/siteapi/internal/server/httpapi"
	"github.com/knothost/siteapi/internal/server/repositories/repomanager"
	"github.com/knothost/siteapi/internal/server/services"
)

// Seams for tests.
var (
	logOutput      io.Writer = os.Stdout
	openDB                   = repomanager.OpenDB
	newRepoManager           = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	contactService *services.ContactService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT secret is not configured; using the insecure development default")
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.PasswordHashCost)
	tokens := auth.NewJWTIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	mailer := services.NewLogMailer(logger)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, hasher, tokens, mailer, logger),
		contactService: services.NewContactService(db, rm, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives,
// then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	srv := httpapi.NewServer(httpapi.Options{
		Address:         app.config.HTTPAddr,
		AllowedOrigins:  app.config.AllowedOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, app.userService, app.contactService)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server failed", "error", err)
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")

	return runErr
}
