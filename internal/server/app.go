// Package server wires the taskkeeper application together: storage, token
// signing, services, rate limiting and the HTTP server, with graceful
// shutdown on SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/ratelimit"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	httpapi "github.com/dmitrijs2005/taskkeeper/internal/server/http"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "taskkeeper:ratelimit:"

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	redis   *redis.Client
	limiter *ratelimit.Limiter
	server  *httpapi.Server
}

// NewApp builds the application from c, logging to w. An empty DatabaseDSN
// selects in-memory storage; otherwise migrations are applied before the
// app is returned.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repos, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger, repos: repos}

	app.limiter = app.newLimiter()

	tokens := auth.NewTokenService([]byte(c.SecretKey))
	if c.SecretKey == "" {
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	accountService := services.NewAccountService(repos.Accounts(), c.PasswordHashCost)
	sessionService := services.NewSessionService(repos.RefreshTokens())
	authService := services.NewAuthService(accountService, sessionService, tokens, c)
	taskService := services.NewTaskService(repos.Tasks())

	handler := httpapi.NewHandler(authService, taskService, logger)
	guard := httpapi.NewGuard(tokens, accountService, logger)
	router := httpapi.NewRouter(handler, guard, app.limiter, logger)

	app.server = httpapi.NewServer(c.EndpointAddrHTTP, router, logger, c.ReadTimeout, c.WriteTimeout, c.ShutdownTimeout)

	return app, nil
}

func newRepositoryManager(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Info(ctx, "using in-memory storage")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	rm, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	logger.Info(ctx, "using postgres storage")
	return rm, nil
}

func (app *App) newLimiter() *ratelimit.Limiter {
	var counter ratelimit.Counter
	if app.config.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
		counter = ratelimit.NewRedisCounter(app.redis, rateLimitPrefix)
	} else {
		counter = ratelimit.NewMemoryCounter()
	}
	return ratelimit.New(counter, app.config.RateLimitRequests, app.config.RateLimitWindow)
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// releases storage and the Redis client.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	err := app.server.Run(ctx)
	app.close(context.Background())

	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	app.logger.Info(context.Background(), "app stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "error closing redis client", "error", err)
		}
	}
	if z, ok := app.logger.(interface{ Sync() error }); ok {
		_ = z.Sync()
	}
}

// Main loads configuration from the process arguments and environment and
// runs the app, logging to stdout.
func Main() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return 1
	}
	return 0
}
