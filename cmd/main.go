package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/adapters/http/api"
	"github.com/okian/crease/internal/adapters/http/swagger"
	"github.com/okian/crease/internal/adapters/repository"
	app "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/config"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (.env -> defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWith(os.Stdout, logger.Format(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "crease stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

// run starts the service and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return errors.Wrap(err, "start service")
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "http server")
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService wires the dataset source, the report engine and, for MySQL
// with pushdown enabled, the SQL backend.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	engine := reports.New(
		reports.WithTeam1OnlySeasons(cfg.Team1OnlySeasons),
		reports.WithDefaultMinBalls(cfg.MinBalls),
	)
	opts := []app.Option{
		app.WithLogger(log),
		app.WithEngine(engine),
		app.WithDefaultSeason(cfg.DefaultSeason),
	}

	switch cfg.Source {
	case config.SourceMySQL:
		db, err := repository.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithSource(repository.NewMySQLSource(db)))
		if cfg.Pushdown {
			opts = append(opts, app.WithPushdown(app.BackendSQL, repository.NewSQLReports(db,
				repository.WithSQLTeam1OnlySeasons(cfg.Team1OnlySeasons),
				repository.WithSQLDefaultMinBalls(cfg.MinBalls),
			)))
		}
	default:
		opts = append(opts, app.WithSource(repository.NewCSVSource(cfg.DataDir)))
	}
	return app.New(opts...), nil
}

// newHandler registers the API and docs routes.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithMaxLookupLimit(cfg.MaxLookupLimit),
		api.WithLogger(log),
	)
	apiServer.Register(ctx, mux)
	return apiServer.Handler(mux)
}
