package reportcli

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/adapters/repository"
	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
)

// Run loads the dataset, runs the configured reports and writes them to out.
func Run(ctx context.Context, config *Config, out io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}
	start := time.Now()
	log := logger.Get()

	svc, err := newService(config, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return errors.Wrap(err, "load dataset")
	}
	defer svc.Stop()

	params := reports.Params{Season: config.Season, MinBalls: config.MinBalls}
	var results []types.ReportResult
	if config.Report != "" {
		res, err := svc.Run(ctx, config.Report, params)
		if err != nil {
			return err
		}
		results = []types.ReportResult{res}
	} else {
		batch, err := svc.RunAll(ctx, params)
		if err != nil {
			return err
		}
		results = batch.Results
	}

	if err := write(out, config.Format, results); err != nil {
		return errors.Wrap(err, "write reports")
	}
	log.Debug(ctx, "reports written",
		logger.Int("reports", len(results)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

func newService(config *Config, log logger.Logger) (*service.Service, error) {
	engine := reports.New(
		reports.WithTeam1OnlySeasons(config.Team1OnlySeasons),
		reports.WithDefaultMinBalls(config.MinBalls),
	)
	opts := []service.Option{
		service.WithLogger(log),
		service.WithEngine(engine),
	}
	if config.Season > 0 {
		opts = append(opts, service.WithDefaultSeason(config.Season))
	}

	if config.MySQLDSN == "" {
		return service.New(append(opts, service.WithSource(repository.NewCSVSource(config.DataDir)))...), nil
	}
	db, err := repository.OpenMySQL(config.MySQLDSN)
	if err != nil {
		return nil, err
	}
	opts = append(opts, service.WithSource(repository.NewMySQLSource(db)))
	if config.Pushdown {
		opts = append(opts, service.WithPushdown(service.BackendSQL, repository.NewSQLReports(db,
			repository.WithSQLTeam1OnlySeasons(config.Team1OnlySeasons),
			repository.WithSQLDefaultMinBalls(config.MinBalls),
		)))
	}
	return service.New(opts...), nil
}

func write(out io.Writer, format string, results []types.ReportResult) error {
	if format == FormatJSON {
		if len(results) == 1 {
			return renderJSON(out, results[0])
		}
		return renderJSON(out, results)
	}
	for _, res := range results {
		if err := renderTable(out, res); err != nil {
			return err
		}
	}
	return nil
}
