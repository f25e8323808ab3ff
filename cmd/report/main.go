package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/reportcli"
	"github.com/okian/crease/pkg/logger"
)

const defaultSeason = 2021

func main() {
	var (
		dataDir   = flag.String("data", "", "Directory holding the four CSV files")
		mysqlDSN  = flag.String("mysql", "", "MySQL DSN to read the tables from")
		pushdown  = flag.Bool("pushdown", false, "Run the reports as SQL inside MySQL")
		report    = flag.String("report", "", "Run only this report (default: all)")
		season    = flag.Int("season", defaultSeason, "Season for seasonal reports")
		minBalls  = flag.Int("min-balls", reports.StandardMinBalls, "Minimum balls faced for strike rates")
		team1Only = flag.Bool("team1-only", false, "Credit seasons from team1 appearances only")
		format    = flag.String("format", reportcli.FormatTable, "Output format: table or json")
		verbose   = flag.Bool("verbose", false, "Enable debug logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		reportcli.ShowHelp(os.Stdout)
		return
	}

	// Logs go to stderr so stdout stays parseable.
	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &reportcli.Config{
		DataDir:          *dataDir,
		MySQLDSN:         *mysqlDSN,
		Pushdown:         *pushdown,
		Report:           *report,
		Season:           *season,
		MinBalls:         *minBalls,
		Team1OnlySeasons: *team1Only,
		Format:           *format,
		Verbose:          *verbose,
	}
	if err := reportcli.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		if errors.Is(err, reportcli.ErrUsage) {
			reportcli.ShowHelp(os.Stderr)
		}
		os.Exit(1)
	}
}
