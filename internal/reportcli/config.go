package reportcli

import (
	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/reports"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUsage marks invalid command line input.
var ErrUsage = errors.New("usage")

// Config holds the command line options of the report tool.
type Config struct {
	DataDir          string // Directory with the four CSV files
	MySQLDSN         string // Read from MySQL instead of DataDir when set
	Pushdown         bool   // Run reports as SQL; requires MySQLDSN
	Report           string // Single report name; empty runs all
	Season           int    // Season for seasonal reports
	MinBalls         int    // Strike rate qualification
	Team1OnlySeasons bool   // Credit seasons from team1 appearances only
	Format           string // table or json
	Verbose          bool   // Enable debug logging
}

// Validate checks flag combinations.
func (c *Config) Validate() error {
	switch {
	case c.DataDir == "" && c.MySQLDSN == "":
		return errors.Wrap(ErrUsage, "one of -data or -mysql is required")
	case c.DataDir != "" && c.MySQLDSN != "":
		return errors.Wrap(ErrUsage, "-data and -mysql are mutually exclusive")
	case c.Pushdown && c.MySQLDSN == "":
		return errors.Wrap(ErrUsage, "-pushdown requires -mysql")
	case c.Season < 0:
		return errors.Wrapf(ErrUsage, "-season %d", c.Season)
	case c.MinBalls < 1:
		return errors.Wrapf(ErrUsage, "-min-balls %d", c.MinBalls)
	case c.Format != FormatTable && c.Format != FormatJSON:
		return errors.Wrapf(ErrUsage, "-format %q", c.Format)
	}
	if c.Report != "" {
		if _, err := reports.Lookup(c.Report); err != nil {
			return err
		}
	}
	return nil
}
