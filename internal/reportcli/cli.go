package reportcli

import (
	"io"
	"strings"

	"github.com/okian/crease/internal/domain/reports"
)

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	names := make([]string, len(reports.Names))
	for i, n := range reports.Names {
		names[i] = "  " + string(n)
	}
	_, _ = io.WriteString(w, `crease report tool
==================

Runs the analytics reports once and prints them.

Usage:
  report -data DIR [-season 2021] [-min-balls 100] [-report name]
  report -mysql DSN [-pushdown] [...]

Options:
  -data string
        Directory holding matches.csv, teams.csv, players.csv, deliveries.csv
  -mysql string
        MySQL DSN (parseTime=true) to read the tables from instead
  -pushdown
        Run the reports as SQL inside MySQL
  -report string
        Run only this report (default: all)
  -season int
        Season for seasonal reports (default 2021)
  -min-balls int
        Minimum balls faced for strike rates (default 100)
  -team1-only
        Credit a season to a team only when it appeared as team1
  -format string
        table or json (default "table")
  -verbose
        Enable debug logging
  -help
        Show this help message

Reports:
`+strings.Join(names, "\n")+"\n")
}
