package repository

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
)

// File names read by CSVSource.
const (
	MatchesFile    = "matches.csv"
	TeamsFile      = "teams.csv"
	PlayersFile    = "players.csv"
	DeliveriesFile = "deliveries.csv"
)

var (
	matchColumns    = []string{"match_id", "season", "team1_id", "team2_id", "winner_team_id", "venue", "date"}
	teamColumns     = []string{"team_id", "team_name", "home_city"}
	playerColumns   = []string{"player_id", "player_name", "team_id", "role"}
	deliveryColumns = []string{"delivery_id", "match_id", "inning", "bowler_id", "batsman_id", "runs_scored", "is_wicket"}
)

// CSVSource reads the dataset from four CSV files with header rows.
// Column order is free; extra columns are ignored.
type CSVSource struct {
	dir string
}

// NewCSVSource returns a source reading from dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Name implements Source.
func (s *CSVSource) Name() string { return "csv:" + s.dir }

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*model.Dataset, error) {
	var (
		teams      []model.Team
		players    []model.Player
		matches    []model.Match
		deliveries []model.Delivery
	)
	steps := []struct {
		file string
		cols []string
		row  func(r csvRow) error
	}{
		{TeamsFile, teamColumns, func(r csvRow) error {
			t, err := parseTeam(r)
			teams = append(teams, t)
			return err
		}},
		{PlayersFile, playerColumns, func(r csvRow) error {
			p, err := parsePlayer(r)
			players = append(players, p)
			return err
		}},
		{MatchesFile, matchColumns, func(r csvRow) error {
			m, err := parseMatch(r)
			matches = append(matches, m)
			return err
		}},
		{DeliveriesFile, deliveryColumns, func(r csvRow) error {
			d, err := parseDelivery(r)
			deliveries = append(deliveries, d)
			return err
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.readFile(step.file, step.cols, step.row); err != nil {
			return nil, err
		}
	}
	return validated(model.NewDataset(matches, teams, players, deliveries))
}

func (s *CSVSource) readFile(name string, cols []string, fn func(csvRow) error) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "open %s", path), ErrSource)
	}
	defer func() { _ = f.Close() }()
	return readCSV(f, name, cols, fn)
}

// readCSV reads a header row naming at least cols, then calls fn per record.
func readCSV(r io.Reader, name string, cols []string, fn func(csvRow) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return malformed(name, 1, "read header: %v", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range cols {
		if _, ok := index[c]; !ok {
			return malformed(name, 1, "missing column %q", c)
		}
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return malformed(name, line, "%v", err)
		}
		row := csvRow{file: name, line: line, index: index, rec: rec}
		if err := fn(row); err != nil {
			return err
		}
	}
}

func malformed(file string, line int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, "%s:%d: "+format, append([]interface{}{file, line}, args...)...)
}

type csvRow struct {
	file  string
	line  int
	index map[string]int
	rec   []string
}

func (r csvRow) str(col string) string {
	i := r.index[col]
	if i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r csvRow) int64(col string) (int64, error) {
	v, err := strconv.ParseInt(r.str(col), 10, 64)
	if err != nil {
		return 0, malformed(r.file, r.line, "column %s: %v", col, err)
	}
	return v, nil
}

func (r csvRow) int(col string) (int, error) {
	v, err := r.int64(col)
	return int(v), err
}

func (r csvRow) optionalInt64(col string) (*int64, error) {
	s := r.str(col)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "na") {
		return nil, nil
	}
	v, err := r.int64(col)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r csvRow) bool(col string) (bool, error) {
	v, err := strconv.ParseBool(r.str(col))
	if err != nil {
		return false, malformed(r.file, r.line, "column %s: %v", col, err)
	}
	return v, nil
}

func (r csvRow) date(col string) (time.Time, error) {
	v, err := time.Parse(model.DateLayout, r.str(col))
	if err != nil {
		return time.Time{}, malformed(r.file, r.line, "column %s: %v", col, err)
	}
	return v, nil
}

func parseTeam(r csvRow) (model.Team, error) {
	id, err := r.int64("team_id")
	if err != nil {
		return model.Team{}, err
	}
	return model.Team{ID: id, Name: r.str("team_name"), HomeCity: r.str("home_city")}, nil
}

func parsePlayer(r csvRow) (model.Player, error) {
	var (
		p   = model.Player{Name: r.str("player_name"), Role: r.str("role")}
		err error
	)
	if p.ID, err = r.int64("player_id"); err != nil {
		return p, err
	}
	if p.TeamID, err = r.int64("team_id"); err != nil {
		return p, err
	}
	return p, nil
}

func parseMatch(r csvRow) (model.Match, error) {
	var (
		m   = model.Match{Venue: r.str("venue")}
		err error
	)
	if m.ID, err = r.int64("match_id"); err != nil {
		return m, err
	}
	if m.Season, err = r.int("season"); err != nil {
		return m, err
	}
	if m.Team1ID, err = r.int64("team1_id"); err != nil {
		return m, err
	}
	if m.Team2ID, err = r.int64("team2_id"); err != nil {
		return m, err
	}
	if m.WinnerTeamID, err = r.optionalInt64("winner_team_id"); err != nil {
		return m, err
	}
	if m.Date, err = r.date("date"); err != nil {
		return m, err
	}
	return m, nil
}

func parseDelivery(r csvRow) (model.Delivery, error) {
	var (
		d   model.Delivery
		err error
	)
	if d.ID, err = r.int64("delivery_id"); err != nil {
		return d, err
	}
	if d.MatchID, err = r.int64("match_id"); err != nil {
		return d, err
	}
	if d.Inning, err = r.int("inning"); err != nil {
		return d, err
	}
	if d.BowlerID, err = r.int64("bowler_id"); err != nil {
		return d, err
	}
	if d.BatsmanID, err = r.int64("batsman_id"); err != nil {
		return d, err
	}
	if d.Runs, err = r.int("runs_scored"); err != nil {
		return d, err
	}
	if d.IsWicket, err = r.bool("is_wicket"); err != nil {
		return d, err
	}
	return d, nil
}
