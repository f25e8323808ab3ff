// Package reports computes the fixed analytical reports over a dataset.
//
// Every report is a pure function of the four tables: nothing is cached and
// an Engine may be shared by concurrent callers.
package reports

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/ranking"
)

// Name identifies a report.
type Name string

// Report names.
const (
	SeasonWinLeadersReport  Name = "season-win-leaders"
	TopRunScorersReport     Name = "top-run-scorers"
	HighWicketMatchesReport Name = "high-wicket-matches"
	TopSeasonAverageReport  Name = "top-season-average"
	MostWicketsVenueReport  Name = "most-wickets-venue"
	MostTeamsPlayerReport   Name = "most-teams-player"
	EverPresentTeamsReport  Name = "ever-present-teams"
	TopStrikeRatesReport    Name = "top-strike-rates"
)

// Names lists every report in a stable order.
var Names = []Name{
	SeasonWinLeadersReport,
	TopRunScorersReport,
	HighWicketMatchesReport,
	TopSeasonAverageReport,
	MostWicketsVenueReport,
	MostTeamsPlayerReport,
	EverPresentTeamsReport,
	TopStrikeRatesReport,
}

// Lookup returns the report Name for s.
func Lookup(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownReport, "%q", s)
}

// UsesSeason reports whether the report is parameterised by season.
func (n Name) UsesSeason() bool {
	switch n {
	case SeasonWinLeadersReport, TopSeasonAverageReport, TopStrikeRatesReport:
		return true
	}
	return false
}

// Rank cut-offs of the top-N reports.
const (
	TopRunScorersRank  = 3
	TopStrikeRatesRank = 5
)

// Defaults.
const (
	StandardMinBalls    = 100
	HighWicketThreshold = 10
)

// Params carries the inputs of parameterised reports.
type Params struct {
	Season int
	// MinBalls is the strike rate qualification; zero means the engine default.
	MinBalls int
}

// Engine runs reports against a dataset.
type Engine struct {
	team1OnlySeasons    bool
	defaultMinBalls     int
	highWicketThreshold int
}

// New constructs an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		defaultMinBalls:     StandardMinBalls,
		highWicketThreshold: HighWicketThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultMinBalls returns the strike rate qualification used when none is given.
func (e *Engine) DefaultMinBalls() int { return e.defaultMinBalls }

// Run dispatches to the named report. The returned value is the report's
// row slice, e.g. []types.TeamWins for SeasonWinLeadersReport.
func (e *Engine) Run(ds *model.Dataset, name Name, p Params) (any, error) {
	if p.MinBalls < 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "min balls %d", p.MinBalls)
	}
	if p.MinBalls == 0 {
		p.MinBalls = e.defaultMinBalls
	}

	switch name {
	case SeasonWinLeadersReport:
		return e.SeasonWinLeaders(ds, p.Season)
	case TopRunScorersReport:
		return e.TopRunScorers(ds)
	case HighWicketMatchesReport:
		return e.HighWicketMatches(ds)
	case TopSeasonAverageReport:
		return e.TopSeasonAverage(ds, p.Season)
	case MostWicketsVenueReport:
		return e.MostWicketsVenue(ds)
	case MostTeamsPlayerReport:
		return e.MostTeamsPlayer(ds)
	case EverPresentTeamsReport:
		return e.EverPresentTeams(ds)
	case TopStrikeRatesReport:
		return e.TopStrikeRates(ds, p.Season, p.MinBalls)
	}
	return nil, errors.Wrapf(ErrUnknownReport, "%q", name)
}

// playerItems resolves player ids and orders them by name then id so that
// ties come out of ranking.Dense deterministically.
func playerItems(ds *model.Dataset, metrics map[int64]float64) ([]ranking.Item[model.Player], error) {
	items := make([]ranking.Item[model.Player], 0, len(metrics))
	for id, v := range metrics {
		p, err := ds.MustPlayer(id)
		if err != nil {
			return nil, err
		}
		items = append(items, ranking.Item[model.Player]{Key: p, Metric: v})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].Key, items[j].Key
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return items, nil
}

// teamItems is playerItems for teams.
func teamItems(ds *model.Dataset, metrics map[int64]float64) ([]ranking.Item[model.Team], error) {
	items := make([]ranking.Item[model.Team], 0, len(metrics))
	for id, v := range metrics {
		t, err := ds.MustTeam(id)
		if err != nil {
			return nil, err
		}
		items = append(items, ranking.Item[model.Team]{Key: t, Metric: v})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].Key, items[j].Key
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return items, nil
}

// seasonDeliveries calls fn for every delivery of a match in season.
func seasonDeliveries(ds *model.Dataset, season int, fn func(model.Delivery, model.Match)) error {
	for _, d := range ds.Deliveries {
		m, err := ds.MustMatch(d.MatchID)
		if err != nil {
			return err
		}
		if m.Season == season {
			fn(d, m)
		}
	}
	return nil
}
