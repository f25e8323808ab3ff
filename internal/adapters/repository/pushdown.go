package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"gorm.io/gorm"
)

// SQLReports runs the reports as queries against the MySQL tables. It
// returns the same row types as reports.Engine.
type SQLReports struct {
	db                  *gorm.DB
	team1OnlySeasons    bool
	defaultMinBalls     int
	highWicketThreshold int
}

// NewSQLReports returns a pushdown backend over db.
func NewSQLReports(db *gorm.DB, opts ...SQLOption) *SQLReports {
	r := &SQLReports{
		db:                  db,
		defaultMinBalls:     reports.StandardMinBalls,
		highWicketThreshold: reports.HighWicketThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run dispatches to the named report.
func (r *SQLReports) Run(ctx context.Context, name reports.Name, p reports.Params) (any, error) {
	if p.MinBalls < 0 {
		return nil, errors.Wrapf(reports.ErrInvalidParams, "min balls %d", p.MinBalls)
	}
	if p.MinBalls == 0 {
		p.MinBalls = r.defaultMinBalls
	}

	switch name {
	case reports.SeasonWinLeadersReport:
		return r.SeasonWinLeaders(ctx, p.Season)
	case reports.TopRunScorersReport:
		return r.TopRunScorers(ctx)
	case reports.HighWicketMatchesReport:
		return r.HighWicketMatches(ctx)
	case reports.TopSeasonAverageReport:
		return r.TopSeasonAverage(ctx, p.Season)
	case reports.MostWicketsVenueReport:
		return r.MostWicketsVenue(ctx)
	case reports.MostTeamsPlayerReport:
		return r.MostTeamsPlayer(ctx)
	case reports.EverPresentTeamsReport:
		return r.EverPresentTeams(ctx)
	case reports.TopStrikeRatesReport:
		return r.TopStrikeRates(ctx, p.Season, p.MinBalls)
	}
	return nil, errors.Wrapf(reports.ErrUnknownReport, "%q", name)
}

// query scans the rows of a report query into dst.
func (r *SQLReports) query(ctx context.Context, name reports.Name, dst any, sql string, args ...any) error {
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(dst).Error; err != nil {
		return errors.Mark(errors.Wrapf(err, "query %s", name), ErrSource)
	}
	return nil
}

type rankedTeamRow struct {
	Rnk       int    `gorm:"column:rnk"`
	TeamName  string `gorm:"column:team_name"`
	TotalWins int    `gorm:"column:total_wins"`
}

// SeasonWinLeaders mirrors reports.Engine.SeasonWinLeaders.
func (r *SQLReports) SeasonWinLeaders(ctx context.Context, season int) ([]types.TeamWins, error) {
	var scanned []rankedTeamRow
	if err := r.query(ctx, reports.SeasonWinLeadersReport, &scanned, SeasonWinLeadersSQL, season); err != nil {
		return nil, err
	}
	rows := make([]types.TeamWins, len(scanned))
	for i, s := range scanned {
		rows[i] = types.TeamWins{Rank: s.Rnk, TeamName: s.TeamName, TotalWins: s.TotalWins}
	}
	return rows, nil
}

type rankedRunsRow struct {
	Rnk        int    `gorm:"column:rnk"`
	PlayerName string `gorm:"column:player_name"`
	TotalRuns  int    `gorm:"column:total_runs"`
}

// TopRunScorers mirrors reports.Engine.TopRunScorers.
func (r *SQLReports) TopRunScorers(ctx context.Context) ([]types.PlayerRuns, error) {
	var scanned []rankedRunsRow
	if err := r.query(ctx, reports.TopRunScorersReport, &scanned, TopRunScorersSQL, reports.TopRunScorersRank); err != nil {
		return nil, err
	}
	rows := make([]types.PlayerRuns, len(scanned))
	for i, s := range scanned {
		rows[i] = types.PlayerRuns{Rank: s.Rnk, PlayerName: s.PlayerName, TotalRuns: s.TotalRuns}
	}
	return rows, nil
}

type matchWicketsRow struct {
	MatchID      int64     `gorm:"column:match_id"`
	Date         time.Time `gorm:"column:date"`
	TotalWickets int       `gorm:"column:total_wickets"`
}

// HighWicketMatches mirrors reports.Engine.HighWicketMatches.
func (r *SQLReports) HighWicketMatches(ctx context.Context) ([]types.MatchWickets, error) {
	var scanned []matchWicketsRow
	if err := r.query(ctx, reports.HighWicketMatchesReport, &scanned, HighWicketMatchesSQL, r.highWicketThreshold); err != nil {
		return nil, err
	}
	rows := make([]types.MatchWickets, len(scanned))
	for i, s := range scanned {
		rows[i] = types.MatchWickets{MatchID: s.MatchID, Date: s.Date, TotalWickets: s.TotalWickets}
	}
	return rows, nil
}

type averageRow struct {
	PlayerName  string  `gorm:"column:player_name"`
	AverageRuns float64 `gorm:"column:average_runs"`
	Matches     int     `gorm:"column:matches"`
}

// TopSeasonAverage mirrors reports.Engine.TopSeasonAverage.
func (r *SQLReports) TopSeasonAverage(ctx context.Context, season int) ([]types.PlayerAverage, error) {
	var scanned []averageRow
	if err := r.query(ctx, reports.TopSeasonAverageReport, &scanned, TopSeasonAverageSQL, season); err != nil {
		return nil, err
	}
	rows := make([]types.PlayerAverage, len(scanned))
	for i, s := range scanned {
		rows[i] = types.PlayerAverage{PlayerName: s.PlayerName, AverageRuns: s.AverageRuns, Matches: s.Matches}
	}
	return rows, nil
}

type venueRow struct {
	Rnk          int    `gorm:"column:rnk"`
	Venue        string `gorm:"column:venue"`
	MatchID      int64  `gorm:"column:match_id"`
	TotalWickets int    `gorm:"column:total_wickets"`
}

// MostWicketsVenue mirrors reports.Engine.MostWicketsVenue.
func (r *SQLReports) MostWicketsVenue(ctx context.Context) ([]types.VenueWickets, error) {
	var scanned []venueRow
	if err := r.query(ctx, reports.MostWicketsVenueReport, &scanned, MostWicketsVenueSQL); err != nil {
		return nil, err
	}
	rows := make([]types.VenueWickets, len(scanned))
	for i, s := range scanned {
		rows[i] = types.VenueWickets{Rank: s.Rnk, Venue: s.Venue, MatchID: s.MatchID, TotalWickets: s.TotalWickets}
	}
	return rows, nil
}

type teamCountRow struct {
	Rnk        int    `gorm:"column:rnk"`
	PlayerName string `gorm:"column:player_name"`
	TeamCount  int    `gorm:"column:team_count"`
}

// MostTeamsPlayer mirrors reports.Engine.MostTeamsPlayer.
func (r *SQLReports) MostTeamsPlayer(ctx context.Context) ([]types.PlayerTeams, error) {
	var scanned []teamCountRow
	if err := r.query(ctx, reports.MostTeamsPlayerReport, &scanned, MostTeamsPlayerSQL); err != nil {
		return nil, err
	}
	rows := make([]types.PlayerTeams, len(scanned))
	for i, s := range scanned {
		rows[i] = types.PlayerTeams{Rank: s.Rnk, PlayerName: s.PlayerName, TeamCount: s.TeamCount}
	}
	return rows, nil
}

type seasonsRow struct {
	TeamName      string `gorm:"column:team_name"`
	SeasonsPlayed int    `gorm:"column:seasons_played"`
}

// EverPresentTeams mirrors reports.Engine.EverPresentTeams.
func (r *SQLReports) EverPresentTeams(ctx context.Context) ([]types.TeamSeasons, error) {
	sql := EverPresentTeamsSQL
	if r.team1OnlySeasons {
		sql = EverPresentTeamsTeam1SQL
	}
	var scanned []seasonsRow
	if err := r.query(ctx, reports.EverPresentTeamsReport, &scanned, sql); err != nil {
		return nil, err
	}
	rows := make([]types.TeamSeasons, len(scanned))
	for i, s := range scanned {
		rows[i] = types.TeamSeasons{TeamName: s.TeamName, SeasonsPlayed: s.SeasonsPlayed}
	}
	return rows, nil
}

type strikeRateRow struct {
	Rnk        int     `gorm:"column:rnk"`
	PlayerName string  `gorm:"column:player_name"`
	Runs       int     `gorm:"column:runs"`
	BallsFaced int     `gorm:"column:balls_faced"`
	StrikeRate float64 `gorm:"column:strike_rate"`
}

// TopStrikeRates mirrors reports.Engine.TopStrikeRates.
func (r *SQLReports) TopStrikeRates(ctx context.Context, season, minBalls int) ([]types.StrikeRate, error) {
	if minBalls < 1 {
		return nil, errors.Wrapf(reports.ErrInvalidParams, "min balls %d", minBalls)
	}
	var scanned []strikeRateRow
	err := r.query(ctx, reports.TopStrikeRatesReport, &scanned, TopStrikeRatesSQL,
		season, minBalls, reports.TopStrikeRatesRank)
	if err != nil {
		return nil, err
	}
	rows := make([]types.StrikeRate, len(scanned))
	for i, s := range scanned {
		rows[i] = types.StrikeRate{
			Rank:       s.Rnk,
			PlayerName: s.PlayerName,
			Runs:       s.Runs,
			BallsFaced: s.BallsFaced,
			StrikeRate: s.StrikeRate,
		}
	}
	return rows, nil
}
