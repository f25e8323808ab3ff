// Package types contains the report row shapes shared by the engine,
// the SQL store and the HTTP API.
package types

import "time"

// TeamWins is a row of the season win leaders report.
type TeamWins struct {
	Rank      int    `json:"rank"`
	TeamName  string `json:"team_name"`
	TotalWins int    `json:"total_wins"`
}

// PlayerRuns is a row of the top run scorers report.
type PlayerRuns struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	TotalRuns  int    `json:"total_runs"`
}

// MatchWickets is a row of the high-wicket matches report.
type MatchWickets struct {
	MatchID      int64     `json:"match_id"`
	Date         time.Time `json:"date"`
	TotalWickets int       `json:"total_wickets"`
}

// PlayerAverage is the row of the highest season average report.
type PlayerAverage struct {
	PlayerName  string  `json:"player_name"`
	AverageRuns float64 `json:"average_runs"`
	Matches     int     `json:"matches"`
}

// VenueWickets is a row of the most-wickets venue report.
type VenueWickets struct {
	Rank         int    `json:"rank"`
	Venue        string `json:"venue"`
	MatchID      int64  `json:"match_id"`
	TotalWickets int    `json:"total_wickets"`
}

// PlayerTeams is a row of the most-teams player report.
type PlayerTeams struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	TeamCount  int    `json:"team_count"`
}

// TeamSeasons is a row of the teams present in every season report.
type TeamSeasons struct {
	TeamName      string `json:"team_name"`
	SeasonsPlayed int    `json:"seasons_played"`
}

// StrikeRate is a row of the strike rate leaders report.
type StrikeRate struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	StrikeRate float64 `json:"strike_rate"`
}

// NamedEntity is a lookup hit for a team or player.
type NamedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Detail is the home city for teams and the role for players.
	Detail string `json:"detail,omitempty"`
}

// ReportResult is one executed report with the parameters it ran with.
type ReportResult struct {
	Report         string `json:"report"`
	Season         int    `json:"season,omitempty"`
	MinBalls       int    `json:"min_balls,omitempty"`
	Backend        string `json:"backend"`
	DatasetVersion uint64 `json:"dataset_version"`
	// Rows is the report's row slice, e.g. []TeamWins.
	Rows any `json:"rows"`
}

// ReportBatch is every report run against one dataset version.
type ReportBatch struct {
	RunID   string         `json:"run_id"`
	Results []ReportResult `json:"results"`
}

// DatasetInfo describes a published dataset.
type DatasetInfo struct {
	Version  uint64         `json:"version"`
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Counts   map[string]int `json:"counts"`
}
