// Package model contains the cricket entities the analytics engine reads.
// Entities are supplied by a dataset source and never mutated by reports.
package model

import "time"

// DateLayout is the calendar date format used by every dataset source.
const DateLayout = "2006-01-02"

// Match is a single fixture between two teams.
type Match struct {
	ID      int64
	Season  int
	Team1ID int64
	Team2ID int64
	// WinnerTeamID is nil for matches without a result (abandoned, no result).
	WinnerTeamID *int64
	Venue        string
	Date         time.Time
}

// Winner returns the winning team id and whether the match had a winner.
func (m Match) Winner() (int64, bool) {
	if m.WinnerTeamID == nil {
		return 0, false
	}
	return *m.WinnerTeamID, true
}

// Team is a franchise or national side.
type Team struct {
	ID       int64
	Name     string
	HomeCity string
}

// Player is a roster entry. TeamID is the affiliation at time of record.
type Player struct {
	ID     int64
	Name   string
	TeamID int64
	Role   string
}

// Delivery is one ball bowled.
type Delivery struct {
	ID        int64
	MatchID   int64
	Inning    int
	BowlerID  int64
	BatsmanID int64
	Runs      int
	IsWicket  bool
}

// WinnerID is a convenience for building matches with a result.
func WinnerID(id int64) *int64 { return &id }
