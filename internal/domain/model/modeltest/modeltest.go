// Package modeltest builds datasets for tests.
package modeltest

import (
	"time"

	"github.com/okian/crease/internal/domain/model"
)

// Builder accumulates rows and produces a Dataset.
type Builder struct {
	matches    []model.Match
	teams      []model.Team
	players    []model.Player
	deliveries []model.Delivery
	nextBall   int64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nextBall: 1}
}

// Team adds a team.
func (b *Builder) Team(id int64, name, city string) *Builder {
	b.teams = append(b.teams, model.Team{ID: id, Name: name, HomeCity: city})
	return b
}

// Player adds a player.
func (b *Builder) Player(id int64, name string, teamID int64, role string) *Builder {
	b.players = append(b.players, model.Player{ID: id, Name: name, TeamID: teamID, Role: role})
	return b
}

// Match adds a match. A zero winner means no result. date is YYYY-MM-DD.
func (b *Builder) Match(id int64, season int, team1, team2, winner int64, venue, date string) *Builder {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		panic(err)
	}
	m := model.Match{ID: id, Season: season, Team1ID: team1, Team2ID: team2, Venue: venue, Date: d}
	if winner != 0 {
		m.WinnerTeamID = model.WinnerID(winner)
	}
	b.matches = append(b.matches, m)
	return b
}

// Ball adds a single first-innings delivery.
func (b *Builder) Ball(matchID, bowlerID, batsmanID int64, runs int, wicket bool) *Builder {
	b.deliveries = append(b.deliveries, model.Delivery{
		ID:        b.nextBall,
		MatchID:   matchID,
		Inning:    1,
		BowlerID:  bowlerID,
		BatsmanID: batsmanID,
		Runs:      runs,
		IsWicket:  wicket,
	})
	b.nextBall++
	return b
}

// Balls adds n deliveries each worth runs.
func (b *Builder) Balls(n int, matchID, bowlerID, batsmanID int64, runs int) *Builder {
	for i := 0; i < n; i++ {
		b.Ball(matchID, bowlerID, batsmanID, runs, false)
	}
	return b
}

// Wickets adds n scoreless dismissals.
func (b *Builder) Wickets(n int, matchID, bowlerID, batsmanID int64) *Builder {
	for i := 0; i < n; i++ {
		b.Ball(matchID, bowlerID, batsmanID, 0, true)
	}
	return b
}

// Build returns the indexed dataset.
func (b *Builder) Build() *model.Dataset {
	return model.NewDataset(b.matches, b.teams, b.players, b.deliveries)
}

// Team and player ids of the Sample dataset.
const (
	Lions  int64 = 1
	Tigers int64 = 2
	Eagles int64 = 3
	Sharks int64 = 4

	Asha  int64 = 10
	Bilal int64 = 11
	Chen  int64 = 20
	Dev   int64 = 21
	Eli   int64 = 30
	Faye  int64 = 40
)

// Sample is a small two-season league used across package tests.
//
//	2020: Lions and Eagles one win each.
//	2021: Lions two wins, Tigers one, Sharks one, one abandoned match.
//	Match 5 at Kotla has 11 wickets.
func Sample() *model.Dataset {
	b := NewBuilder().
		Team(Lions, "Lions", "Mumbai").
		Team(Tigers, "Tigers", "Chennai").
		Team(Eagles, "Eagles", "Delhi").
		Team(Sharks, "Sharks", "Kolkata").
		Player(Asha, "Asha", Lions, "batsman").
		Player(Bilal, "Bilal", Lions, "bowler").
		Player(Chen, "Chen", Tigers, "batsman").
		Player(Dev, "Dev", Tigers, "bowler").
		Player(Eli, "Eli", Eagles, "all-rounder").
		Player(Faye, "Faye", Sharks, "batsman").
		Match(1, 2020, Lions, Tigers, Lions, "Wankhede", "2020-04-01").
		Match(2, 2020, Tigers, Eagles, Eagles, "Chepauk", "2020-04-05").
		Match(3, 2021, Lions, Tigers, Lions, "Wankhede", "2021-04-02").
		Match(4, 2021, Lions, Tigers, Tigers, "Chepauk", "2021-04-06").
		Match(5, 2021, Lions, Tigers, Lions, "Kotla", "2021-04-10").
		Match(6, 2021, Eagles, Lions, 0, "Kotla", "2021-04-14").
		Match(7, 2021, Sharks, Eagles, Sharks, "Eden", "2021-04-18")

	b.Balls(6, 1, Dev, Asha, 4).
		Balls(6, 1, Bilal, Chen, 1).
		Balls(6, 2, Eli, Chen, 2).
		Balls(10, 3, Dev, Asha, 6).
		Balls(10, 3, Bilal, Chen, 1).
		Wickets(4, 3, Bilal, Chen).
		Balls(10, 4, Bilal, Chen, 3).
		Wickets(11, 5, Dev, Asha).
		Balls(8, 7, Eli, Faye, 2)

	return b.Build()
}
