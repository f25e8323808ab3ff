package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Table rows as stored in MySQL.

type teamRow struct {
	TeamID   int64  `gorm:"column:team_id;primaryKey;autoIncrement:false"`
	TeamName string `gorm:"column:team_name;size:128;uniqueIndex"`
	HomeCity string `gorm:"column:home_city;size:128"`
}

func (teamRow) TableName() string { return "teams" }

type playerRow struct {
	PlayerID   int64  `gorm:"column:player_id;primaryKey;autoIncrement:false"`
	PlayerName string `gorm:"column:player_name;size:128"`
	TeamID     int64  `gorm:"column:team_id;index"`
	Role       string `gorm:"column:role;size:64"`
}

func (playerRow) TableName() string { return "players" }

type matchRow struct {
	MatchID      int64     `gorm:"column:match_id;primaryKey;autoIncrement:false"`
	Season       int       `gorm:"column:season;index"`
	Team1ID      int64     `gorm:"column:team1_id"`
	Team2ID      int64     `gorm:"column:team2_id"`
	WinnerTeamID *int64    `gorm:"column:winner_team_id"`
	Venue        string    `gorm:"column:venue;size:128"`
	Date         time.Time `gorm:"column:date;type:date"`
}

func (matchRow) TableName() string { return "matches" }

type deliveryRow struct {
	DeliveryID int64 `gorm:"column:delivery_id;primaryKey;autoIncrement:false"`
	MatchID    int64 `gorm:"column:match_id;index"`
	Inning     int   `gorm:"column:inning"`
	BowlerID   int64 `gorm:"column:bowler_id"`
	BatsmanID  int64 `gorm:"column:batsman_id"`
	RunsScored int   `gorm:"column:runs_scored"`
	IsWicket   bool  `gorm:"column:is_wicket"`
}

func (deliveryRow) TableName() string { return "deliveries" }

// OpenMySQL opens a gorm handle. The DSN must set parseTime=true so DATE
// columns scan into time.Time.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open mysql"), ErrSource)
	}
	return db, nil
}

// MySQLSource reads the dataset from the matches, teams, players and
// deliveries tables.
type MySQLSource struct {
	db *gorm.DB
}

// NewMySQLSource returns a source over db.
func NewMySQLSource(db *gorm.DB) *MySQLSource {
	return &MySQLSource{db: db}
}

// Name implements Source.
func (s *MySQLSource) Name() string {
	return "mysql:" + s.db.Migrator().CurrentDatabase()
}

// Load implements Source. All four tables are read in one read-only
// transaction so they describe the same state.
func (s *MySQLSource) Load(ctx context.Context) (*model.Dataset, error) {
	var (
		teams      []teamRow
		players    []playerRow
		matches    []matchRow
		deliveries []deliveryRow
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("team_id").Find(&teams).Error; err != nil {
			return errors.Wrap(err, "read teams")
		}
		if err := tx.Order("player_id").Find(&players).Error; err != nil {
			return errors.Wrap(err, "read players")
		}
		if err := tx.Order("match_id").Find(&matches).Error; err != nil {
			return errors.Wrap(err, "read matches")
		}
		if err := tx.Order("delivery_id").Find(&deliveries).Error; err != nil {
			return errors.Wrap(err, "read deliveries")
		}
		return nil
	})
	if err != nil {
		return nil, errors.Mark(err, ErrSource)
	}

	return validated(model.NewDataset(
		toMatches(matches),
		toTeams(teams),
		toPlayers(players),
		toDeliveries(deliveries),
	))
}

func toTeams(rows []teamRow) []model.Team {
	out := make([]model.Team, len(rows))
	for i, r := range rows {
		out[i] = model.Team{ID: r.TeamID, Name: r.TeamName, HomeCity: r.HomeCity}
	}
	return out
}

func toPlayers(rows []playerRow) []model.Player {
	out := make([]model.Player, len(rows))
	for i, r := range rows {
		out[i] = model.Player{ID: r.PlayerID, Name: r.PlayerName, TeamID: r.TeamID, Role: r.Role}
	}
	return out
}

func toMatches(rows []matchRow) []model.Match {
	out := make([]model.Match, len(rows))
	for i, r := range rows {
		out[i] = model.Match{
			ID:           r.MatchID,
			Season:       r.Season,
			Team1ID:      r.Team1ID,
			Team2ID:      r.Team2ID,
			WinnerTeamID: r.WinnerTeamID,
			Venue:        r.Venue,
			Date:         r.Date,
		}
	}
	return out
}

func toDeliveries(rows []deliveryRow) []model.Delivery {
	out := make([]model.Delivery, len(rows))
	for i, r := range rows {
		out[i] = model.Delivery{
			ID:        r.DeliveryID,
			MatchID:   r.MatchID,
			Inning:    r.Inning,
			BowlerID:  r.BowlerID,
			BatsmanID: r.BatsmanID,
			Runs:      r.RunsScored,
			IsWicket:  r.IsWicket,
		}
	}
	return out
}
