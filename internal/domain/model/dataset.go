package model

import "strings"

// Dataset is the immutable four-table input of the analytics engine.
// Build it with NewDataset so the lookup indexes are populated.
type Dataset struct {
	Matches    []Match
	Teams      []Team
	Players    []Player
	Deliveries []Delivery

	matchByID  map[int64]int
	teamByID   map[int64]int
	playerByID map[int64]int
}

// NewDataset wraps the tables and indexes them by id. Later duplicates of
// an id shadow earlier ones; Validate reports them.
func NewDataset(matches []Match, teams []Team, players []Player, deliveries []Delivery) *Dataset {
	d := &Dataset{
		Matches:    matches,
		Teams:      teams,
		Players:    players,
		Deliveries: deliveries,
		matchByID:  make(map[int64]int, len(matches)),
		teamByID:   make(map[int64]int, len(teams)),
		playerByID: make(map[int64]int, len(players)),
	}
	for i, m := range matches {
		d.matchByID[m.ID] = i
	}
	for i, t := range teams {
		d.teamByID[t.ID] = i
	}
	for i, p := range players {
		d.playerByID[p.ID] = i
	}
	return d
}

// Match looks up a match by id.
func (d *Dataset) Match(id int64) (Match, bool) {
	i, ok := d.matchByID[id]
	if !ok {
		return Match{}, false
	}
	return d.Matches[i], true
}

// Team looks up a team by id.
func (d *Dataset) Team(id int64) (Team, bool) {
	i, ok := d.teamByID[id]
	if !ok {
		return Team{}, false
	}
	return d.Teams[i], true
}

// Player looks up a player by id.
func (d *Dataset) Player(id int64) (Player, bool) {
	i, ok := d.playerByID[id]
	if !ok {
		return Player{}, false
	}
	return d.Players[i], true
}

// MustTeam is Team with an ErrInvalidReference error when the id is unknown.
func (d *Dataset) MustTeam(id int64) (Team, error) {
	t, ok := d.Team(id)
	if !ok {
		return Team{}, InvalidReference("unknown team %d", id)
	}
	return t, nil
}

// MustPlayer is Player with an ErrInvalidReference error when the id is unknown.
func (d *Dataset) MustPlayer(id int64) (Player, error) {
	p, ok := d.Player(id)
	if !ok {
		return Player{}, InvalidReference("unknown player %d", id)
	}
	return p, nil
}

// MustMatch is Match with an ErrInvalidReference error when the id is unknown.
func (d *Dataset) MustMatch(id int64) (Match, error) {
	m, ok := d.Match(id)
	if !ok {
		return Match{}, InvalidReference("unknown match %d", id)
	}
	return m, nil
}

// Counts returns the row count of each table keyed by table name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"matches":    len(d.Matches),
		"teams":      len(d.Teams),
		"players":    len(d.Players),
		"deliveries": len(d.Deliveries),
	}
}

// Validate checks referential integrity and record invariants and returns
// the first violation found.
func (d *Dataset) Validate() error {
	if len(d.teamByID) != len(d.Teams) {
		return invalidRecord("duplicate team id")
	}
	if len(d.playerByID) != len(d.Players) {
		return invalidRecord("duplicate player id")
	}
	if len(d.matchByID) != len(d.Matches) {
		return invalidRecord("duplicate match id")
	}

	names := make(map[string]int64, len(d.Teams))
	for _, t := range d.Teams {
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if other, dup := names[key]; dup {
			return invalidRecord("teams %d and %d share the name %q", other, t.ID, t.Name)
		}
		names[key] = t.ID
	}

	for _, p := range d.Players {
		if _, ok := d.Team(p.TeamID); !ok {
			return InvalidReference("player %d references unknown team %d", p.ID, p.TeamID)
		}
	}

	for _, m := range d.Matches {
		if _, ok := d.Team(m.Team1ID); !ok {
			return InvalidReference("match %d references unknown team1 %d", m.ID, m.Team1ID)
		}
		if _, ok := d.Team(m.Team2ID); !ok {
			return InvalidReference("match %d references unknown team2 %d", m.ID, m.Team2ID)
		}
		if w, ok := m.Winner(); ok && w != m.Team1ID && w != m.Team2ID {
			return InvalidReference("match %d winner %d is not a participant", m.ID, w)
		}
	}

	for _, del := range d.Deliveries {
		if _, ok := d.Match(del.MatchID); !ok {
			return InvalidReference("delivery %d references unknown match %d", del.ID, del.MatchID)
		}
		if _, ok := d.Player(del.BowlerID); !ok {
			return InvalidReference("delivery %d references unknown bowler %d", del.ID, del.BowlerID)
		}
		if _, ok := d.Player(del.BatsmanID); !ok {
			return InvalidReference("delivery %d references unknown batsman %d", del.ID, del.BatsmanID)
		}
		if del.Runs < 0 {
			return invalidRecord("delivery %d has negative runs %d", del.ID, del.Runs)
		}
	}
	return nil
}
