package reports

import (
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/ranking"
	"github.com/okian/crease/internal/domain/types"
)

// MostTeamsPlayer returns the players credited with the most distinct teams.
//
// A team is credited from the side of the match a delivery was recorded
// under, not from the players table: the bowler of a delivery counts for
// the match's team1 and the batsman for its team2.
func (e *Engine) MostTeamsPlayer(ds *model.Dataset) ([]types.PlayerTeams, error) {
	teams := make(map[int64]map[int64]struct{})
	credit := func(player, team int64) {
		s, ok := teams[player]
		if !ok {
			s = make(map[int64]struct{})
			teams[player] = s
		}
		s[team] = struct{}{}
	}

	for _, d := range ds.Deliveries {
		m, err := ds.MustMatch(d.MatchID)
		if err != nil {
			return nil, err
		}
		credit(d.BowlerID, m.Team1ID)
		credit(d.BatsmanID, m.Team2ID)
	}

	counts := make(map[int64]float64, len(teams))
	for id, s := range teams {
		counts[id] = float64(len(s))
	}
	items, err := playerItems(ds, counts)
	if err != nil {
		return nil, err
	}
	top := ranking.Top(items, 1)
	rows := make([]types.PlayerTeams, 0, len(top))
	for _, r := range top {
		rows = append(rows, types.PlayerTeams{Rank: r.Rank, PlayerName: r.Key.Name, TeamCount: int(r.Metric)})
	}
	return rows, nil
}
