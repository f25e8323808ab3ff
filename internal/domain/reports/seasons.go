package reports

import (
	"sort"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/ranking"
	"github.com/okian/crease/internal/domain/types"
)

// SeasonWinLeaders returns every team sharing the highest win count in
// season. Matches without a winner are ignored; a season with no results
// yields no rows.
func (e *Engine) SeasonWinLeaders(ds *model.Dataset, season int) ([]types.TeamWins, error) {
	wins := make(map[int64]float64)
	for _, m := range ds.Matches {
		if m.Season != season {
			continue
		}
		if w, ok := m.Winner(); ok {
			wins[w]++
		}
	}

	items, err := teamItems(ds, wins)
	if err != nil {
		return nil, err
	}
	top := ranking.Top(items, 1)
	rows := make([]types.TeamWins, 0, len(top))
	for _, r := range top {
		rows = append(rows, types.TeamWins{Rank: r.Rank, TeamName: r.Key.Name, TotalWins: int(r.Metric)})
	}
	return rows, nil
}

// EverPresentTeams returns the teams that played in every season of the
// dataset, ordered by name. Both sides of a match are credited unless the
// engine was built WithTeam1OnlySeasons.
func (e *Engine) EverPresentTeams(ds *model.Dataset) ([]types.TeamSeasons, error) {
	all := make(map[int]struct{})
	played := make(map[int64]map[int]struct{})
	credit := func(team int64, season int) {
		s, ok := played[team]
		if !ok {
			s = make(map[int]struct{})
			played[team] = s
		}
		s[season] = struct{}{}
	}

	for _, m := range ds.Matches {
		all[m.Season] = struct{}{}
		credit(m.Team1ID, m.Season)
		if !e.team1OnlySeasons {
			credit(m.Team2ID, m.Season)
		}
	}

	rows := make([]types.TeamSeasons, 0)
	for id, seasons := range played {
		if len(seasons) != len(all) {
			continue
		}
		t, err := ds.MustTeam(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.TeamSeasons{TeamName: t.Name, SeasonsPlayed: len(seasons)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TeamName < rows[j].TeamName })
	return rows, nil
}
