package reports

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/ranking"
	"github.com/okian/crease/internal/domain/types"
)

// TopRunScorers returns the batsmen ranked in the top three by career runs.
// Ties on the boundary can produce more than three rows.
func (e *Engine) TopRunScorers(ds *model.Dataset) ([]types.PlayerRuns, error) {
	runs := make(map[int64]float64)
	for _, d := range ds.Deliveries {
		runs[d.BatsmanID] += float64(d.Runs)
	}

	items, err := playerItems(ds, runs)
	if err != nil {
		return nil, err
	}
	top := ranking.Top(items, TopRunScorersRank)
	rows := make([]types.PlayerRuns, 0, len(top))
	for _, r := range top {
		rows = append(rows, types.PlayerRuns{Rank: r.Rank, PlayerName: r.Key.Name, TotalRuns: int(r.Metric)})
	}
	return rows, nil
}

// TopSeasonAverage returns the single batsman with the best runs per match
// batted in season. The average uses real division. Ties resolve by player
// name, then id. An empty season yields no rows.
func (e *Engine) TopSeasonAverage(ds *model.Dataset, season int) ([]types.PlayerAverage, error) {
	perMatch := make(map[int64]map[int64]int)
	err := seasonDeliveries(ds, season, func(d model.Delivery, _ model.Match) {
		byMatch, ok := perMatch[d.BatsmanID]
		if !ok {
			byMatch = make(map[int64]int)
			perMatch[d.BatsmanID] = byMatch
		}
		byMatch[d.MatchID] += d.Runs
	})
	if err != nil {
		return nil, err
	}

	type candidate struct {
		player  model.Player
		total   int
		matches int
		avg     float64
	}
	candidates := make([]candidate, 0, len(perMatch))
	for id, byMatch := range perMatch {
		p, err := ds.MustPlayer(id)
		if err != nil {
			return nil, err
		}
		c := candidate{player: p, matches: len(byMatch)}
		for _, r := range byMatch {
			c.total += r
		}
		c.avg = float64(c.total) / float64(c.matches)
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return []types.PlayerAverage{}, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.avg != b.avg {
			return a.avg > b.avg
		}
		if a.player.Name != b.player.Name {
			return a.player.Name < b.player.Name
		}
		return a.player.ID < b.player.ID
	})
	best := candidates[0]
	return []types.PlayerAverage{{
		PlayerName:  best.player.Name,
		AverageRuns: best.avg,
		Matches:     best.matches,
	}}, nil
}

// TopStrikeRates returns batsmen ranked in the top five by strike rate in
// season among those who faced at least minBalls deliveries.
func (e *Engine) TopStrikeRates(ds *model.Dataset, season, minBalls int) ([]types.StrikeRate, error) {
	if minBalls < 1 {
		return nil, errors.Wrapf(ErrInvalidParams, "min balls %d", minBalls)
	}

	balls := make(map[int64]int)
	runs := make(map[int64]int)
	err := seasonDeliveries(ds, season, func(d model.Delivery, _ model.Match) {
		balls[d.BatsmanID]++
		runs[d.BatsmanID] += d.Runs
	})
	if err != nil {
		return nil, err
	}

	rates := make(map[int64]float64)
	for id, b := range balls {
		if b < minBalls {
			continue
		}
		rates[id] = float64(runs[id]) / float64(b) * 100
	}

	items, err := playerItems(ds, rates)
	if err != nil {
		return nil, err
	}
	top := ranking.Top(items, TopStrikeRatesRank)
	rows := make([]types.StrikeRate, 0, len(top))
	for _, r := range top {
		rows = append(rows, types.StrikeRate{
			Rank:       r.Rank,
			PlayerName: r.Key.Name,
			Runs:       runs[r.Key.ID],
			BallsFaced: balls[r.Key.ID],
			StrikeRate: r.Metric,
		})
	}
	return rows, nil
}
