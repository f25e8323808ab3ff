package reports

import (
	"sort"

	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/ranking"
	"github.com/okian/crease/internal/domain/types"
)

// HighWicketMatches returns the matches whose wicket count exceeds the
// engine threshold (10 by default), ordered by match id.
func (e *Engine) HighWicketMatches(ds *model.Dataset) ([]types.MatchWickets, error) {
	wickets := make(map[int64]int)
	for _, d := range ds.Deliveries {
		if d.IsWicket {
			wickets[d.MatchID]++
		}
	}

	rows := make([]types.MatchWickets, 0)
	for id, n := range wickets {
		if n <= e.highWicketThreshold {
			continue
		}
		m, err := ds.MustMatch(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, types.MatchWickets{MatchID: m.ID, Date: m.Date, TotalWickets: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MatchID < rows[j].MatchID })
	return rows, nil
}

type venueMatch struct {
	venue   string
	matchID int64
}

// MostWicketsVenue ranks (venue, match) pairs by the wickets that fell in
// that match and returns every pair at rank 1. A venue is not aggregated
// across matches, so it can appear more than once.
func (e *Engine) MostWicketsVenue(ds *model.Dataset) ([]types.VenueWickets, error) {
	wickets := make(map[venueMatch]float64)
	for _, d := range ds.Deliveries {
		m, err := ds.MustMatch(d.MatchID)
		if err != nil {
			return nil, err
		}
		key := venueMatch{venue: m.Venue, matchID: m.ID}
		if d.IsWicket {
			wickets[key]++
		} else if _, ok := wickets[key]; !ok {
			wickets[key] = 0
		}
	}

	items := make([]ranking.Item[venueMatch], 0, len(wickets))
	for k, v := range wickets {
		items = append(items, ranking.Item[venueMatch]{Key: k, Metric: v})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].Key, items[j].Key
		if a.venue != b.venue {
			return a.venue < b.venue
		}
		return a.matchID < b.matchID
	})

	top := ranking.Top(items, 1)
	rows := make([]types.VenueWickets, 0, len(top))
	for _, r := range top {
		rows = append(rows, types.VenueWickets{
			Rank:         r.Rank,
			Venue:        r.Key.venue,
			MatchID:      r.Key.matchID,
			TotalWickets: int(r.Metric),
		})
	}
	return rows, nil
}
