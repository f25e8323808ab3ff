package service

import (
	"context"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
)

// FindPlayers returns players whose names fuzzily contain query, closest
// matches first, at most limit of them.
func (s *Service) FindPlayers(ctx context.Context, query string, limit int) ([]types.NamedEntity, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	players := snap.Dataset.Players
	entities := make([]types.NamedEntity, len(players))
	for i, p := range players {
		entities[i] = types.NamedEntity{ID: p.ID, Name: p.Name, Detail: p.Role}
	}
	return s.find(ctx, "players", query, limit, entities)
}

// FindTeams is FindPlayers for teams; Detail carries the home city.
func (s *Service) FindTeams(ctx context.Context, query string, limit int) ([]types.NamedEntity, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	teams := snap.Dataset.Teams
	entities := make([]types.NamedEntity, len(teams))
	for i, t := range teams {
		entities[i] = types.NamedEntity{ID: t.ID, Name: t.Name, Detail: t.HomeCity}
	}
	return s.find(ctx, "teams", query, limit, entities)
}

func (s *Service) find(ctx context.Context, kind, query string, limit int, entities []types.NamedEntity) ([]types.NamedEntity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Wrap(ErrInvalidQuery, "empty query")
	}
	if limit < 1 {
		return nil, errors.Wrapf(ErrInvalidQuery, "limit %d", limit)
	}

	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	out := make([]types.NamedEntity, len(ranks))
	for i, r := range ranks {
		out[i] = entities[r.OriginalIndex]
	}
	s.logger.Debug(ctx, "lookup",
		logger.String("kind", kind),
		logger.String("query", query),
		logger.Int("hits", len(out)),
	)
	return out, nil
}
