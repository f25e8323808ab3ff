// Package ranking assigns dense ranks to aggregated metrics.
package ranking

import "sort"

// Item is a group key with its aggregated metric.
type Item[K comparable] struct {
	Key    K
	Metric float64
}

// Ranked is an Item with its dense rank (1 is best).
type Ranked[K comparable] struct {
	Item[K]
	Rank int
}

// Dense ranks items by metric descending. Equal metrics share a rank and
// the next distinct metric gets the previous rank plus one, so ranks have
// no gaps. The result is ordered by rank; equal metrics keep input order.
// The input slice is not modified.
func Dense[K comparable](items []Item[K]) []Ranked[K] {
	out := make([]Ranked[K], len(items))
	for i, it := range items {
		out[i] = Ranked[K]{Item: it}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metric > out[j].Metric
	})

	rank := 0
	for i := range out {
		if i == 0 || out[i].Metric != out[i-1].Metric {
			rank++
		}
		out[i].Rank = rank
	}
	return out
}

// Within keeps the leading entries whose rank is at most maxRank.
// ranked must be ordered by rank, as Dense returns it.
func Within[K comparable](ranked []Ranked[K], maxRank int) []Ranked[K] {
	n := sort.Search(len(ranked), func(i int) bool { return ranked[i].Rank > maxRank })
	return ranked[:n]
}

// Top is Within(Dense(items), maxRank).
func Top[K comparable](items []Item[K], maxRank int) []Ranked[K] {
	return Within(Dense(items), maxRank)
}
