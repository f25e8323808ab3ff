package ranking_test

import (
	"testing"

	"github.com/okian/crease/internal/domain/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(pairs ...interface{}) []ranking.Item[string] {
	out := make([]ranking.Item[string], 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ranking.Item[string]{Key: pairs[i].(string), Metric: pairs[i+1].(float64)})
	}
	return out
}

func ranks(r []ranking.Ranked[string]) map[string]int {
	m := make(map[string]int, len(r))
	for _, e := range r {
		m[e.Key] = e.Rank
	}
	return m
}

func TestDense(t *testing.T) {
	tests := []struct {
		name string
		in   []ranking.Item[string]
		want map[string]int
	}{
		{
			name: "empty",
			in:   nil,
			want: map[string]int{},
		},
		{
			name: "distinct values",
			in:   items("a", 10.0, "b", 30.0, "c", 20.0),
			want: map[string]int{"b": 1, "c": 2, "a": 3},
		},
		{
			name: "ties share a rank without gaps",
			in:   items("a", 5.0, "b", 9.0, "c", 9.0, "d", 1.0),
			want: map[string]int{"b": 1, "c": 1, "a": 2, "d": 3},
		},
		{
			name: "all equal",
			in:   items("a", 2.0, "b", 2.0, "c", 2.0),
			want: map[string]int{"a": 1, "b": 1, "c": 1},
		},
		{
			name: "negative and zero metrics",
			in:   items("a", 0.0, "b", -1.0, "c", 0.0),
			want: map[string]int{"a": 1, "c": 1, "b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ranking.Dense(tt.in)
			require.Len(t, got, len(tt.in))
			assert.Equal(t, tt.want, ranks(got))
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].Rank, got[i].Rank)
				assert.GreaterOrEqual(t, got[i-1].Metric, got[i].Metric)
			}
		})
	}
}

func TestDense_StableForTies(t *testing.T) {
	got := ranking.Dense(items("z", 3.0, "a", 3.0, "m", 3.0))
	require.Len(t, got, 3)
	assert.Equal(t, "z", got[0].Key)
	assert.Equal(t, "a", got[1].Key)
	assert.Equal(t, "m", got[2].Key)
}

func TestDense_DoesNotModifyInput(t *testing.T) {
	in := items("a", 1.0, "b", 2.0)
	_ = ranking.Dense(in)
	assert.Equal(t, "a", in[0].Key)
	assert.Equal(t, "b", in[1].Key)
}

func TestTop(t *testing.T) {
	in := items("a", 100.0, "b", 90.0, "c", 90.0, "d", 80.0, "e", 70.0, "f", 80.0)

	top3 := ranking.Top(in, 3)
	// ranks: a=1, b=c=2, d=f=3, e=4
	assert.Len(t, top3, 5)
	assert.NotContains(t, ranks(top3), "e")

	top1 := ranking.Top(in, 1)
	require.Len(t, top1, 1)
	assert.Equal(t, "a", top1[0].Key)

	assert.Empty(t, ranking.Top(in, 0))
	assert.Len(t, ranking.Top(in, 10), len(in))
}
