package giveaway

import (
	"fmt"
	"sync"
	"testing"

	"giveaway-picker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrants(n int) []model.Comment {
	out := make([]model.Comment, n)
	for i := range out {
		out[i] = model.Comment{ID: fmt.Sprint(i + 1), Username: fmt.Sprintf("user%d", i+1)}
	}
	return out
}

func TestSelectCountsAndPositions(t *testing.T) {
	sel := NewSeededSelector(7)
	cases := []struct{ pool, n, want int }{
		{8, 3, 3},
		{2, 5, 2},
		{0, 3, 0},
		{5, 0, 0},
		{5, -1, 0},
		{4, 4, 4},
	}
	for _, tc := range cases {
		winners := sel.Select(entrants(tc.pool), tc.n)
		require.NotNil(t, winners)
		require.Len(t, winners, tc.want, "pool=%d n=%d", tc.pool, tc.n)
		seen := map[string]bool{}
		for i, w := range winners {
			assert.Equal(t, i+1, w.Position)
			assert.False(t, seen[w.ID], "winner %s drawn twice", w.ID)
			seen[w.ID] = true
		}
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	pool := entrants(10)
	before := append([]model.Comment(nil), pool...)
	NewSeededSelector(1).Select(pool, 5)
	assert.Equal(t, before, pool)
}

func TestSelectIsReproducibleWithSeed(t *testing.T) {
	a := NewSeededSelector(42).Select(entrants(20), 5)
	b := NewSeededSelector(42).Select(entrants(20), 5)
	assert.Equal(t, a, b)
}

func TestSelectNeverPicksSameEntrantTwice(t *testing.T) {
	pool := []model.Comment{
		{ID: "1", Username: "alice", Text: "first"},
		{ID: "2", Username: "alice", Text: "second"},
		{ID: "3", Username: "bob"},
	}
	winners := NewSelector().Select(pool, 3)
	require.Len(t, winners, 2)
	assert.NotEqual(t, winners[0].Username, winners[1].Username)
}

func TestSelectIsRoughlyUniform(t *testing.T) {
	const rounds = 20000
	sel := NewSeededSelector(2024)
	pool := entrants(5)
	counts := map[string]int{}
	for i := 0; i < rounds; i++ {
		counts[sel.Select(pool, 1)[0].ID]++
	}
	for id, c := range counts {
		assert.InDelta(t, rounds/5, c, rounds/5*0.1, "entrant %s", id)
	}
	assert.Len(t, counts, 5)
}

func TestSelectConcurrentUse(t *testing.T) {
	sel := NewSelector()
	pool := entrants(50)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, sel.Select(pool, 10), 10)
		}()
	}
	wg.Wait()
}
