package ts

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSolver/internal/qap"
)

func TestTabuListExpiry(t *testing.T) {
	tl := newTabuList(8)
	k := moveKey(3, 1, 2)
	tl.Add(k, 10)

	assert.True(t, tl.IsTabu(k, 9))
	assert.False(t, tl.IsTabu(k, 10))
	assert.False(t, tl.IsTabu(moveKey(3, 2, 1), 0))
}

func TestTabuListEvictsOldest(t *testing.T) {
	tl := newTabuList(8)
	first := moveKey(1, 0, 1)
	tl.Add(first, 100)
	for i := 0; i < 8; i++ {
		tl.Add(moveKey(2, i+1, 0), 100)
	}
	assert.False(t, tl.IsTabu(first, 0))
	assert.True(t, tl.IsTabu(moveKey(2, 8, 0), 0))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.NeighborsPerIter = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Neighborhood = "2opt"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestSolveReturnsConsistentCost(t *testing.T) {
	inst := qap.RandomInstance(10, 0, 25, rand.New(rand.NewSource(6)))
	eval, err := qap.NewEvaluator(inst)
	require.NoError(t, err)

	for _, nb := range []Neighborhood{NeighborhoodSwap, NeighborhoodInsert} {
		t.Run(string(nb), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Iterations = 200
			cfg.Neighborhood = nb

			s, err := New(cfg, rand.New(rand.NewSource(5)))
			require.NoError(t, err)
			res, err := s.Solve(context.Background(), inst)
			require.NoError(t, err)

			require.NoError(t, qap.ValidatePermutation(res.Permutation, inst.Size))
			assert.Equal(t, eval.MustCostOf(res.Permutation), res.Cost)
			assert.Equal(t, 200, res.Iterations)
			assert.Equal(t, 1+200*cfg.NeighborsPerIter, res.Evaluations)
		})
	}
}

func TestSolveDegenerateSize(t *testing.T) {
	inst, err := qap.NewInstance([][]int64{{4}}, [][]int64{{2}})
	require.NoError(t, err)

	s, err := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Permutation)
	assert.Equal(t, int64(8), res.Cost)
}
