package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-event-injector/pkg/core"
)

func TestIndexPool_DrawsEachIndexOnce(t *testing.T) {
	pool := NewIndexPool(100)
	sampler := core.NewSeededSampler(42)

	seen := make(map[int]bool, 100)
	for i := 0; i < 100; i++ {
		idx, ok := pool.Draw(sampler)
		require.True(t, ok)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 100)
		require.False(t, seen[idx])
		seen[idx] = true
	}
	assert.Zero(t, pool.Len())
	assert.Equal(t, 100, pool.Size())

	_, ok := pool.Draw(sampler)
	assert.False(t, ok)
}

func TestIndexPool_FirstDrawUniform(t *testing.T) {
	sampler := core.NewSeededSampler(9)
	counts := make([]int, 4)
	const trials = 20000
	for i := 0; i < trials; i++ {
		idx, ok := NewIndexPool(4).Draw(sampler)
		require.True(t, ok)
		counts[idx]++
	}
	for idx, c := range counts {
		assert.InDelta(t, 0.25, float64(c)/trials, 0.015, "index %d", idx)
	}
}
