package wish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistTableWeights(t *testing.T) {
	tb, err := newDistTable(100, 200, [2]int{50, 50})
	require.NoError(t, err)
	assert.Equal(t, [5]int{5000, 10000, 20000, 30000, 100000}, tb.cum)
}

func TestDistTableRejectsOverfullRates(t *testing.T) {
	_, err := newDistTable(600, 500, [2]int{50, 50})
	assert.ErrorIs(t, err, ErrRateRange)
}

func TestDistTableSampleFrequencies(t *testing.T) {
	tb, err := newDistTable(100, 200, [2]int{50, 50})
	require.NoError(t, err)

	rng := NewSeededRNG(42)
	const n = 100000
	var counts [5]int
	for i := 0; i < n; i++ {
		counts[tb.sample(rng)]++
	}

	want := [5]float64{0.05, 0.05, 0.10, 0.10, 0.70}
	for i, w := range want {
		freq := float64(counts[i]) / n
		assert.InDeltaf(t, w, freq, 0.01, "outcome %d", i)
	}
}
