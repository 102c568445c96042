package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_NormalizedFillsDefaults(t *testing.T) {
	t.Parallel()

	got := Options{}.normalized()

	assert.Equal(t, DefaultBottleneckThreshold, got.BottleneckThreshold)
	assert.Equal(t, DefaultQuickWinDepth, got.QuickWinDepth)
	assert.Equal(t, DefaultRecommendationLimit, got.RecommendationLimit)
	assert.Equal(t, StrategyBFS, got.ImpactStrategy)
}

func TestOptions_NormalizedKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	in := Options{
		BottleneckThreshold: 7,
		QuickWinDepth:       1,
		RecommendationLimit: 10,
		ImpactStrategy:      StrategySweep,
	}
	assert.Equal(t, in, in.normalized())
}

func TestOptions_NormalizedRejectsNegative(t *testing.T) {
	t.Parallel()

	got := Options{
		BottleneckThreshold: -1,
		QuickWinDepth:       -3,
		RecommendationLimit: -10,
		ImpactStrategy:      Strategy("turbo"),
	}.normalized()

	assert.Equal(t, DefaultOptions(), got)
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"bfs", "sweep"} {
		s, err := ParseStrategy(valid)
		require.NoError(t, err)
		assert.Equal(t, Strategy(valid), s)
	}

	_, err := ParseStrategy("dijkstra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown impact strategy")
}
