package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/Rook/internal/analysis"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	cfg := NewDefaults()
	require.NotNil(t, cfg)

	assert.Equal(t, "docs/tasks", cfg.Project.TasksDir)
	assert.Equal(t, 2, cfg.Analysis.BottleneckThreshold)
	assert.Equal(t, 2, cfg.Analysis.QuickWinDepth)
	assert.Equal(t, 5, cfg.Analysis.RecommendationLimit)
	assert.Equal(t, "bfs", cfg.Analysis.ImpactStrategy)
	assert.Equal(t, "text", cfg.Output.Format)

	// Project name is project-specific and stays empty.
	assert.Empty(t, cfg.Project.Name, "project name should be empty by default")
}

func TestNewDefaults_MatchEngineDefaults(t *testing.T) {
	t.Parallel()
	cfg := NewDefaults()

	// The config defaults mirror the engine defaults so projects without a
	// rook.toml behave identically to freshly initialized ones.
	assert.Equal(t, analysis.DefaultBottleneckThreshold, cfg.Analysis.BottleneckThreshold)
	assert.Equal(t, analysis.DefaultQuickWinDepth, cfg.Analysis.QuickWinDepth)
	assert.Equal(t, analysis.DefaultRecommendationLimit, cfg.Analysis.RecommendationLimit)
	assert.Equal(t, string(analysis.StrategyBFS), cfg.Analysis.ImpactStrategy)
}

func TestNewDefaults_PassValidation(t *testing.T) {
	t.Parallel()
	vr := Validate(NewDefaults(), nil)
	assert.False(t, vr.HasErrors(), "defaults should never fail validation: %v", vr.Errors())
}
