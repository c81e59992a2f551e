package evaluator

import (
	"testing"

	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/task"
	"github.com/stretchr/testify/assert"
)

func features(c task.Category, score float64) task.Features {
	return task.Features{Category: c, ComplexityScore: score}
}

func TestSelectBoundaries(t *testing.T) {
	uniform := config.UniformThresholdConfig(config.DefaultThresholds())

	tests := []struct {
		name     string
		category task.Category
		score    float64
		want     task.Mode
	}{
		{"programming at non_thinking_max", task.Programming, 30, task.NonThinking},
		{"programming above non_thinking_max", task.Programming, 30.01, task.Simplified},
		{"programming high score", task.Programming, 99, task.Simplified},
		{"math at full_thinking_min", task.MathReasoning, 65, task.FullThinking},
		{"math below full_thinking_min", task.MathReasoning, 64.99, task.Simplified},
		{"math zero", task.MathReasoning, 0, task.Simplified},
		{"qa below simplified_min", task.SimpleQA, 24.99, task.NonThinking},
		{"qa at simplified_min", task.SimpleQA, 25, task.Simplified},
		{"qa at simplified_max", task.SimpleQA, 70, task.Simplified},
		{"qa above simplified_max", task.SimpleQA, 70.01, task.FullThinking},
		{"other zero", task.Other, 0, task.NonThinking},
		{"other middle", task.Other, 50, task.Simplified},
		{"other max", task.Other, 100, task.FullThinking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Select(features(tt.category, tt.score), uniform)
			assert.Equal(t, tt.want, d.Mode)
			assert.GreaterOrEqual(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 1.0)
			assert.NotEmpty(t, d.Rationale)
			assert.False(t, d.Forced())
		})
	}
}

func TestSelectCategoryOverrides(t *testing.T) {
	cfg := config.DefaultThresholdConfig()

	assert.Equal(t, task.NonThinking, Select(features(task.Programming, 40), cfg).Mode)
	assert.Equal(t, task.Simplified, Select(features(task.Programming, 40.1), cfg).Mode)
	assert.Equal(t, task.FullThinking, Select(features(task.MathReasoning, 50), cfg).Mode)
	assert.Equal(t, task.Simplified, Select(features(task.MathReasoning, 49.9), cfg).Mode)

	// Categories without an override use the defaults.
	assert.Equal(t, task.NonThinking, Select(features(task.SimpleQA, 24), cfg).Mode)
	assert.Equal(t, task.FullThinking, Select(features(task.Other, 71), cfg).Mode)
}

func TestSelectExamples(t *testing.T) {
	for _, cfg := range []config.ThresholdConfig{
		config.DefaultThresholdConfig(),
		config.UniformThresholdConfig(config.DefaultThresholds()),
	} {
		fib := task.Features{Category: task.Programming, KeywordHits: []string{"python", "函数", "计算"}, TextLength: 21, ComplexityScore: 20.1}
		assert.Equal(t, task.NonThinking, Select(fib, cfg).Mode)

		proof := task.Features{Category: task.MathReasoning, KeywordHits: []string{"证明"}, TextLength: 7, ComplexityScore: 66.7}
		assert.Equal(t, task.FullThinking, Select(proof, cfg).Mode)

		empty := task.Features{Category: task.Other, KeywordHits: []string{}}
		assert.Equal(t, task.NonThinking, Select(empty, cfg).Mode)
	}
}

func TestSelectReadsThresholdsPerCall(t *testing.T) {
	f := features(task.SimpleQA, 50)
	assert.Equal(t, task.Simplified, Select(f, config.UniformThresholdConfig(config.DefaultThresholds())).Mode)

	tight := config.Thresholds{NonThinkingMax: 10, SimplifiedMin: 10, SimplifiedMax: 40, FullThinkingMin: 40}
	assert.Equal(t, task.FullThinking, Select(f, config.UniformThresholdConfig(tight)).Mode)
}

func TestConfidence(t *testing.T) {
	uniform := config.UniformThresholdConfig(config.DefaultThresholds())

	// On a boundary the decision is least certain.
	assert.Zero(t, Select(features(task.Programming, 30), uniform).Confidence)
	assert.Zero(t, Select(features(task.SimpleQA, 25), uniform).Confidence)

	// Far from every boundary it approaches 1.
	assert.InDelta(t, 1.0, Select(features(task.Programming, 0), uniform).Confidence, 1e-9)
	assert.InDelta(t, 1.0, Select(features(task.Other, 100), uniform).Confidence, 1e-9)
	assert.InDelta(t, 1.0, Select(features(task.Other, 47.5), uniform).Confidence, 1e-9)

	// Halfway between the boundary and the end of the region.
	assert.InDelta(t, 0.5, Select(features(task.MathReasoning, 82.5), uniform).Confidence, 1e-9)
}

func TestConfidenceDegenerateRegions(t *testing.T) {
	zero := config.Thresholds{NonThinkingMax: 0, SimplifiedMin: 50, SimplifiedMax: 50, FullThinkingMin: 100}
	cfg := config.UniformThresholdConfig(zero)

	d := Select(features(task.Programming, 0), cfg)
	assert.Equal(t, task.NonThinking, d.Mode)
	assert.Zero(t, d.Confidence)

	d = Select(features(task.Other, 50), cfg)
	assert.Equal(t, task.Simplified, d.Mode)
	assert.Zero(t, d.Confidence)

	d = Select(features(task.MathReasoning, 100), cfg)
	assert.Equal(t, task.FullThinking, d.Mode)
	assert.Zero(t, d.Confidence)
}

func TestInvertedBandStillDecides(t *testing.T) {
	inverted := config.Thresholds{NonThinkingMax: 30, SimplifiedMin: 70, SimplifiedMax: 25, FullThinkingMin: 65}
	cfg := config.UniformThresholdConfig(inverted)

	assert.Equal(t, task.NonThinking, Select(features(task.Other, 50), cfg).Mode)
	assert.Equal(t, task.FullThinking, Select(features(task.Other, 75), cfg).Mode)
}

func TestForced(t *testing.T) {
	for _, m := range task.Modes {
		d := Forced(m)
		assert.Equal(t, m, d.Mode)
		assert.Equal(t, 1.0, d.Confidence)
		assert.Equal(t, "forced", d.Rationale)
		assert.True(t, d.Forced())
	}
}

func TestRationale(t *testing.T) {
	d := Select(features(task.Programming, 20.1), config.DefaultThresholdConfig())
	assert.Equal(t, "programming: score 20.1 <= non_thinking_max 40.0", d.Rationale)

	d = Select(features(task.SimpleQA, 50), config.DefaultThresholdConfig())
	assert.Equal(t, "simple_qa: score 50.0 within [25.0, 70.0]", d.Rationale)
}
