// Package evaluator maps task features to a reasoning mode.
//
// Rules are evaluated top-down and the first match wins:
//
//  1. Programming: score <= non_thinking_max is NonThinking, otherwise Simplified.
//  2. MathReasoning: score >= full_thinking_min is FullThinking, otherwise Simplified.
//  3. Every other category: score < simplified_min is NonThinking,
//     score > simplified_max is FullThinking, and the closed band
//     [simplified_min, simplified_max] is Simplified.
//
// The thresholds are read from the ThresholdConfig passed on each call;
// nothing is cached between calls.
package evaluator

import (
	"fmt"
	"math"

	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/task"
)

// Select chooses the reasoning mode for f under cfg.
func Select(f task.Features, cfg config.ThresholdConfig) task.Decision {
	t := cfg.For(string(f.Category))
	score := f.ComplexityScore

	switch f.Category {
	case task.Programming:
		if score <= t.NonThinkingMax {
			return decide(task.NonThinking, confidence(score, t.NonThinkingMax, 0, t.NonThinkingMax),
				"programming: score %.1f <= non_thinking_max %.1f", score, t.NonThinkingMax)
		}
		return decide(task.Simplified, confidence(score, t.NonThinkingMax, t.NonThinkingMax, 100),
			"programming: score %.1f > non_thinking_max %.1f", score, t.NonThinkingMax)

	case task.MathReasoning:
		if score >= t.FullThinkingMin {
			return decide(task.FullThinking, confidence(score, t.FullThinkingMin, t.FullThinkingMin, 100),
				"math_reasoning: score %.1f >= full_thinking_min %.1f", score, t.FullThinkingMin)
		}
		return decide(task.Simplified, confidence(score, t.FullThinkingMin, 0, t.FullThinkingMin),
			"math_reasoning: score %.1f < full_thinking_min %.1f", score, t.FullThinkingMin)
	}

	label := string(f.Category)
	switch {
	case score < t.SimplifiedMin:
		return decide(task.NonThinking, confidence(score, t.SimplifiedMin, 0, t.SimplifiedMin),
			"%s: score %.1f < simplified_min %.1f", label, score, t.SimplifiedMin)
	case score > t.SimplifiedMax:
		return decide(task.FullThinking, confidence(score, t.SimplifiedMax, t.SimplifiedMax, 100),
			"%s: score %.1f > simplified_max %.1f", label, score, t.SimplifiedMax)
	default:
		return decide(task.Simplified, bandConfidence(score, t.SimplifiedMin, t.SimplifiedMax),
			"%s: score %.1f within [%.1f, %.1f]", label, score, t.SimplifiedMin, t.SimplifiedMax)
	}
}

// Forced returns a decision for a caller-chosen mode. Scoring is bypassed.
func Forced(mode task.Mode) task.Decision {
	return task.Decision{Mode: mode, Confidence: 1.0, Rationale: task.ForcedRationale}
}

func decide(mode task.Mode, conf float64, format string, a ...any) task.Decision {
	return task.Decision{Mode: mode, Confidence: conf, Rationale: fmt.Sprintf(format, a...)}
}

// confidence is the distance from score to boundary, normalised by the
// extent of the region [lo, hi] the score falls in.
func confidence(score, boundary, lo, hi float64) float64 {
	extent := hi - lo
	if extent <= 0 {
		return 0
	}
	return clamp01(math.Abs(score-boundary) / extent)
}

// bandConfidence peaks at the centre of [min, max] and is 0 at either edge.
func bandConfidence(score, min, max float64) float64 {
	half := (max - min) / 2
	if half <= 0 {
		return 0
	}
	nearest := math.Min(math.Abs(score-min), math.Abs(max-score))
	return clamp01(nearest / half)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
