// Package task holds the value types that flow through the routing
// pipeline: categories, reasoning modes, extracted features, mode decisions
// and per-task results.
package task

import (
	"strings"

	"github.com/m4xw311/thinkmode/errors"
)

// Category is a coarse task-type label.
type Category string

const (
	Programming   Category = "programming"
	MathReasoning Category = "math_reasoning"
	SimpleQA      Category = "simple_qa"
	Other         Category = "other"
)

// Categories lists every category in detection priority order.
var Categories = []Category{Programming, MathReasoning, SimpleQA, Other}

// ParseCategory resolves a category name such as "math_reasoning".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", errors.New("unknown category %q", s)
}

// Mode is a reasoning mode requested from the backend.
type Mode string

const (
	NonThinking  Mode = "non_thinking"
	Simplified   Mode = "simplified"
	FullThinking Mode = "full_thinking"
)

// Modes lists every reasoning mode from least to most scaffolding.
var Modes = []Mode{NonThinking, Simplified, FullThinking}

// ParseMode resolves a mode name. Hyphens are accepted in place of
// underscores so "full-thinking" works on the command line.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", errors.New("unknown reasoning mode %q", s)
}

// Features are the surface features extracted from a task's text.
type Features struct {
	Category        Category `json:"category" yaml:"category"`
	KeywordHits     []string `json:"keyword_hits" yaml:"keyword_hits"`
	TextLength      int      `json:"text_length" yaml:"text_length"`
	ComplexityScore float64  `json:"complexity_score" yaml:"complexity_score"`
}

// Decision is the reasoning mode chosen for a task.
type Decision struct {
	Mode       Mode    `json:"mode" yaml:"mode"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Rationale  string  `json:"rationale" yaml:"rationale"`
}

// Forced reports whether the decision bypassed scoring.
func (d Decision) Forced() bool {
	return d.Rationale == ForcedRationale
}

// ForcedRationale is the rationale recorded for caller-forced modes.
const ForcedRationale = "forced"

// Input is one entry of a batch.
type Input struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`
}

// Result is the outcome of one processed task.
type Result struct {
	TaskID               string   `json:"task_id" yaml:"task_id"`
	Decision             Decision `json:"decision" yaml:"decision"`
	Response             string   `json:"response" yaml:"response"`
	ExecutionTimeSeconds float64  `json:"execution_time_seconds" yaml:"execution_time_seconds"`
	Features             Features `json:"features" yaml:"features"`
}
