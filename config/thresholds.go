package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/m4xw311/thinkmode/errors"
)

// Threshold names as they appear in configuration files.
const (
	KeyNonThinkingMax  = "non_thinking_max"
	KeySimplifiedMin   = "simplified_min"
	KeySimplifiedMax   = "simplified_max"
	KeyFullThinkingMin = "full_thinking_min"
)

var thresholdKeys = []string{KeyNonThinkingMax, KeySimplifiedMin, KeySimplifiedMax, KeyFullThinkingMin}

// Thresholds are the complexity-score boundaries between reasoning modes.
type Thresholds struct {
	NonThinkingMax  float64 `json:"non_thinking_max" yaml:"non_thinking_max"`
	SimplifiedMin   float64 `json:"simplified_min" yaml:"simplified_min"`
	SimplifiedMax   float64 `json:"simplified_max" yaml:"simplified_max"`
	FullThinkingMin float64 `json:"full_thinking_min" yaml:"full_thinking_min"`
}

// DefaultThresholds mirrors the values the routing heuristic was tuned with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NonThinkingMax:  30,
		SimplifiedMin:   25,
		SimplifiedMax:   70,
		FullThinkingMin: 65,
	}
}

// Override replaces individual thresholds for one category. Nil fields
// keep the default.
type Override struct {
	NonThinkingMax  *float64 `json:"non_thinking_max,omitempty" yaml:"non_thinking_max,omitempty"`
	SimplifiedMin   *float64 `json:"simplified_min,omitempty" yaml:"simplified_min,omitempty"`
	SimplifiedMax   *float64 `json:"simplified_max,omitempty" yaml:"simplified_max,omitempty"`
	FullThinkingMin *float64 `json:"full_thinking_min,omitempty" yaml:"full_thinking_min,omitempty"`
}

func (o Override) apply(t Thresholds) Thresholds {
	if o.NonThinkingMax != nil {
		t.NonThinkingMax = *o.NonThinkingMax
	}
	if o.SimplifiedMin != nil {
		t.SimplifiedMin = *o.SimplifiedMin
	}
	if o.SimplifiedMax != nil {
		t.SimplifiedMax = *o.SimplifiedMax
	}
	if o.FullThinkingMin != nil {
		t.FullThinkingMin = *o.FullThinkingMin
	}
	return t
}

// merge layers next over o.
func (o Override) merge(next Override) Override {
	if next.NonThinkingMax != nil {
		o.NonThinkingMax = next.NonThinkingMax
	}
	if next.SimplifiedMin != nil {
		o.SimplifiedMin = next.SimplifiedMin
	}
	if next.SimplifiedMax != nil {
		o.SimplifiedMax = next.SimplifiedMax
	}
	if next.FullThinkingMin != nil {
		o.FullThinkingMin = next.FullThinkingMin
	}
	return o
}

// ThresholdConfig is the complete threshold table: defaults plus optional
// per-category overrides keyed by category name.
type ThresholdConfig struct {
	Default   Thresholds          `json:"default" yaml:"default"`
	Overrides map[string]Override `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// DefaultThresholdConfig returns the default table. Programming tasks may
// stay in non-thinking mode up to 40 and math reasoning switches to full
// thinking from 50.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		Default: DefaultThresholds(),
		Overrides: map[string]Override{
			"programming":    {NonThinkingMax: ptr(40)},
			"math_reasoning": {FullThinkingMin: ptr(50)},
		},
	}
}

// UniformThresholdConfig returns a table that applies t to every category.
func UniformThresholdConfig(t Thresholds) ThresholdConfig {
	return ThresholdConfig{Default: t, Overrides: map[string]Override{}}
}

// For returns the effective thresholds for a category.
func (c ThresholdConfig) For(category string) Thresholds {
	if o, ok := c.Overrides[category]; ok {
		return o.apply(c.Default)
	}
	return c.Default
}

// Clone returns a deep copy.
func (c ThresholdConfig) Clone() ThresholdConfig {
	out := ThresholdConfig{Default: c.Default, Overrides: make(map[string]Override, len(c.Overrides))}
	for k, v := range c.Overrides {
		out.Overrides[k] = Override{
			NonThinkingMax:  clonePtr(v.NonThinkingMax),
			SimplifiedMin:   clonePtr(v.SimplifiedMin),
			SimplifiedMax:   clonePtr(v.SimplifiedMax),
			FullThinkingMin: clonePtr(v.FullThinkingMin),
		}
	}
	return out
}

// Validate checks numeric sanity. Inverted or overlapping bands are not
// errors: they are returned as warnings for the caller to log.
func (c ThresholdConfig) Validate() ([]string, error) {
	categories := []string{""}
	for name := range c.Overrides {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var warnings []string
	for _, name := range categories {
		t := c.Default
		label := "default"
		if name != "" {
			t = c.For(name)
			label = name
		}
		for key, v := range t.values() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Configuration("%s: %s must be a finite number", label, key)
			}
		}
		if t.SimplifiedMin > t.SimplifiedMax {
			warnings = append(warnings, fmt.Sprintf("%s: simplified_min %.1f exceeds simplified_max %.1f", label, t.SimplifiedMin, t.SimplifiedMax))
		}
		if t.NonThinkingMax >= t.FullThinkingMin {
			warnings = append(warnings, fmt.Sprintf("%s: non_thinking_max %.1f is not below full_thinking_min %.1f", label, t.NonThinkingMax, t.FullThinkingMin))
		}
	}
	return warnings, nil
}

func (t Thresholds) values() map[string]float64 {
	return map[string]float64{
		KeyNonThinkingMax:  t.NonThinkingMax,
		KeySimplifiedMin:   t.SimplifiedMin,
		KeySimplifiedMax:   t.SimplifiedMax,
		KeyFullThinkingMin: t.FullThinkingMin,
	}
}

// ParseThresholds converts a name -> value mapping into Thresholds. All
// four names are required and every value must be numeric.
func ParseThresholds(raw map[string]any) (Thresholds, error) {
	var t Thresholds
	for _, key := range thresholdKeys {
		v, ok := raw[key]
		if !ok {
			return Thresholds{}, errors.Configuration("missing required threshold %q", key)
		}
		f, err := toFloat(key, v)
		if err != nil {
			return Thresholds{}, err
		}
		t.set(key, f)
	}
	if err := unknownKeys(raw); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

func parseOverride(raw map[string]any) (Override, error) {
	if err := unknownKeys(raw); err != nil {
		return Override{}, err
	}
	var o Override
	for key, v := range raw {
		f, err := toFloat(key, v)
		if err != nil {
			return Override{}, err
		}
		switch key {
		case KeyNonThinkingMax:
			o.NonThinkingMax = ptr(f)
		case KeySimplifiedMin:
			o.SimplifiedMin = ptr(f)
		case KeySimplifiedMax:
			o.SimplifiedMax = ptr(f)
		case KeyFullThinkingMin:
			o.FullThinkingMin = ptr(f)
		}
	}
	return o, nil
}

func (t *Thresholds) set(key string, v float64) {
	switch key {
	case KeyNonThinkingMax:
		t.NonThinkingMax = v
	case KeySimplifiedMin:
		t.SimplifiedMin = v
	case KeySimplifiedMax:
		t.SimplifiedMax = v
	case KeyFullThinkingMin:
		t.FullThinkingMin = v
	}
}

func unknownKeys(raw map[string]any) error {
	for key := range raw {
		known := false
		for _, k := range thresholdKeys {
			if k == key {
				known = true
				break
			}
		}
		if !known {
			return errors.Configuration("unknown threshold %q", key)
		}
	}
	return nil
}

func toFloat(key string, v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return 0, errors.Configuration("threshold %q is not numeric: %v", key, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Configuration("threshold %q must be a finite number", key)
	}
	return f, nil
}

func ptr(v float64) *float64 { return &v }

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
