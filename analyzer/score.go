package analyzer

import "math"

// Signals are the raw surface measurements taken from a task's text.
type Signals struct {
	Runes       int
	Keywords    int // distinct keyword hits across all categories
	CodeBlocks  int
	InlineCode  int
	MathMarkers int // math patterns present, counted once each
	Clauses     int
	Intents     []Intent
}

// Scorer turns Signals into a complexity score. Results outside [0,100]
// are clamped by the analyzer.
type Scorer interface {
	Score(s Signals) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(s Signals) float64

func (f ScorerFunc) Score(s Signals) float64 { return f(s) }

// Weights is the default Scorer: a weighted sum of signals in which each
// group's contribution is capped.
type Weights struct {
	PerRune   float64
	LengthCap float64

	PerKeyword float64
	KeywordCap float64

	CodeBlock    float64
	InlineCode   float64
	MathMarker   float64
	ExtraClause  float64
	StructureCap float64

	IntentCap float64
}

// DefaultWeights returns the weights the default thresholds are tuned for.
func DefaultWeights() Weights {
	return Weights{
		PerRune:      0.1,
		LengthCap:    25,
		PerKeyword:   6,
		KeywordCap:   30,
		CodeBlock:    10,
		InlineCode:   5,
		MathMarker:   5,
		ExtraClause:  3,
		StructureCap: 20,
		IntentCap:    50,
	}
}

func (w Weights) Score(s Signals) float64 {
	length := math.Min(float64(s.Runes)*w.PerRune, w.LengthCap)
	keywords := math.Min(float64(s.Keywords)*w.PerKeyword, w.KeywordCap)

	extraClauses := 0
	if s.Clauses > 1 {
		extraClauses = s.Clauses - 1
	}
	structure := float64(s.CodeBlocks)*w.CodeBlock +
		float64(s.InlineCode)*w.InlineCode +
		float64(s.MathMarkers)*w.MathMarker +
		float64(extraClauses)*w.ExtraClause
	structure = math.Min(structure, w.StructureCap)

	var intent float64
	for _, in := range s.Intents {
		intent += in.Points
	}
	intent = math.Min(intent, w.IntentCap)

	return length + keywords + structure + intent
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
