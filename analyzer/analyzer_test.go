package analyzer

import (
	"testing"

	"github.com/m4xw311/thinkmode/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmpty(t *testing.T) {
	a := New()
	for _, text := range []string{"", "   ", "\n\t"} {
		f := a.Analyze(text)
		assert.Equal(t, task.Other, f.Category)
		assert.Zero(t, f.ComplexityScore)
		assert.Zero(t, f.TextLength)
		assert.Empty(t, f.KeywordHits)
	}
}

func TestAnalyzeExamples(t *testing.T) {
	a := New()

	fib := a.Analyze("请编写一个Python函数计算斐波那契数列")
	assert.Equal(t, task.Programming, fib.Category)
	assert.Equal(t, []string{"python", "函数", "计算"}, fib.KeywordHits)
	assert.Equal(t, 21, fib.TextLength)
	assert.InDelta(t, 20.1, fib.ComplexityScore, 1e-9)

	proof := a.Analyze("证明1+1=2")
	assert.Equal(t, task.MathReasoning, proof.Category)
	assert.Equal(t, []string{"证明"}, proof.KeywordHits)
	assert.InDelta(t, 66.7, proof.ComplexityScore, 1e-9)

	qa := a.Analyze("什么是机器学习？")
	assert.Equal(t, task.SimpleQA, qa.Category)
	assert.Less(t, qa.ComplexityScore, 25.0)
}

func TestCategoryPriority(t *testing.T) {
	a := New()

	// Matches both math (solve, equation) and programming (python, function);
	// programming wins even though math has as many hits.
	f := a.Analyze("Write a python function to solve the equation")
	assert.Equal(t, task.Programming, f.Category)
	assert.Contains(t, f.KeywordHits, "solve")
	assert.Contains(t, f.KeywordHits, "python")

	f = a.Analyze("What is the derivative of x^2?")
	assert.Equal(t, task.MathReasoning, f.Category)

	f = a.Analyze("设计一个分布式系统来处理每秒100万次请求")
	assert.Equal(t, task.Other, f.Category)
}

func TestWordBoundaryMatching(t *testing.T) {
	a := New()
	f := a.Analyze("a rapid rise in classification")
	assert.NotContains(t, f.KeywordHits, "api")
	assert.NotContains(t, f.KeywordHits, "class")
	assert.Equal(t, task.Other, f.Category)

	f = a.Analyze("Explain the API of this class")
	assert.Equal(t, task.Programming, f.Category)
	assert.Equal(t, []string{"api", "class"}, f.KeywordHits)
}

func TestDeterminism(t *testing.T) {
	a := New()
	text := "Prove step by step that the algorithm terminates, then optimize it.\n```go\nfor {}\n```"
	first := a.Analyze(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.Analyze(text))
	}
}

func TestScoreBounded(t *testing.T) {
	a := New()
	long := ""
	for i := 0; i < 400; i++ {
		long += "证明并验证这个算法的优化设计，逐步分析 function proof matrix `x` "
	}
	long += "```py\nprint(1)\n```"
	f := a.Analyze(long)
	assert.LessOrEqual(t, f.ComplexityScore, 100.0)
	assert.GreaterOrEqual(t, f.ComplexityScore, 90.0)
}

func TestSignals(t *testing.T) {
	a := New()
	s := a.Signals("Check `x`, then verify: $a^2+b^2=c^2$.\n```\ncode\n```")
	assert.Equal(t, 1, s.CodeBlocks)
	assert.Equal(t, 1, s.InlineCode)
	assert.Equal(t, 2, s.MathMarkers) // inline LaTeX and "="
	assert.Greater(t, s.Clauses, 1)
	require.Len(t, s.Intents, 1)
	assert.Equal(t, "verify", s.Intents[0].Name)
}

func TestWithKeywords(t *testing.T) {
	a := New(WithKeywords(task.Programming, "goroutine"))
	assert.Equal(t, task.Programming, a.Analyze("why does my goroutine leak").Category)
	assert.Equal(t, task.SimpleQA, a.Analyze("why write a python function").Category)

	// Other never carries keywords.
	b := New(WithKeywords(task.Other, "anything"))
	assert.Equal(t, task.Other, b.Analyze("anything").Category)
}

func TestWithScorer(t *testing.T) {
	a := New(WithScorer(ScorerFunc(func(s Signals) float64 { return float64(s.Runes) * 10 })))
	assert.Equal(t, 50.0, a.Analyze("hello").ComplexityScore)
	assert.Equal(t, 100.0, a.Analyze("hello world").ComplexityScore)

	neg := New(WithScorer(ScorerFunc(func(Signals) float64 { return -5 })))
	assert.Zero(t, neg.Analyze("hello").ComplexityScore)
}

func TestWithWeightsAndIntents(t *testing.T) {
	w := DefaultWeights()
	w.IntentCap = 0
	a := New(WithWeights(w))
	assert.InDelta(t, 16.7, a.Analyze("证明1+1=2").ComplexityScore, 1e-9)

	b := New(WithIntents(Intent{Name: "urgent", Markers: []string{"asap"}, Points: 40}))
	s := b.Signals("fix this asap")
	require.Len(t, s.Intents, 1)
	assert.Equal(t, "urgent", s.Intents[0].Name)
}
