// Package analyzer extracts surface features from task text: a category
// label from keyword matches and a complexity score in [0,100].
//
// The default KeywordAnalyzer scans keyword sets in the fixed priority
// order Programming, MathReasoning, SimpleQA; the first set with any match
// decides the category, regardless of how many matches later sets have.
// Keyword sets, intent markers, weights and the whole scoring formula can
// be replaced through options.
package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/m4xw311/thinkmode/task"
)

// Analyzer computes features from text. Implementations must be
// deterministic and safe for concurrent use.
type Analyzer interface {
	Analyze(text string) task.Features
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`\n]+`")
	clauseSepRe  = regexp.MustCompile(`[，,；;。！!？?\n]+|\.\s+`)

	mathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$[^$]+\$`),             // inline LaTeX
		regexp.MustCompile(`\\[a-zA-Z]+`),           // LaTeX commands
		regexp.MustCompile(`[∑∏∫∆∇√]`),              // operators
		regexp.MustCompile(`\d+\s*[+\-*/^]\s*\d+`), // arithmetic
		regexp.MustCompile(`[=<>≤≥≠]`),              // relations
		regexp.MustCompile(`[∈∉⊂⊃∩∪]`),              // sets
	}
)

// KeywordAnalyzer is the default Analyzer.
type KeywordAnalyzer struct {
	keywords map[task.Category][]string
	intents  []Intent
	scorer   Scorer

	matchers       map[task.Category][]matcher
	intentMatchers [][]matcher
}

// Option configures a KeywordAnalyzer.
type Option func(*KeywordAnalyzer)

// WithKeywords replaces the keyword set of one category. Setting keywords
// for Other has no effect.
func WithKeywords(c task.Category, words ...string) Option {
	return func(a *KeywordAnalyzer) {
		if c == task.Other {
			return
		}
		a.keywords[c] = append([]string(nil), words...)
	}
}

// WithIntents replaces the intent table.
func WithIntents(intents ...Intent) Option {
	return func(a *KeywordAnalyzer) {
		a.intents = append([]Intent(nil), intents...)
	}
}

// WithWeights replaces the default weights.
func WithWeights(w Weights) Option {
	return func(a *KeywordAnalyzer) {
		a.scorer = w
	}
}

// WithScorer replaces the scoring formula.
func WithScorer(s Scorer) Option {
	return func(a *KeywordAnalyzer) {
		a.scorer = s
	}
}

// New builds a KeywordAnalyzer from the defaults and opts.
func New(opts ...Option) *KeywordAnalyzer {
	a := &KeywordAnalyzer{
		keywords: DefaultKeywords(),
		intents:  DefaultIntents(),
		scorer:   DefaultWeights(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.matchers = make(map[task.Category][]matcher, len(a.keywords))
	for c, words := range a.keywords {
		a.matchers[c] = compile(words)
	}
	a.intentMatchers = make([][]matcher, len(a.intents))
	for i, in := range a.intents {
		a.intentMatchers[i] = compile(in.Markers)
	}
	return a
}

// Analyze implements Analyzer. Empty or whitespace-only text is category
// Other with score 0.
func (a *KeywordAnalyzer) Analyze(text string) task.Features {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return task.Features{Category: task.Other, KeywordHits: []string{}}
	}
	lower := strings.ToLower(trimmed)

	category := task.Other
	hits := make(map[string]bool)
	for _, c := range task.Categories {
		matched := 0
		for _, m := range a.matchers[c] {
			if m.match(lower) {
				hits[m.word] = true
				matched++
			}
		}
		if matched > 0 && category == task.Other {
			category = c
		}
	}

	s := a.Signals(trimmed)
	score := clamp(a.scorer.Score(s), 0, 100)

	return task.Features{
		Category:        category,
		KeywordHits:     sortedKeys(hits),
		TextLength:      s.Runes,
		ComplexityScore: score,
	}
}

// Signals measures text without classifying it. It is exported so custom
// scorers can be tested against the same measurements.
func (a *KeywordAnalyzer) Signals(text string) Signals {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	s := Signals{Runes: utf8.RuneCountInString(trimmed)}
	if trimmed == "" {
		return s
	}

	distinct := make(map[string]bool)
	for _, c := range task.Categories {
		for _, m := range a.matchers[c] {
			if m.match(lower) {
				distinct[m.word] = true
			}
		}
	}
	s.Keywords = len(distinct)

	blocks := codeBlockRe.FindAllStringIndex(trimmed, -1)
	s.CodeBlocks = len(blocks)
	prose := codeBlockRe.ReplaceAllString(trimmed, " ")
	s.InlineCode = len(inlineCodeRe.FindAllStringIndex(prose, -1))

	for _, re := range mathPatterns {
		if re.MatchString(prose) {
			s.MathMarkers++
		}
	}

	for _, clause := range clauseSepRe.Split(prose, -1) {
		if strings.TrimSpace(clause) != "" {
			s.Clauses++
		}
	}

	for i, in := range a.intents {
		for _, m := range a.intentMatchers[i] {
			if m.match(lower) {
				s.Intents = append(s.Intents, in)
				break
			}
		}
	}
	return s
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
