package analyzer

import (
	"regexp"
	"strings"

	"github.com/m4xw311/thinkmode/task"
)

// DefaultKeywords returns the built-in keyword set for each detectable
// category. Other has no keywords: it is what remains when nothing matches.
func DefaultKeywords() map[task.Category][]string {
	return map[task.Category][]string{
		task.Programming: {
			"function", "class", "def", "import", "dict", "array", "variable",
			"algorithm", "code", "program", "programming", "script", "debug",
			"compile", "python", "javascript", "typescript", "golang", "java",
			"rust", "sql", "api", "regex",
			"函数", "变量", "算法", "代码", "程序", "脚本", "调试", "编译",
			"编程", "数组", "链表", "接口",
		},
		task.MathReasoning: {
			"equation", "formula", "calculate", "solve", "proof", "prove",
			"theorem", "lemma", "derivative", "integral", "matrix", "vector",
			"probability", "statistics", "geometry",
			"方程", "公式", "计算", "求解", "证明", "定理", "引理", "导数",
			"积分", "矩阵", "向量", "概率", "统计", "几何",
		},
		task.SimpleQA: {
			"what", "who", "when", "where", "which", "why", "how",
			"什么", "谁", "哪", "为什么", "怎么", "如何", "是否", "吗",
			"?", "？",
		},
	}
}

// Intent is a family of markers signalling that a task asks for extra
// rigour. Matching any marker adds Points once.
type Intent struct {
	Name    string
	Markers []string
	Points  float64
}

// DefaultIntents returns the built-in intent table.
func DefaultIntents() []Intent {
	return []Intent{
		{Name: "proof", Markers: []string{"证明", "求证", "prove", "proof"}, Points: 50},
		{Name: "verify", Markers: []string{"验证", "检查", "确认", "verify", "validate", "check"}, Points: 15},
		{Name: "stepwise", Markers: []string{"逐步", "步骤", "推导", "step by step", "derive", "derivation"}, Points: 15},
		{Name: "algorithm", Markers: []string{"算法", "algorithm"}, Points: 10},
		{Name: "optimize", Markers: []string{"优化", "optimize", "optimise", "optimization"}, Points: 10},
		{Name: "design", Markers: []string{"设计", "架构", "design", "architecture"}, Points: 10},
		{Name: "analyze", Markers: []string{"分析", "analyze", "analyse", "analysis"}, Points: 10},
	}
}

// matcher finds one keyword in lower-cased text. ASCII words match on word
// boundaries so that "api" does not fire inside "rapid"; everything else
// (CJK terms, punctuation) matches as a substring.
type matcher struct {
	word string
	re   *regexp.Regexp
}

func newMatcher(word string) (matcher, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return matcher{}, false
	}
	m := matcher{word: w}
	if isASCIIWord(w) {
		m.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return m, true
}

func (m matcher) match(lower string) bool {
	if m.re != nil {
		return m.re.MatchString(lower)
	}
	return strings.Contains(lower, m.word)
}

func compile(words []string) []matcher {
	seen := make(map[string]bool, len(words))
	out := make([]matcher, 0, len(words))
	for _, w := range words {
		m, ok := newMatcher(w)
		if !ok || seen[m.word] {
			continue
		}
		seen[m.word] = true
		out = append(out, m)
	}
	return out
}

func isASCIIWord(w string) bool {
	for i := 0; i < len(w); i++ {
		c := w[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
		case c == ' ' || c == '-':
			if i == 0 || i == len(w)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
