package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/llm"
	"github.com/m4xw311/thinkmode/reasoning"
)

// createTestSystem creates a reasoning system on the simulated backend
func createTestSystem(t *testing.T) *reasoning.System {
	t.Helper()
	sys, err := reasoning.New(config.Default(), llm.NewSimulatedBackend())
	if err != nil {
		t.Fatalf("Failed to create system: %v", err)
	}
	return sys
}

func run(t *testing.T, sys *reasoning.System, input, initialPrompt string) string {
	t.Helper()
	var out bytes.Buffer
	term := New(sys, strings.NewReader(input), &out)
	if err := term.Run(context.Background(), initialPrompt); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestTerminalNew(t *testing.T) {
	sys := createTestSystem(t)
	term := New(sys, strings.NewReader(""), &bytes.Buffer{})
	if term == nil {
		t.Fatal("Expected terminal instance, got nil")
	}
	if term.sys != sys {
		t.Fatal("Terminal system doesn't match the provided system")
	}
}

func TestTerminalRun(t *testing.T) {
	sys := createTestSystem(t)

	// Initial prompt is processed, then EOF ends the session
	out := run(t, sys, "", "证明1+1=2")
	if !strings.Contains(out, "Mode: full_thinking") {
		t.Errorf("Expected full_thinking decision, got:\n%s", out)
	}
	if !strings.Contains(out, "Thinkmode: "+llm.SimulatedResponse("full_thinking")) {
		t.Errorf("Expected simulated response, got:\n%s", out)
	}

	// Without initial prompt and no input the session ends immediately
	out = run(t, sys, "", "")
	if out != "Task: " {
		t.Errorf("Expected a single prompt, got %q", out)
	}

	if got := sys.Statistics().TotalTasks; got != 1 {
		t.Errorf("Expected 1 task recorded, got %d", got)
	}
}

func TestTerminalCommands(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"Task", "请编写一个Python函数计算斐波那契数列\n", []string{"Mode: non_thinking", "Thinkmode: "}},
		{"Force", "/force simplified hello\n", []string{"Mode: simplified (confidence 1.00, forced)"}},
		{"ForceBadMode", "/force fast hello\n", []string{"Error: ", "unknown reasoning mode"}},
		{"Decide", "/decide 证明1+1=2\n", []string{"Category: math_reasoning", "Mode: full_thinking"}},
		{"Stats", "hello\n/stats\n", []string{"total_tasks: 1"}},
		{"Reset", "hello\n/reset\n/stats\n", []string{"Statistics cleared.", "total_tasks: 0"}},
		{"Help", "/help\n", []string{"/force <mode> <text>"}},
		{"Unknown", "/nope\n", []string{"Error: unknown command /nope"}},
		{"Quit", "/quit\nhello\n", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, createTestSystem(t), tc.input, "")
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("Expected output to contain %q, got:\n%s", w, out)
				}
			}
		})
	}
}

func TestTerminalQuitStopsReading(t *testing.T) {
	sys := createTestSystem(t)
	run(t, sys, "/quit\nhello\n", "")
	if got := sys.Statistics().TotalTasks; got != 0 {
		t.Errorf("Expected no tasks after /quit, got %d", got)
	}
}

func TestTerminalVerbose(t *testing.T) {
	var out bytes.Buffer
	term := New(createTestSystem(t), strings.NewReader("what is go?\n"), &out)
	term.SetVerbose(true)
	if err := term.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Category: simple_qa") {
		t.Errorf("Expected features in verbose output, got:\n%s", out.String())
	}
}
