// Package executor renders the mode-specific prompt for a task and
// dispatches it to a backend.
package executor

import (
	"context"
	"strings"
	"time"

	"github.com/m4xw311/thinkmode/config"
	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/llm"
	"github.com/m4xw311/thinkmode/task"
)

const (
	simplifiedInstruction   = "Reason briefly: identify the key step, apply it, and state the answer concisely."
	fullThinkingInstruction = "Think step by step. Analyse the problem, work through each step in detail, " +
		"verify the result before finalising, and then state the final answer."
)

// BuildPrompt renders the prompt sent to the backend for mode. NonThinking
// sends the task text unchanged.
func BuildPrompt(mode task.Mode, text string) string {
	switch mode {
	case task.Simplified:
		return strings.TrimRight(text, "\n") + "\n\n" + simplifiedInstruction
	case task.FullThinking:
		return strings.TrimRight(text, "\n") + "\n\n" + fullThinkingInstruction
	default:
		return text
	}
}

// Executor sends prompts to a backend using the generation profile of the
// selected mode.
type Executor struct {
	backend  llm.Backend
	profiles map[task.Mode]config.ModeProfile
}

// New creates an Executor. Modes missing from profiles use the built-in
// defaults.
func New(backend llm.Backend, profiles map[string]config.ModeProfile) *Executor {
	defaults := config.Default().Modes
	p := make(map[task.Mode]config.ModeProfile, len(task.Modes))
	for _, m := range task.Modes {
		if prof, ok := profiles[string(m)]; ok {
			p[m] = prof
		} else {
			p[m] = defaults[string(m)]
		}
	}
	return &Executor{backend: backend, profiles: p}
}

// Request builds the backend request for text under mode.
func (e *Executor) Request(mode task.Mode, text string) llm.Request {
	prof := e.profiles[mode]
	return llm.Request{
		Prompt:      BuildPrompt(mode, text),
		Mode:        mode,
		Model:       prof.Model,
		MaxTokens:   prof.MaxTokens,
		Temperature: prof.Temperature,
	}
}

// Execute runs text in the decided mode and returns the response and the
// wall-clock time spent in the backend call. Failures are execution errors;
// no fallback response is ever produced.
func (e *Executor) Execute(ctx context.Context, text string, d task.Decision) (string, time.Duration, error) {
	req := e.Request(d.Mode, text)

	start := time.Now()
	resp, err := e.backend.Complete(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		if !errors.IsExecution(err) {
			reason := errors.ReasonTransport
			if errors.Is(err, context.DeadlineExceeded) {
				reason = errors.ReasonTimeout
			}
			err = errors.Execution(reason, err, "backend call failed")
		}
		return "", elapsed, err
	}
	return resp, elapsed, nil
}

// Outcome is the result of an asynchronous Execute.
type Outcome struct {
	Response string
	Elapsed  time.Duration
	Err      error
}

// Start runs Execute in a new goroutine. The returned channel receives
// exactly one Outcome and is then closed.
func (e *Executor) Start(ctx context.Context, text string, d task.Decision) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		resp, elapsed, err := e.Execute(ctx, text, d)
		ch <- Outcome{Response: resp, Elapsed: elapsed, Err: err}
	}()
	return ch
}
