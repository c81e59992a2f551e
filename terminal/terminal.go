package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m4xw311/thinkmode/reasoning"
	"github.com/m4xw311/thinkmode/session"
	"github.com/m4xw311/thinkmode/task"
)

// Terminal handles the interactive line mode for the reasoning system
type Terminal struct {
	sys     *reasoning.System
	in      io.Reader
	out     io.Writer
	verbose bool
}

// New creates a new Terminal instance reading from in and writing to out
func New(sys *reasoning.System, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		sys: sys,
		in:  in,
		out: out,
	}
}

// SetVerbose makes every turn print the task's features before the response.
func (t *Terminal) SetVerbose(v bool) {
	t.verbose = v
}

// Run starts the interactive session. It returns when input is exhausted,
// on /quit or /exit, or when ctx is done.
func (t *Terminal) Run(ctx context.Context, initialPrompt string) error {
	// If there's an initial prompt from the command line, use it first
	if initialPrompt != "" {
		if err := t.processTurn(ctx, initialPrompt); err != nil {
			fmt.Fprintf(t.out, "Error: %v\n", err)
		}
	}

	scanner := bufio.NewScanner(t.in)
	for ctx.Err() == nil {
		fmt.Fprint(t.out, "Task: ")
		if !scanner.Scan() {
			// EOF or read error ends the session
			break
		}

		userInput := strings.TrimSpace(scanner.Text())
		if userInput == "" {
			continue
		}

		// Exit commands
		if userInput == "/quit" || userInput == "/exit" {
			break
		}

		if err := t.handle(ctx, userInput); err != nil {
			fmt.Fprintf(t.out, "Error: %v\n", err)
		}
	}

	return scanner.Err()
}

// handle dispatches slash commands; anything else is a task.
func (t *Terminal) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		return t.processTurn(ctx, line)
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "/stats":
		return session.NewReport(t.sys.Statistics()).WriteYAML(t.out)
	case "/reset":
		t.sys.Reset()
		fmt.Fprintln(t.out, "Statistics cleared.")
		return nil
	case "/decide":
		features, decision := t.sys.Decide(rest)
		t.printFeatures(features)
		t.printDecision(decision)
		return nil
	case "/force":
		modeName, text, _ := strings.Cut(rest, " ")
		mode, err := task.ParseMode(modeName)
		if err != nil {
			return err
		}
		return t.processTurn(ctx, strings.TrimSpace(text), reasoning.ForceMode(mode))
	case "/help":
		fmt.Fprint(t.out, helpText)
		return nil
	default:
		return fmt.Errorf("unknown command %s, try /help", cmd)
	}
}

const helpText = `Commands:
  /force <mode> <text>  run text in non_thinking, simplified or full_thinking
  /decide <text>        show the chosen mode without running the task
  /stats                show run statistics
  /reset                clear run statistics
  /quit, /exit          leave
`

// processTurn runs a single task and prints the outcome
func (t *Terminal) processTurn(ctx context.Context, text string, opts ...reasoning.TaskOption) error {
	opts = append(opts, reasoning.OnDecision(func(f task.Features, d task.Decision) {
		if t.verbose {
			t.printFeatures(f)
		}
		t.printDecision(d)
	}))

	res, err := t.sys.ProcessTask(ctx, text, "", opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "Thinkmode: %s\n", res.Response)
	fmt.Fprintf(t.out, "(%.3fs)\n", res.ExecutionTimeSeconds)
	return nil
}

func (t *Terminal) printFeatures(f task.Features) {
	fmt.Fprintf(t.out, "Category: %s, complexity %.1f, keywords %v\n", f.Category, f.ComplexityScore, f.KeywordHits)
}

func (t *Terminal) printDecision(d task.Decision) {
	fmt.Fprintf(t.out, "Mode: %s (confidence %.2f, %s)\n", d.Mode, d.Confidence, d.Rationale)
}
