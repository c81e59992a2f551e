// Package terminal implements the interactive line mode for thinkmode.
//
// Each line read is treated as a task: the terminal prints the chosen
// reasoning mode with its confidence and rationale, then the backend's
// response and the time it took. Lines starting with a slash are commands.
//
// # Usage
//
//	sys, err := reasoning.New(cfg, backend)
//	if err != nil {
//	    // handle error
//	}
//
//	term := terminal.New(sys, os.Stdin, os.Stdout)
//	err = term.Run(ctx, initialPrompt)
//
// # Commands
//
//   - /force <mode> <text>: run text in the given mode, bypassing scoring
//   - /decide <text>: show features and the chosen mode without calling the backend
//   - /stats: print the run statistics report as YAML
//   - /reset: clear run statistics
//   - /help: list commands
//   - /quit, /exit: leave the session
package terminal
