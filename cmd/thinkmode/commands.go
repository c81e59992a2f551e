package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/mcpserver"
	"github.com/m4xw311/thinkmode/reasoning"
	"github.com/m4xw311/thinkmode/session"
	"github.com/m4xw311/thinkmode/task"
	"github.com/m4xw311/thinkmode/terminal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		force   string
		id      string
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run <text>",
		Short: "Route and run a single task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []reasoning.TaskOption
			if force != "" {
				mode, err := task.ParseMode(force)
				if err != nil {
					return errors.Input(err, "--force")
				}
				opts = append(opts, reasoning.ForceMode(mode))
			}

			sys, cleanup, err := root.system(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := sys.ProcessTask(cmd.Context(), strings.Join(args, " "), id, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			if verbose {
				fmt.Fprintf(out, "Category: %s, complexity %.1f, keywords %v\n",
					res.Features.Category, res.Features.ComplexityScore, res.Features.KeywordHits)
			}
			fmt.Fprintf(out, "Mode: %s (confidence %.2f, %s)\n", res.Decision.Mode, res.Decision.Confidence, res.Decision.Rationale)
			fmt.Fprintln(out, res.Response)
			fmt.Fprintf(out, "(%.3fs)\n", res.ExecutionTimeSeconds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&force, "force", "f", "", "force a reasoning mode instead of scoring the task")
	cmd.Flags().StringVar(&id, "id", "", "task id (default: generated)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the extracted features")
	return cmd
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <text>",
		Short: "Show the features and mode chosen for a task without calling the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, cleanup, err := root.system(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			features, decision := sys.Decide(strings.Join(args, " "))
			analysis := struct {
				Features task.Features `json:"features" yaml:"features"`
				Decision task.Decision `json:"decision" yaml:"decision"`
			}{features, decision}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}
			return writeYAML(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		concurrency int
		report      string
	)

	cmd := &cobra.Command{
		Use:   "batch <pattern>...",
		Short: "Run every task in the matching YAML or JSON task files",
		Long: `Run every task in the task files matching the given patterns.
Patterns support ** (for example "tasks/**/*.yaml"). Results are printed as
JSON in input order; failed tasks are reported and make the command fail
after all results are printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch report {
			case "", "json", "yaml":
			default:
				return errors.Input(nil, "--report must be json or yaml, got %q", report)
			}

			inputs, err := task.LoadGlob(args...)
			if err != nil {
				return err
			}

			var extra []reasoning.Option
			if concurrency > 0 {
				extra = append(extra, reasoning.WithConcurrency(concurrency))
			}
			sys, cleanup, err := root.system(cmd, extra...)
			if err != nil {
				return err
			}
			defer cleanup()

			results, batchErr := sys.BatchProcess(cmd.Context(), inputs)
			var be *reasoning.BatchError
			if batchErr != nil && !errors.As(batchErr, &be) {
				return batchErr
			}

			out := cmd.OutOrStdout()
			if results == nil {
				results = []task.Result{}
			}
			if err := writeJSON(out, results); err != nil {
				return err
			}

			rep := session.NewReport(sys.Statistics())
			switch report {
			case "json":
				if err := rep.WriteJSON(out); err != nil {
					return err
				}
			case "yaml":
				if err := rep.WriteYAML(out); err != nil {
					return err
				}
			}

			if be != nil {
				for _, f := range be.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "task %s failed: %v\n", f.TaskID, f.Err)
				}
				return batchErr
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "maximum concurrent backend calls (default: from config)")
	cmd.Flags().StringVar(&report, "report", "", "also print the statistics report: json or yaml")
	return cmd
}

func newReplCmd(root *rootOptions) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "repl [initial prompt]",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, cleanup, err := root.system(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), "Thinkmode is ready. Type a task, or /help for commands.")
			term := terminal.New(sys, cmd.InOrStdin(), cmd.OutOrStdout())
			term.SetVerbose(verbose)
			return term.Run(cmd.Context(), strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the extracted features for each task")
	return cmd
}

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the thinkmode tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sys, cleanup, err := root.system(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return mcpserver.RunStdio(cmd.Context(), mcpserver.NewServer(sys))
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
