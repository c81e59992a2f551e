// Package reasoning provides the adaptive reasoning system: the component
// that takes a task's text, decides how much reasoning it needs, and runs it
// against a completion backend.
//
// # Pipeline
//
// Every task goes through the same three stages:
//
//   - analyzer: text to Features (category, keyword hits, complexity score)
//   - evaluator: Features and thresholds to a Decision (mode, confidence, rationale)
//   - executor: mode-specific prompt sent to the llm.Backend, timed
//
// The System then records the result in its run statistics. Statistics
// only ever count successful tasks; a backend failure is returned to the
// caller as an execution error and never replaced by a cheaper mode.
//
// # Usage
//
//	sys, err := reasoning.New(cfg, backend, reasoning.WithLogger(logger))
//	if err != nil {
//	    // configuration error
//	}
//
//	res, err := sys.ProcessTask(ctx, "证明1+1=2", "")
//	res, err = sys.ProcessTask(ctx, text, "t1", reasoning.ForceMode(task.FullThinking))
//
//	results, err := sys.BatchProcess(ctx, inputs)
//	var be *reasoning.BatchError
//	if errors.As(err, &be) {
//	    // results holds every task that succeeded, in input order
//	}
//
// # Configuration
//
// Thresholds, keyword sets and mode profiles come from a config.Config
// supplied to New. Reconfigure swaps the whole configuration atomically;
// a running batch keeps the configuration it started with.
//
// # Concurrency
//
// BatchProcess runs tasks on a bounded worker pool (config concurrency,
// default 4). Results are held in per-input slots, so the output order
// matches the input order whatever order the backend completes in.
// Canceling the context stops new tasks from starting; tasks that never
// ran are reported in the returned *BatchError.
package reasoning
