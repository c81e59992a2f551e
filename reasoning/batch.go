package reasoning

import (
	"context"
	"fmt"
	"strings"

	"github.com/m4xw311/thinkmode/errors"
	"github.com/m4xw311/thinkmode/task"
	"golang.org/x/sync/errgroup"
)

// TaskFailure is one task of a batch that produced no result.
type TaskFailure struct {
	TaskID string
	Err    error
}

// BatchError lists the tasks omitted from a batch's results, either
// because the backend failed or because the batch was canceled first.
type BatchError struct {
	Failures []TaskFailure
}

func (e *BatchError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.TaskID
	}
	return fmt.Sprintf("%d task(s) failed: %s", len(e.Failures), strings.Join(ids, ", "))
}

// Unwrap exposes every failure cause to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

type slot struct {
	result task.Result
	err    error
	done   bool
}

// BatchProcess runs every input and returns the successful results in input
// order. Inputs without an id are named "batch_task_<index>". An empty
// batch or a duplicate id is rejected with an input error before anything
// runs. Up to the configured number of tasks run concurrently, all with the
// settings active when the batch started. Failed tasks, and tasks never
// started because ctx was done, are omitted from the results and reported
// in a *BatchError alongside them.
func (s *System) BatchProcess(ctx context.Context, inputs []task.Input) ([]task.Result, error) {
	if len(inputs) == 0 {
		return nil, errors.Input(errors.ErrEmptyBatch, "batch has no tasks")
	}

	ids := make([]string, len(inputs))
	seen := make(map[string]int, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("batch_task_%d", i)
		}
		if prev, ok := seen[id]; ok {
			return nil, errors.Input(errors.ErrDuplicateTaskID, "task id %q used at positions %d and %d", id, prev, i)
		}
		seen[id] = i
		ids[i] = id
	}

	st := s.current.Load()
	s.logger.Info("batch started", "tasks", len(inputs), "workers", st.workers)

	slots := make([]slot, len(inputs))
	var g errgroup.Group
	g.SetLimit(st.workers)
	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}
			res, err := s.process(ctx, st, in.Text, ids[i], taskOptions{})
			slots[i] = slot{result: res, err: err, done: true}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]task.Result, 0, len(inputs))
	var failures []TaskFailure
	for i, sl := range slots {
		switch {
		case !sl.done:
			cause := ctx.Err()
			if cause == nil {
				cause = context.Canceled
			}
			failures = append(failures, TaskFailure{TaskID: ids[i], Err: errors.Wrapf(cause, "task %s not started", ids[i])})
		case sl.err != nil:
			failures = append(failures, TaskFailure{TaskID: ids[i], Err: sl.err})
		default:
			results = append(results, sl.result)
		}
	}

	s.logger.Info("batch finished", "succeeded", len(results), "failed", len(failures))
	if len(failures) > 0 {
		return results, &BatchError{Failures: failures}
	}
	return results, nil
}
