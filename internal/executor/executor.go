package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/task"
	"github.com/vk/taskgrid/internal/workflow"
)

// Execute runs every task of wf in topological order, threading results
// forward, and returns the terminal results. On the first task failure it
// stops immediately and returns a *ExecutionError naming that task; no
// downstream task executes. The workflow is only read, never written, so a
// single Workflow may serve any number of concurrent Execute calls with
// private args.
func Execute(ctx context.Context, wf *workflow.Workflow, args Args) (*Results, error) {
	logger := ctxlog.FromContext(ctx)

	startedAt := time.Now()
	stats := make(map[string]TaskStat, wf.Size())
	// table holds every produced result for the duration of the run, keyed
	// by task name. It is private to this call.
	table := make(map[string]any, wf.Size())

	logger.Debug("Starting workflow run.", "tasks", wf.Size())

	for _, t := range wf.TopologicalOrder() {
		name := t.Name()

		if err := ctx.Err(); err != nil {
			return nil, &ExecutionError{
				Task:      name,
				Err:       err,
				StartedAt: startedAt,
				FailedAt:  time.Now(),
				Stats:     stats,
			}
		}

		in, err := assembleInvocation(wf, name, table, args)
		if err != nil {
			return nil, &ExecutionError{
				Task:      name,
				Err:       err,
				StartedAt: startedAt,
				FailedAt:  time.Now(),
				Stats:     stats,
			}
		}

		taskStart := time.Now()
		logger.Debug("Running task.", "task", name)
		value, err := t.Run(ctx, in)
		elapsed := time.Since(taskStart)
		stats[name] = TaskStat{StartedAt: taskStart, Elapsed: elapsed}

		if err != nil {
			logger.Error("Task failed, halting run.", "task", name, "error", err)
			return nil, &ExecutionError{
				Task:      name,
				Err:       err,
				StartedAt: startedAt,
				FailedAt:  time.Now(),
				Stats:     stats,
			}
		}

		logger.Debug("Task finished.", "task", name, "elapsed", elapsed)
		table[name] = value
	}

	results := &Results{
		Values:     make(map[string]any),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Stats:      stats,
	}
	for _, t := range wf.Terminals() {
		results.Values[t.Name()] = table[t.Name()]
	}

	logger.Debug("Workflow run finished.", "elapsed", results.Elapsed())
	return results, nil
}

// assembleInvocation builds the call inputs for one task: the ordered and
// named results of its prerequisites, overlaid with the run's external
// arguments for that task. External named values win on key collisions;
// external positional inputs, when present, replace the prerequisite
// results.
func assembleInvocation(wf *workflow.Workflow, name string, table map[string]any, args Args) (*task.Invocation, error) {
	deps, ok := wf.DependenciesOf(name)
	if !ok {
		return nil, fmt.Errorf("task %q missing from workflow", name)
	}

	in := &task.Invocation{
		Named: make(map[string]any, len(deps)),
	}
	for _, dep := range deps {
		value, produced := table[dep.Name()]
		if !produced {
			// Upstream tasks always run first in topological order; a miss
			// means the graph and the order disagree.
			return nil, fmt.Errorf("result of prerequisite %q not available", dep.Name())
		}
		in.Inputs = append(in.Inputs, value)
		in.Named[dep.Name()] = value
	}

	ext, ok := args[name]
	if !ok {
		return in, nil
	}
	if len(ext.Inputs) > 0 {
		in.Inputs = ext.Inputs
	}
	for k, v := range ext.Named {
		in.Named[k] = v
	}
	return in, nil
}
