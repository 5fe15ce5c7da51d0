// Package task defines the execution contract every unit of work in a
// workflow must satisfy. The engine is generic over the values tasks
// exchange: it moves results between tasks but never inspects them.
package task

import "context"

// Task is a named unit of work. Any value implementing this interface can be
// a node in a workflow; there is no base type to embed. Static configuration
// belongs to the concrete implementation (struct fields or closed-over
// values) and is bound at construction, before the workflow is built.
type Task interface {
	// Name is the task's identity. It must be stable and unique within a
	// single workflow.
	Name() string

	// Run executes the task against the assembled invocation and returns the
	// produced value, or an error if the task's own logic fails. The engine
	// neither retries nor suppresses a returned error.
	Run(ctx context.Context, in *Invocation) (any, error)
}

// Invocation carries the inputs assembled for one task execution.
//
// Inputs holds the results of the task's prerequisites in dependency
// declaration order. Named holds the same results keyed by dependency name,
// overlaid with the run's external keyword arguments; on a key collision the
// external value wins, which lets every run override or seed inputs that
// have no upstream producer.
type Invocation struct {
	Inputs []any
	Named  map[string]any
}

// Named1 returns the single named input under key, or nil when absent.
// Convenience for the common one-argument task body.
func (in *Invocation) Named1(key string) any {
	if in == nil || in.Named == nil {
		return nil
	}
	return in.Named[key]
}

// First returns the first positional input, or nil when the task has no
// prerequisites and no external positional arguments.
func (in *Invocation) First() any {
	if in == nil || len(in.Inputs) == 0 {
		return nil
	}
	return in.Inputs[0]
}
