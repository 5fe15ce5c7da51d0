package workflow

import "fmt"

// CycleError reports that the declared dependency relation is not acyclic.
// Task names at least one task participating in the cycle.
type CycleError struct {
	Task string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency detected involving task %q", e.Task)
}

// DuplicateTaskError reports that the same task name was declared more than
// once. Each task must appear exactly once as a graph node.
type DuplicateTaskError struct {
	Task string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("task %q declared more than once", e.Task)
}

// UnknownTaskError reports a prerequisite that is not itself declared in the
// workflow.
type UnknownTaskError struct {
	Task string
	Need string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("task %q depends on %q, which is not declared in the workflow", e.Task, e.Need)
}
