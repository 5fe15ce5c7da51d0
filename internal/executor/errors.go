package executor

import (
	"fmt"
	"time"
)

// ExecutionError reports the failure of a single run. It names exactly the
// task whose contract failed and wraps the underlying cause; timing
// collected before the failure is preserved in Stats.
type ExecutionError struct {
	// Task is the name of the failing task.
	Task string
	// Err is the error returned by the task's Run.
	Err error

	StartedAt time.Time
	FailedAt  time.Time
	// Stats holds timing for the tasks that completed (and the failing
	// task's start) before the run was halted.
	Stats map[string]TaskStat
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("workflow execution failed at task %q: %v", e.Task, e.Err)
}

// Unwrap exposes the task's own error to errors.Is / errors.As.
func (e *ExecutionError) Unwrap() error { return e.Err }
