package executor

import "time"

// External is the dynamic input supplied to one task for one run, in
// addition to whatever its prerequisites produce. Named entries are merged
// into the task's named inputs and win over upstream results on key
// collisions. Inputs, when non-empty, replaces the positional prerequisite
// results outright; it is the way to seed a source task that has no
// upstream producer.
type External struct {
	Inputs []any
	Named  map[string]any
}

// Args maps task names to their external arguments for a single run. Tasks
// absent from the map receive no external arguments.
type Args map[string]External

// TaskStat records the timing of one task execution within a run.
type TaskStat struct {
	StartedAt time.Time
	Elapsed   time.Duration
}

// Results is the immutable outcome of one successful run: the values
// produced by the workflow's terminal tasks plus run-level timing metadata.
// Intermediate results are discarded; they exist only to feed downstream
// tasks. Results is never mutated after Execute returns.
type Results struct {
	// Values maps each terminal task name to the value it produced.
	Values map[string]any

	StartedAt  time.Time
	FinishedAt time.Time

	// Stats holds per-task timing for every task that executed.
	Stats map[string]TaskStat
}

// Elapsed returns the total wall time of the run.
func (r *Results) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
