// Package executor runs one workflow against one set of external arguments.
// Tasks execute strictly sequentially in the workflow's topological order;
// results thread forward through an in-memory table private to the run. The
// executor itself is side-effect-free beyond timing and result bookkeeping.
package executor
