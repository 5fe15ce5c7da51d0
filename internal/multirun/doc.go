// Package multirun executes many independent runs of one workflow, each
// against its own set of external arguments, sequentially or across a
// bounded pool of workers. The workflow is shared read-only; every other
// piece of per-run state (result table, arguments, timing, log) is private
// to its run, so no locking is needed. A failing run fills its own outcome
// slot and never aborts a sibling run.
package multirun
