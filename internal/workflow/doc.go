// Package workflow builds and validates the directed acyclic graph of tasks
// that the executors run. A Workflow is constructed once from an ordered list
// of task declarations, validated for duplicate names and cycles at build
// time, and treated as immutable afterwards; a single Workflow value is
// safely shared read-only by any number of concurrent runs.
package workflow
