// Package report renders a self-contained HTML summary of one multi-run
// execution: aggregate statistics, per-run status and timing, and the
// workflow topology. It is pure formatting over already-computed outcomes;
// a reporting failure never invalidates the outcomes themselves.
package report
