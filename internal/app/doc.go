// Package app wires the engine together for the CLI: logger construction,
// grid loading, workflow building, multi-run execution and report writing.
package app
