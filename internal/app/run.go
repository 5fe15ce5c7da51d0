package app

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/multirun"
	"github.com/vk/taskgrid/internal/report"
)

// Run executes every run declared in the grid and writes the execution
// report. It returns an error only when at least one run failed or the
// execution itself could not start; a report rendering problem is logged
// and does not discard the computed outcomes.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	argSets := a.grid.ExternalArgs()
	a.logger.Info("Starting execution.", "runs", len(argSets), "workers", cfg.Workers)

	runner := multirun.NewRunner(a.workflow, multirun.Config{
		Workers:   cfg.Workers,
		LogDir:    cfg.ReportDir,
		LogFormat: cfg.LogFormat,
		LogLevel:  cfg.LogLevel,
	})

	summary, err := runner.RunAll(ctx, argSets)
	if err != nil {
		return fmt.Errorf("execution failed to start: %w", err)
	}

	if path, err := report.Write(ctx, a.workflow, summary, cfg.ReportDir); err != nil {
		// Outcomes are already computed; a reporting failure must not
		// invalidate them.
		a.logger.Error("Failed to write execution report.", "error", err)
	} else {
		fmt.Fprintf(a.outW, "Report written to %s\n", path)
	}

	a.logger.Info("Execution finished.", "succeeded", summary.Succeeded(), "failed", summary.Failed())

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(summary.Outcomes))
	}
	return nil
}
