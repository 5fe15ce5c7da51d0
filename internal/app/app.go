package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/hclgrid"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/workflow"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	grid     *hclgrid.Grid
	workflow *workflow.Workflow
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry, the
// grid loaded and the workflow built and validated. A startup failure (bad
// grid file, unknown task type, cyclic dependencies) panics; main recovers
// and turns it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Task modules registered.", "count", len(modules), "types", reg.Types())

	grid, err := hclgrid.Load(ctx, cfg.GridPath)
	if err != nil {
		// A failure to load the grid is a fatal startup error.
		panic(fmt.Errorf("failed to load grid: %w", err))
	}

	wf, err := hclgrid.BuildWorkflow(ctx, grid, reg)
	if err != nil {
		panic(fmt.Errorf("failed to build workflow: %w", err))
	}
	logger.Debug("Workflow validated.", "tasks", wf.Size())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		grid:     grid,
		workflow: wf,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Workflow returns the validated workflow. This is primarily for testing.
func (a *App) Workflow() *workflow.Workflow { return a.workflow }

// Grid returns the loaded grid model. This is primarily for testing.
func (a *App) Grid() *hclgrid.Grid { return a.grid }
