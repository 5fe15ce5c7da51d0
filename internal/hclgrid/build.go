package hclgrid

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/executor"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
	"github.com/vk/taskgrid/internal/workflow"
)

// BuildWorkflow resolves every task declaration through the registry and
// assembles the validated workflow. Unknown task types, unknown dependency
// names, duplicate declarations and cycles all fail here, before any run.
func BuildWorkflow(ctx context.Context, grid *Grid, reg *registry.Registry) (*workflow.Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	built := make(map[string]task.Task, len(grid.Tasks))
	for _, decl := range grid.Tasks {
		if _, exists := built[decl.Name]; exists {
			return nil, fmt.Errorf("task %q declared more than once (second declaration in %s)", decl.Name, decl.File)
		}
		t, err := reg.Build(decl.Type, decl.Name, decl.Static)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", decl.File, err)
		}
		built[decl.Name] = t
	}

	deps := make([]workflow.Dependency, 0, len(grid.Tasks))
	for _, decl := range grid.Tasks {
		d := workflow.Dependency{Task: built[decl.Name]}
		for _, need := range decl.DependsOn {
			needTask, ok := built[need]
			if !ok {
				return nil, fmt.Errorf("task %q in %s depends on undeclared task %q", decl.Name, decl.File, need)
			}
			d.Needs = append(d.Needs, needTask)
		}
		deps = append(deps, d)
	}

	wf, err := workflow.Build(deps)
	if err != nil {
		return nil, err
	}

	logger.Debug("Workflow built from grid.", "tasks", wf.Size(), "terminals", len(wf.Terminals()))
	return wf, nil
}

// ExternalArgs translates the grid's run blocks into per-run executor
// arguments. A grid with no run blocks still executes once, with no
// external arguments.
func (g *Grid) ExternalArgs() []executor.Args {
	if len(g.Runs) == 0 {
		return []executor.Args{{}}
	}

	argSets := make([]executor.Args, 0, len(g.Runs))
	for _, run := range g.Runs {
		args := make(executor.Args, len(run.Args))
		for taskName, kwargs := range run.Args {
			args[taskName] = executor.External{Named: kwargs}
		}
		argSets = append(argSets, args)
	}
	return argSets
}
