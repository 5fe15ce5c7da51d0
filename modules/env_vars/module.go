// Package env_vars provides the built-in 'env_vars' task: it reads a fixed
// set of environment variables and returns them as a name/value map.
package env_vars

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the task type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("env_vars", New)
}

// New builds an env_vars task. Static configuration: required "variables"
// list of environment variable names.
func New(name string, static map[string]any) (task.Task, error) {
	raw, ok := static["variables"]
	if !ok {
		return nil, fmt.Errorf("env_vars task requires a 'variables' list")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("'variables' must be a list of strings, got %T", raw)
	}

	t := &envTask{name: name}
	for _, entry := range list {
		s, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("'variables' entries must be strings, got %T", entry)
		}
		t.variables = append(t.variables, s)
	}
	return t, nil
}

type envTask struct {
	name      string
	variables []string
}

func (t *envTask) Name() string { return t.name }

func (t *envTask) Run(ctx context.Context, in *task.Invocation) (any, error) {
	values := make(map[string]any, len(t.variables))
	for _, v := range t.variables {
		values[v] = os.Getenv(v)
	}
	return values, nil
}
