// Package print provides the built-in 'print' task: it renders its named
// inputs, one per line, to the run's logger and returns the rendered text.
package print

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the task type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("print", New)
}

// New builds a print task. Static configuration: optional "prefix" string
// prepended to every rendered line.
func New(name string, static map[string]any) (task.Task, error) {
	t := &printTask{name: name}
	if prefix, ok := static["prefix"]; ok {
		s, ok := prefix.(string)
		if !ok {
			return nil, fmt.Errorf("prefix must be a string, got %T", prefix)
		}
		t.prefix = s
	}
	return t, nil
}

type printTask struct {
	name   string
	prefix string
}

func (t *printTask) Name() string { return t.name }

func (t *printTask) Run(ctx context.Context, in *task.Invocation) (any, error) {
	logger := ctxlog.FromContext(ctx)

	// Sort keys for consistent output.
	keys := make([]string, 0, len(in.Named))
	for k := range in.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s%s = %v\n", t.prefix, k, in.Named[k])
	}

	rendered := b.String()
	logger.Info("print task output", "task", t.name, "output", rendered)
	return rendered, nil
}
