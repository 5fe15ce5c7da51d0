// Package delay provides the built-in 'delay' task: it sleeps for a fixed
// duration and passes its first input through unchanged.
package delay

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the task type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("delay", New)
}

// New builds a delay task. Static configuration: required "duration" string
// in time.ParseDuration format, validated at construction.
func New(name string, static map[string]any) (task.Task, error) {
	raw, ok := static["duration"]
	if !ok {
		return nil, fmt.Errorf("delay task requires a 'duration' string")
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("'duration' must be a string, got %T", raw)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("invalid 'duration': %w", err)
	}

	return &delayTask{name: name, duration: d}, nil
}

type delayTask struct {
	name     string
	duration time.Duration
}

func (t *delayTask) Name() string { return t.name }

func (t *delayTask) Run(ctx context.Context, in *task.Invocation) (any, error) {
	timer := time.NewTimer(t.duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return in.First(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
