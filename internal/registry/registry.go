// Package registry maps declared task types to the factories that build
// them. Modules self-register their task types here; the grid loader then
// resolves every `task "<type>" "<name>"` block through the registry.
package registry

import (
	"fmt"
	"sort"

	"github.com/vk/taskgrid/internal/task"
)

// Factory builds a concrete task from its declared name and static
// configuration. The static map is bound once at construction; the engine
// never looks at it again.
type Factory func(name string, static map[string]any) (task.Task, error)

// Module is the interface every built-in task package implements to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the task-type factories for a single application instance.
// There is deliberately no package-level default registry.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a task type name to its factory. Registering the same type
// twice is a programmer error and panics during startup.
func (r *Registry) Register(typeName string, f Factory) {
	if _, exists := r.factories[typeName]; exists {
		panic(fmt.Sprintf("registry: task type %q registered twice", typeName))
	}
	r.factories[typeName] = f
}

// Build constructs the task declared as (typeName, name) with the given
// static configuration.
func (r *Registry) Build(typeName, name string, static map[string]any) (task.Task, error) {
	f, ok := r.factories[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown task type %q for task %q (known types: %v)", typeName, name, r.Types())
	}
	t, err := f(name, static)
	if err != nil {
		return nil, fmt.Errorf("failed to construct task %q of type %q: %w", name, typeName, err)
	}
	return t, nil
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
