package task

import "context"

// funcTask adapts a plain function into a Task.
type funcTask struct {
	name string
	fn   func(ctx context.Context, in *Invocation) (any, error)
}

// Func wraps fn as a Task with the given name. It is the cheapest way to
// declare a task inline, and the form most tests use.
func Func(name string, fn func(ctx context.Context, in *Invocation) (any, error)) Task {
	return &funcTask{name: name, fn: fn}
}

func (t *funcTask) Name() string { return t.name }

func (t *funcTask) Run(ctx context.Context, in *Invocation) (any, error) {
	return t.fn(ctx, in)
}
