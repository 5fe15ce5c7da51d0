package testutil

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/task"
)

// Const returns a task that ignores its inputs and produces value.
func Const(name string, value any) task.Task {
	return task.Func(name, func(ctx context.Context, in *task.Invocation) (any, error) {
		return value, nil
	})
}

// Failing returns a task that always fails with the given message.
func Failing(name, message string) task.Task {
	return task.Func(name, func(ctx context.Context, in *task.Invocation) (any, error) {
		return nil, fmt.Errorf("%s", message)
	})
}

// AddN returns a task that adds n to its first input, which must be an int.
func AddN(name string, n int) task.Task {
	return task.Func(name, func(ctx context.Context, in *task.Invocation) (any, error) {
		v, ok := in.First().(int)
		if !ok {
			return nil, fmt.Errorf("task %s expected int input, got %T", name, in.First())
		}
		return v + n, nil
	})
}

// Negate returns a task that negates its first input, which must be an int.
func Negate(name string) task.Task {
	return task.Func(name, func(ctx context.Context, in *task.Invocation) (any, error) {
		v, ok := in.First().(int)
		if !ok {
			return nil, fmt.Errorf("task %s expected int input, got %T", name, in.First())
		}
		return -v, nil
	})
}
