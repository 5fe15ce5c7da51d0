package hclgrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/registry"
	"github.com/vk/taskgrid/internal/task"
	"github.com/vk/taskgrid/internal/testutil"
	"github.com/vk/taskgrid/internal/workflow"
)

// echoRegistry registers a single "echo" type whose tasks return their own
// static configuration.
func echoRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register("echo", func(name string, static map[string]any) (task.Task, error) {
		return task.Func(name, func(ctx context.Context, in *task.Invocation) (any, error) {
			return static, nil
		}), nil
	})
	return reg
}

func TestBuildWorkflowFromGrid(t *testing.T) {
	grid := &Grid{
		Tasks: []*TaskDecl{
			{Type: "echo", Name: "a", Static: map[string]any{}},
			{Type: "echo", Name: "b", DependsOn: []string{"a"}, Static: map[string]any{}},
		},
	}

	wf, err := BuildWorkflow(testutil.Context(), grid, echoRegistry())
	require.NoError(t, err)

	assert.Equal(t, 2, wf.Size())
	deps, ok := wf.DependenciesOf("b")
	require.True(t, ok)
	require.Len(t, deps, 1)
	assert.Equal(t, "a", deps[0].Name())
}

func TestBuildWorkflowUnknownType(t *testing.T) {
	grid := &Grid{
		Tasks: []*TaskDecl{
			{Type: "nope", Name: "a", Static: map[string]any{}, File: "main.hcl"},
		},
	}

	_, err := BuildWorkflow(testutil.Context(), grid, echoRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task type")
	assert.Contains(t, err.Error(), "main.hcl")
}

func TestBuildWorkflowUnknownDependency(t *testing.T) {
	grid := &Grid{
		Tasks: []*TaskDecl{
			{Type: "echo", Name: "a", DependsOn: []string{"ghost"}, Static: map[string]any{}, File: "main.hcl"},
		},
	}

	_, err := BuildWorkflow(testutil.Context(), grid, echoRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared task")
}

func TestBuildWorkflowCycleFails(t *testing.T) {
	grid := &Grid{
		Tasks: []*TaskDecl{
			{Type: "echo", Name: "a", DependsOn: []string{"b"}, Static: map[string]any{}},
			{Type: "echo", Name: "b", DependsOn: []string{"a"}, Static: map[string]any{}},
		},
	}

	_, err := BuildWorkflow(testutil.Context(), grid, echoRegistry())
	require.Error(t, err)

	var cycleErr *workflow.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestBuildWorkflowDuplicateName(t *testing.T) {
	grid := &Grid{
		Tasks: []*TaskDecl{
			{Type: "echo", Name: "a", Static: map[string]any{}, File: "one.hcl"},
			{Type: "echo", Name: "a", Static: map[string]any{}, File: "two.hcl"},
		},
	}

	_, err := BuildWorkflow(testutil.Context(), grid, echoRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared more than once")
}

func TestExternalArgsDefaultsToOneRun(t *testing.T) {
	grid := NewGrid()
	argSets := grid.ExternalArgs()

	require.Len(t, argSets, 1)
	assert.Empty(t, argSets[0])
}

func TestExternalArgsMirrorRunBlocks(t *testing.T) {
	grid := &Grid{
		Runs: []*RunDecl{
			{Args: map[string]map[string]any{"a": {"x": 1}}},
			{Args: map[string]map[string]any{"a": {"x": 2}, "b": {"y": "z"}}},
		},
	}

	argSets := grid.ExternalArgs()
	require.Len(t, argSets, 2)

	assert.Equal(t, map[string]any{"x": 1}, argSets[0]["a"].Named)
	assert.Equal(t, map[string]any{"x": 2}, argSets[1]["a"].Named)
	assert.Equal(t, map[string]any{"y": "z"}, argSets[1]["b"].Named)
}
