package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/task"
	"github.com/vk/taskgrid/internal/testutil"
)

func TestRegisterAndBuild(t *testing.T) {
	reg := New()
	reg.Register("constant", func(name string, static map[string]any) (task.Task, error) {
		return testutil.Const(name, static["value"]), nil
	})

	built, err := reg.Build("constant", "answer", map[string]any{"value": 42})
	require.NoError(t, err)
	assert.Equal(t, "answer", built.Name())

	value, err := built.Run(testutil.Context(), &task.Invocation{})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestBuildUnknownType(t *testing.T) {
	reg := New()

	_, err := reg.Build("missing", "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task type")
}

func TestBuildFactoryFailure(t *testing.T) {
	reg := New()
	boom := errors.New("bad static config")
	reg.Register("broken", func(name string, static map[string]any) (task.Task, error) {
		return nil, boom
	})

	_, err := reg.Build("broken", "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRegisterTwicePanics(t *testing.T) {
	reg := New()
	factory := func(name string, static map[string]any) (task.Task, error) {
		return testutil.Const(name, nil), nil
	}

	reg.Register("dup", factory)
	assert.Panics(t, func() { reg.Register("dup", factory) })
}

func TestTypesAreSorted(t *testing.T) {
	reg := New()
	factory := func(name string, static map[string]any) (task.Task, error) {
		return testutil.Const(name, nil), nil
	}

	reg.Register("zeta", factory)
	reg.Register("alpha", factory)
	reg.Register("mid", factory)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Types())
}
