package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/task"
	"github.com/vk/taskgrid/internal/testutil"
)

// names flattens a task slice to its names for easy assertions.
func names(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name()
	}
	return out
}

func TestBuildLinearChain(t *testing.T) {
	a := testutil.Const("a", 1)
	b := testutil.Const("b", 2)
	c := testutil.Const("c", 3)

	wf, err := Build([]Dependency{
		{Task: a},
		{Task: b, Needs: []task.Task{a}},
		{Task: c, Needs: []task.Task{b}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, names(wf.TopologicalOrder()))
	assert.Equal(t, []string{"c"}, names(wf.Terminals()))
	assert.Equal(t, 3, wf.Size())
}

func TestBuildTopologicalOrderIsValid(t *testing.T) {
	// Diamond with a tail: d depends on b and c, both depend on a; e hangs
	// off d.
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)
	c := testutil.Const("c", 0)
	d := testutil.Const("d", 0)
	e := testutil.Const("e", 0)

	wf, err := Build([]Dependency{
		{Task: e, Needs: []task.Task{d}},
		{Task: d, Needs: []task.Task{b, c}},
		{Task: c, Needs: []task.Task{a}},
		{Task: b, Needs: []task.Task{a}},
		{Task: a},
	})
	require.NoError(t, err)

	order := names(wf.TopologicalOrder())
	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		deps, ok := wf.DependenciesOf(name)
		require.True(t, ok)
		for _, dep := range deps {
			assert.Less(t, position[dep.Name()], position[name],
				"%s must come after its prerequisite %s", name, dep.Name())
		}
	}

	assert.Equal(t, []string{"e"}, names(wf.Terminals()))
}

func TestBuildOrderIsDeterministic(t *testing.T) {
	// b and c are both ready once a is done; declaration order breaks the
	// tie, so c (declared first) precedes b.
	build := func() *Workflow {
		a := testutil.Const("a", 0)
		b := testutil.Const("b", 0)
		c := testutil.Const("c", 0)
		wf, err := Build([]Dependency{
			{Task: c, Needs: []task.Task{a}},
			{Task: b, Needs: []task.Task{a}},
			{Task: a},
		})
		require.NoError(t, err)
		return wf
	}

	first := names(build().TopologicalOrder())
	assert.Equal(t, []string{"a", "c", "b"}, first)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, names(build().TopologicalOrder()))
	}
}

func TestBuildDirectCycleFails(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)

	_, err := Build([]Dependency{
		{Task: a, Needs: []task.Task{b}},
		{Task: b, Needs: []task.Task{a}},
	})
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, []string{"a", "b"}, cycleErr.Task)
}

func TestBuildLongerCycleFails(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)
	c := testutil.Const("c", 0)
	d := testutil.Const("d", 0)

	_, err := Build([]Dependency{
		{Task: a, Needs: []task.Task{d}},
		{Task: b, Needs: []task.Task{a}},
		{Task: c, Needs: []task.Task{b}},
		{Task: d, Needs: []task.Task{c}},
	})
	require.Error(t, err)

	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestBuildCycleInDisjointComponentFails(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)
	x := testutil.Const("x", 0)
	y := testutil.Const("y", 0)

	_, err := Build([]Dependency{
		{Task: a},
		{Task: b, Needs: []task.Task{a}},
		{Task: x, Needs: []task.Task{y}},
		{Task: y, Needs: []task.Task{x}},
	})
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, []string{"x", "y"}, cycleErr.Task)
}

func TestBuildSelfDependencyFails(t *testing.T) {
	a := testutil.Const("a", 0)

	_, err := Build([]Dependency{
		{Task: a, Needs: []task.Task{a}},
	})
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "a", cycleErr.Task)
}

func TestBuildDuplicateTaskFails(t *testing.T) {
	a1 := testutil.Const("a", 1)
	a2 := testutil.Const("a", 2)

	_, err := Build([]Dependency{
		{Task: a1},
		{Task: a2},
	})
	require.Error(t, err)

	var dupErr *DuplicateTaskError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "a", dupErr.Task)
}

func TestBuildUnknownDependencyFails(t *testing.T) {
	a := testutil.Const("a", 0)
	ghost := testutil.Const("ghost", 0)

	_, err := Build([]Dependency{
		{Task: a, Needs: []task.Task{ghost}},
	})
	require.Error(t, err)

	var unknownErr *UnknownTaskError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "a", unknownErr.Task)
	assert.Equal(t, "ghost", unknownErr.Need)
}

func TestBuildNilTaskFails(t *testing.T) {
	_, err := Build([]Dependency{{Task: nil}})
	assert.Error(t, err)
}

func TestMultipleTerminals(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)
	c := testutil.Const("c", 0)

	wf, err := Build([]Dependency{
		{Task: a},
		{Task: b, Needs: []task.Task{a}},
		{Task: c, Needs: []task.Task{a}},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b", "c"}, names(wf.Terminals()))
}

func TestDependenciesOfPreservesOrder(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)
	c := testutil.Const("c", 0)

	wf, err := Build([]Dependency{
		{Task: a},
		{Task: b},
		{Task: c, Needs: []task.Task{b, a}},
	})
	require.NoError(t, err)

	deps, ok := wf.DependenciesOf("c")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, names(deps))

	_, ok = wf.DependenciesOf("missing")
	assert.False(t, ok)
}

func TestTopologyExport(t *testing.T) {
	a := testutil.Const("a", 0)
	b := testutil.Const("b", 0)

	wf, err := Build([]Dependency{
		{Task: a},
		{Task: b, Needs: []task.Task{a}},
	})
	require.NoError(t, err)

	topo := wf.Topology()
	assert.Equal(t, []string{"a", "b"}, topo.Nodes)
	assert.Equal(t, []Edge{{From: "a", To: "b"}}, topo.Edges)
}

func TestLookup(t *testing.T) {
	a := testutil.Const("a", 42)

	wf, err := Build([]Dependency{{Task: a}})
	require.NoError(t, err)

	got, ok := wf.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Name())

	_, ok = wf.Lookup("nope")
	assert.False(t, ok)
}
