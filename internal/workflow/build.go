package workflow

import (
	"fmt"

	"github.com/vk/taskgrid/internal/task"
)

// Build constructs a validated Workflow from an ordered list of task
// declarations. It fails with *DuplicateTaskError, *UnknownTaskError or
// *CycleError; an invalid graph is never repaired or partially built.
//
// The declaration order is significant: it is the tie-break for the
// topological sort, so the same declarations always yield the same execution
// order.
func Build(deps []Dependency) (*Workflow, error) {
	wf := &Workflow{
		byName: make(map[string]*node, len(deps)),
	}

	// First pass: register every task as a node.
	for i, d := range deps {
		if d.Task == nil {
			return nil, fmt.Errorf("declaration %d has a nil task", i)
		}
		name := d.Task.Name()
		if _, exists := wf.byName[name]; exists {
			return nil, &DuplicateTaskError{Task: name}
		}
		n := &node{task: d.Task, declIndex: i}
		wf.byName[name] = n
		wf.nodes = append(wf.nodes, n)
	}

	// Second pass: link prerequisite edges.
	for _, d := range deps {
		n := wf.byName[d.Task.Name()]
		for _, need := range d.Needs {
			dep, ok := wf.byName[need.Name()]
			if !ok {
				return nil, &UnknownTaskError{Task: n.task.Name(), Need: need.Name()}
			}
			if dep == n {
				return nil, &CycleError{Task: n.task.Name()}
			}
			n.deps = append(n.deps, dep)
			dep.dependents = append(dep.dependents, n)
		}
	}

	order, err := wf.sortTopologically()
	if err != nil {
		return nil, err
	}
	wf.order = order

	for _, n := range wf.nodes {
		if len(n.dependents) == 0 {
			wf.terminals = append(wf.terminals, n)
		}
	}

	return wf, nil
}

// sortTopologically computes the execution order using Kahn's algorithm. The
// ready queue is seeded in declaration order and consumed FIFO, so nodes
// with equal readiness are ordered by declaration, deterministically. Any
// node left unordered participates in a cycle.
func (wf *Workflow) sortTopologically() ([]*node, error) {
	inDegree := make(map[*node]int, len(wf.nodes))
	for _, n := range wf.nodes {
		inDegree[n] = len(n.deps)
	}

	queue := make([]*node, 0, len(wf.nodes))
	for _, n := range wf.nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]*node, 0, len(wf.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, dependent := range n.dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(wf.nodes) {
		// Every unordered node is on (or downstream of) a cycle; name the
		// first declared one that still has unresolved prerequisites.
		for _, n := range wf.nodes {
			if inDegree[n] > 0 {
				return nil, &CycleError{Task: n.task.Name()}
			}
		}
	}

	return order, nil
}

// Tasks returns every task in declaration order.
func (wf *Workflow) Tasks() []task.Task {
	out := make([]task.Task, len(wf.nodes))
	for i, n := range wf.nodes {
		out[i] = n.task
	}
	return out
}

// TopologicalOrder returns the deterministic execution order: every task
// appears after all of its prerequisites.
func (wf *Workflow) TopologicalOrder() []task.Task {
	out := make([]task.Task, len(wf.order))
	for i, n := range wf.order {
		out[i] = n.task
	}
	return out
}

// Terminals returns the tasks that are not a prerequisite of any other task,
// in declaration order. Their results form the WorkflowResults of a run.
func (wf *Workflow) Terminals() []task.Task {
	out := make([]task.Task, len(wf.terminals))
	for i, n := range wf.terminals {
		out[i] = n.task
	}
	return out
}

// DependenciesOf returns the ordered prerequisites of the named task. The
// second return is false when the task is not part of the workflow.
func (wf *Workflow) DependenciesOf(name string) ([]task.Task, bool) {
	n, ok := wf.byName[name]
	if !ok {
		return nil, false
	}
	out := make([]task.Task, len(n.deps))
	for i, dep := range n.deps {
		out[i] = dep.task
	}
	return out, true
}

// Lookup returns the task registered under name.
func (wf *Workflow) Lookup(name string) (task.Task, bool) {
	n, ok := wf.byName[name]
	if !ok {
		return nil, false
	}
	return n.task, true
}

// Size returns the number of tasks in the workflow.
func (wf *Workflow) Size() int { return len(wf.nodes) }

// Topology exports the graph as a plain node/edge list for reporting and
// visualization. Nodes are listed in topological order, edges in declaration
// order of their consuming task.
func (wf *Workflow) Topology() Topology {
	topo := Topology{
		Nodes: make([]string, len(wf.order)),
	}
	for i, n := range wf.order {
		topo.Nodes[i] = n.task.Name()
	}
	for _, n := range wf.nodes {
		for _, dep := range n.deps {
			topo.Edges = append(topo.Edges, Edge{From: dep.task.Name(), To: n.task.Name()})
		}
	}
	return topo
}
