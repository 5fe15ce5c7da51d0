package workflow

import "github.com/vk/taskgrid/internal/task"

// Dependency declares one task together with the ordered list of tasks whose
// results it consumes. A task with no prerequisites is a source; a task that
// is nobody's prerequisite is terminal.
type Dependency struct {
	Task  task.Task
	Needs []task.Task
}

// Workflow is the validated dependency graph. All fields are populated by
// Build and never mutated afterwards.
type Workflow struct {
	// nodes holds every task in declaration order.
	nodes []*node
	// byName indexes nodes by task name.
	byName map[string]*node
	// order is the deterministic topological order.
	order []*node
	// terminals are the zero-out-degree nodes, in declaration order.
	terminals []*node
}

// node is a single vertex. Unexported so callers interact with the graph
// through the Workflow API, not by struct manipulation.
type node struct {
	task task.Task
	// deps are the prerequisite nodes in the order they were declared.
	deps []*node
	// dependents are the nodes that consume this node's result.
	dependents []*node
	// declIndex is the position in the original declaration list, the
	// tie-break that keeps the topological order stable.
	declIndex int
}

// Edge is one prerequisite relation in the exported topology.
type Edge struct {
	From string // prerequisite task
	To   string // consuming task
}

// Topology is a plain node/edge listing of the graph, for the execution
// report and external visualization tooling.
type Topology struct {
	// Nodes are task names in topological order.
	Nodes []string
	Edges []Edge
}
