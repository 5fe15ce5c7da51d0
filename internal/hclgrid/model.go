package hclgrid

// TaskDecl is the format-agnostic representation of a `task` block.
type TaskDecl struct {
	// Type selects the registered factory, Name is the task's identity
	// within the workflow.
	Type string
	Name string
	// DependsOn lists the names of prerequisite tasks, in declaration order.
	DependsOn []string
	// Static holds the remaining block attributes, decoded to native Go
	// values. Bound once at construction.
	Static map[string]any
	// File is the grid file the block came from, for error messages.
	File string
}

// RunDecl is the representation of one `run` block: external keyword
// arguments keyed by task name.
type RunDecl struct {
	Args map[string]map[string]any
}

// Grid aggregates every task and run block found across the loaded files.
// Declaration order is preserved: it is the tie-break for the topological
// sort and the order of the requested runs.
type Grid struct {
	Tasks []*TaskDecl
	Runs  []*RunDecl
}

// NewGrid creates an empty Grid.
func NewGrid() *Grid {
	return &Grid{}
}
