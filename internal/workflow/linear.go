package workflow

import "github.com/vk/taskgrid/internal/task"

// Linear builds the trivial chain pipeline: each task's sole prerequisite is
// its predecessor in the argument list. It is sugar over Build for the
// common "compose these steps in order" case.
func Linear(tasks ...task.Task) (*Workflow, error) {
	deps := make([]Dependency, len(tasks))
	for i, t := range tasks {
		deps[i] = Dependency{Task: t}
		if i > 0 {
			deps[i].Needs = []task.Task{tasks[i-1]}
		}
	}
	return Build(deps)
}
