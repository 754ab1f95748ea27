package deps

import (
	"slices"

	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/task"
)

// Graph represents the dependency and ownership relationships between tasks.
//
// Edges point from a task to each predecessor it lists in Dependencies and
// from a child to its owning project. Ids that name no task are ignored.
type Graph struct {
	order []string
	tasks map[string]task.Task
}

// Node is one task of the ownership tree.
type Node struct {
	Task     task.Task
	Children []Node
}

// NewGraph creates a Graph from a list of tasks.
func NewGraph(tasks []task.Task) *Graph {
	g := &Graph{
		order: make([]string, 0, len(tasks)),
		tasks: make(map[string]task.Task, len(tasks)),
	}
	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; !dup {
			g.order = append(g.order, t.ID)
		}
		g.tasks[t.ID] = t
	}
	return g
}

// Get returns a task by ID.
func (g *Graph) Get(id string) (task.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// edges returns the known successors of id in the cycle graph.
func (g *Graph) edges(id string) []string {
	t, ok := g.tasks[id]
	if !ok {
		return nil
	}
	var out []string
	for _, dep := range t.Dependencies {
		if _, known := g.tasks[dep]; known {
			out = append(out, dep)
		}
	}
	if t.Project != "" && t.Project != id {
		if _, known := g.tasks[t.Project]; known {
			out = append(out, t.Project)
		}
	}
	return out
}

// Predecessors returns the dependency ids of id that name known tasks.
func (g *Graph) Predecessors(id string) []string {
	t, ok := g.tasks[id]
	if !ok {
		return nil
	}
	var preds []string
	for _, dep := range t.Dependencies {
		if _, known := g.tasks[dep]; known {
			preds = append(preds, dep)
		}
	}
	return preds
}

// Dependents returns IDs of tasks that depend on the given task, in list
// order.
func (g *Graph) Dependents(id string) []string {
	var dependents []string
	for _, other := range g.order {
		if slices.Contains(g.tasks[other].Dependencies, id) {
			dependents = append(dependents, other)
		}
	}
	return dependents
}

// WouldCreateCycle checks if adding a dependency from -> to would create a cycle.
// Uses BFS from 'to' to see if we can reach 'from'.
func (g *Graph) WouldCreateCycle(from, to string) bool {
	visited := make(map[string]bool)
	queue := []string{to}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == from {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		queue = append(queue, g.edges(current)...)
	}
	return false
}

// ValidateAddDep validates adding a dependency from -> to.
func (g *Graph) ValidateAddDep(from, to string) error {
	if _, ok := g.tasks[from]; !ok {
		return gantterrors.TaskNotFoundError{ID: from}
	}
	if _, ok := g.tasks[to]; !ok {
		return gantterrors.TaskNotFoundError{ID: to}
	}
	if g.WouldCreateCycle(from, to) {
		return CycleError{From: from, To: to}
	}
	return nil
}

// DetectCycle returns the first cycle found, as a path that starts and ends
// on the same id, or nil if the graph is acyclic. Tasks are visited in list
// order so the result is deterministic.
func (g *Graph) DetectCycle() []string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.order))
	parent := make(map[string]string, len(g.order))

	var dfs func(id string) []string
	dfs = func(id string) []string {
		color[id] = gray
		for _, next := range g.edges(id) {
			switch color[next] {
			case gray:
				path := []string{id}
				for cur := id; cur != next; {
					cur = parent[cur]
					path = append(path, cur)
				}
				slices.Reverse(path)
				return append(path, next)
			case white:
				parent[next] = id
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[id] = black
		return nil
	}

	for _, id := range g.order {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Validate reports the first cycle as a CycleError.
func (g *Graph) Validate() error {
	if cycle := g.DetectCycle(); cycle != nil {
		return CycleError{Path: cycle}
	}
	return nil
}

// BuildTree returns the ownership hierarchy in display order: tasks with no
// known project at the root, each project carrying its children.
func (g *Graph) BuildTree() []Node {
	sorted := make([]task.Task, 0, len(g.order))
	for _, id := range g.order {
		sorted = append(sorted, g.tasks[id])
	}
	sorted = task.SortByDisplayOrder(sorted)

	visiting := map[string]bool{}
	var build func(t task.Task) Node
	build = func(t task.Task) Node {
		visiting[t.ID] = true
		defer delete(visiting, t.ID)
		n := Node{Task: t}
		if t.Type != task.TypeProject {
			return n
		}
		for _, c := range sorted {
			if c.Project == t.ID && c.ID != t.ID && !visiting[c.ID] {
				n.Children = append(n.Children, build(c))
			}
		}
		return n
	}

	var roots []Node
	for _, t := range sorted {
		if owner, ok := g.tasks[t.Project]; ok && t.Project != t.ID && owner.Type == task.TypeProject {
			continue
		}
		roots = append(roots, build(t))
	}
	return roots
}
