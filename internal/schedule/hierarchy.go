package schedule

import (
	"sort"

	"github.com/mfigueroa/obra/internal/domain"
)

// NodeKind tags a tree node structurally: a node with children is a
// group regardless of its stored type, a childless one is a leaf.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindGroup
)

// TreeNode is one task positioned in the parent/child forest.
type TreeNode struct {
	Task     *domain.Task
	Kind     NodeKind
	Children []*TreeNode
}

// Forest is the parent/child view of a flat task list. Tasks whose
// parent ID points at a missing task are treated as roots rather than
// dropped.
type Forest struct {
	Roots []*TreeNode
	byID  map[string]*TreeNode
}

// BuildForest indexes a flat task list into a forest. Siblings are
// ordered by their fractional Order key, with name then ID as
// deterministic tiebreakers.
func BuildForest(tasks []*domain.Task) *Forest {
	f := &Forest{byID: make(map[string]*TreeNode, len(tasks))}
	for _, t := range tasks {
		f.byID[t.ID] = &TreeNode{Task: t}
	}
	for _, t := range tasks {
		node := f.byID[t.ID]
		if !t.IsRoot() {
			if parent, ok := f.byID[*t.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		f.Roots = append(f.Roots, node)
	}
	sortSiblings(f.Roots)
	for _, n := range f.byID {
		sortSiblings(n.Children)
		if len(n.Children) > 0 {
			n.Kind = KindGroup
		}
	}
	return f
}

func sortSiblings(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Task, nodes[j].Task
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// Node returns the tree node for a task ID, or nil if unknown.
func (f *Forest) Node(id string) *TreeNode {
	return f.byID[id]
}

// Len returns the number of tasks in the forest.
func (f *Forest) Len() int {
	return len(f.byID)
}

// DescendantIDs returns every task reachable below id through parent
// edges, in depth-first sibling order. The task itself is excluded.
func (f *Forest) DescendantIDs(id string) []string {
	node := f.byID[id]
	if node == nil {
		return nil
	}
	var ids []string
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		for _, c := range n.Children {
			ids = append(ids, c.Task.ID)
			walk(c)
		}
	}
	walk(node)
	return ids
}

// LeafDescendants returns the leaf tasks below id, expanding nested
// groups and excluding the intermediate groups themselves.
func (f *Forest) LeafDescendants(id string) []*domain.Task {
	node := f.byID[id]
	if node == nil {
		return nil
	}
	var leaves []*domain.Task
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		for _, c := range n.Children {
			if c.Kind == KindGroup {
				walk(c)
			} else {
				leaves = append(leaves, c.Task)
			}
		}
	}
	walk(node)
	return leaves
}

// Leaves returns every leaf task in the forest in tree order.
func (f *Forest) Leaves() []*domain.Task {
	var leaves []*domain.Task
	var walk func(nodes []*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			if n.Kind == KindGroup {
				walk(n.Children)
			} else {
				leaves = append(leaves, n.Task)
			}
		}
	}
	walk(f.Roots)
	return leaves
}

// CategoryGroup is one bucket in the category-path view: root tasks
// directly at this path plus nested sub-path buckets. Subtrees travel
// with their root, so only root tasks are grouped.
type CategoryGroup struct {
	Name  string
	Nodes []*TreeNode
	Sub   []*CategoryGroup
}

// GroupByCategory builds the orthogonal category/subcategory/
// subsubcategory view over the forest's roots. Buckets keep first-seen
// order; roots without a category land in an unnamed leading bucket.
func GroupByCategory(f *Forest) []*CategoryGroup {
	var top []*CategoryGroup
	for _, root := range f.Roots {
		path := root.Task.CategoryPath()
		bucket := findOrAddGroup(&top, firstOrEmpty(path))
		for _, name := range rest(path) {
			bucket = findOrAddGroup(&bucket.Sub, name)
		}
		bucket.Nodes = append(bucket.Nodes, root)
	}
	return top
}

func firstOrEmpty(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[0]
}

func rest(path []string) []string {
	if len(path) <= 1 {
		return nil
	}
	return path[1:]
}

func findOrAddGroup(groups *[]*CategoryGroup, name string) *CategoryGroup {
	for _, g := range *groups {
		if g.Name == name {
			return g
		}
	}
	g := &CategoryGroup{Name: name}
	*groups = append(*groups, g)
	return g
}
