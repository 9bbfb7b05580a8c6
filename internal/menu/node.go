package menu

// Node is a single navigable entry in the menu tree.
// Nodes are built once per menu load and never modified afterwards.
type Node struct {
	// Code identifies the node across the whole tree. Expansion state is keyed on it,
	// so the data source must keep it unique.
	Code string `yaml:"code" json:"code"`

	// Name is the display label, and the text searched by the filter
	Name string `yaml:"name" json:"name"`

	// Path is the navigation target ("" or "#" means none)
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Icon is an opaque icon class passed through to renderers
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`

	// Children are the ordered sub-entries
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// HasChildren reports whether the node has sub-entries.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// HasPath reports whether the node points somewhere.
func (n *Node) HasPath() bool {
	return n != nil && n.Path != "" && n.Path != "#"
}

// IsClickable reports whether activating the node navigates.
func (n *Node) IsClickable() bool {
	return n.HasPath() && !n.HasChildren()
}

// IsInert reports whether the node can neither navigate nor expand.
func (n *Node) IsInert() bool {
	return !n.HasPath() && !n.HasChildren()
}

// Walk visits every node depth-first in sibling order. Returning false from fn
// stops descent into that node's children.
func Walk(tree []*Node, fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(tree, 0)
}

// Count returns the total number of nodes in the tree.
func Count(tree []*Node) int {
	total := 0
	Walk(tree, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Find returns the first node with the given code, or nil.
func Find(tree []*Node, code string) *Node {
	var found *Node
	Walk(tree, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Code == code {
			found = n
			return false
		}
		return true
	})
	return found
}
