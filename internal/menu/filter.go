package menu

import "strings"

// FilteredNode is a view over a source Node produced by a filter pass.
// It references the source node instead of copying it; only the child list
// and the two flags are computed per pass.
type FilteredNode struct {
	Node     *Node
	Children []*FilteredNode

	// HasChildren is true when the source node had children, even if the
	// pass pruned some of them away.
	HasChildren bool

	// ShouldAutoExpand is true when the node was kept because a descendant matched.
	ShouldAutoExpand bool
}

// Code is shorthand for f.Node.Code.
func (f *FilteredNode) Code() string { return f.Node.Code }

// Filter returns the part of tree that is relevant to query.
//
// An empty query keeps every node with ShouldAutoExpand false. Otherwise a
// node is kept when its own name matches or when any child is kept. Nodes
// kept through a descendant carry only the kept children; a node kept only
// for its own name keeps its full subtree.
func Filter(tree []*Node, query string) []*FilteredNode {
	if len(tree) == 0 {
		return []*FilteredNode{}
	}

	query = NormalizeQuery(query)
	if query == "" {
		return annotate(tree)
	}
	return prune(tree, query)
}

// annotate wraps the tree unchanged.
func annotate(nodes []*Node) []*FilteredNode {
	out := make([]*FilteredNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, &FilteredNode{
			Node:        n,
			Children:    annotate(n.Children),
			HasChildren: len(n.Children) > 0,
		})
	}
	return out
}

// prune filters children before deciding on the parent.
func prune(nodes []*Node, query string) []*FilteredNode {
	var out []*FilteredNode
	for _, n := range nodes {
		if n == nil {
			continue
		}

		kept := prune(n.Children, query)
		isMatch := strings.Contains(strings.ToLower(n.Name), query)
		if !isMatch && len(kept) == 0 {
			continue
		}

		children := kept
		if len(children) == 0 {
			children = annotate(n.Children)
		}

		out = append(out, &FilteredNode{
			Node:             n,
			Children:         children,
			HasChildren:      len(n.Children) > 0,
			ShouldAutoExpand: len(kept) > 0,
		})
	}
	if out == nil {
		return []*FilteredNode{}
	}
	return out
}

// WalkFiltered visits every node of a filtered tree depth-first.
func WalkFiltered(tree []*FilteredNode, fn func(f *FilteredNode, depth int)) {
	var walk func(nodes []*FilteredNode, depth int)
	walk = func(nodes []*FilteredNode, depth int) {
		for _, f := range nodes {
			fn(f, depth)
			walk(f.Children, depth+1)
		}
	}
	walk(tree, 0)
}
