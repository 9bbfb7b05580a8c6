package menu

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// genTree draws a small tree whose names come from a tiny alphabet so that
// random queries hit often.
func genTree(t *rapid.T) []*Node {
	next := 0
	var gen func(depth int) []*Node
	gen = func(depth int) []*Node {
		maxKids := 3
		if depth >= 3 {
			maxKids = 0
		}
		n := rapid.IntRange(0, maxKids).Draw(t, fmt.Sprintf("children@%d", depth))
		nodes := make([]*Node, 0, n)
		for i := 0; i < n; i++ {
			next++
			node := &Node{
				Code: fmt.Sprintf("n%d", next),
				Name: rapid.StringMatching(`[abcAB ]{0,5}`).Draw(t, "name"),
				Path: rapid.SampledFrom([]string{"", "#", "/a", "/b", "/c"}).Draw(t, "path"),
			}
			node.Children = gen(depth + 1)
			nodes = append(nodes, node)
		}
		return nodes
	}
	return gen(0)
}

func genQuery(t *rapid.T) string {
	return rapid.StringMatching(`[abcAB ]{0,3}`).Draw(t, "query")
}

// parents maps every code to its parent (nil for roots).
func parents(tree []*Node) map[string]*Node {
	out := map[string]*Node{}
	var walk func(nodes []*Node, parent *Node)
	walk = func(nodes []*Node, parent *Node) {
		for _, n := range nodes {
			out[n.Code] = parent
			walk(n.Children, n)
		}
	}
	walk(tree, nil)
	return out
}

func hasMatchingDescendant(n *Node, query string) bool {
	for _, c := range n.Children {
		if Matches(c.Name, query) || hasMatchingDescendant(c, query) {
			return true
		}
	}
	return false
}

func TestPropertyEmptyQueryIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		var check func(src []*Node, got []*FilteredNode)
		check = func(src []*Node, got []*FilteredNode) {
			if len(src) != len(got) {
				t.Fatalf("length %d != %d", len(got), len(src))
			}
			for i := range src {
				if got[i].Node != src[i] {
					t.Fatalf("node %s not referenced", src[i].Code)
				}
				if got[i].ShouldAutoExpand {
					t.Fatalf("node %s auto-expanded without a query", src[i].Code)
				}
				if got[i].HasChildren != (len(src[i].Children) > 0) {
					t.Fatalf("node %s HasChildren mismatch", src[i].Code)
				}
				check(src[i].Children, got[i].Children)
			}
		}
		check(tree, Filter(tree, ""))
	})
}

func TestPropertyFilterSoundness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		query := genQuery(t)
		if NormalizeQuery(query) == "" {
			return
		}

		// Levels reached through ShouldAutoExpand are pruned; below a direct
		// match the source subtree is carried as is.
		var check func(nodes []*FilteredNode, pruned bool)
		check = func(nodes []*FilteredNode, pruned bool) {
			for _, f := range nodes {
				if !pruned {
					if f.ShouldAutoExpand {
						t.Fatalf("node %s auto-expanded inside a matched subtree", f.Code())
					}
					check(f.Children, false)
					continue
				}
				descendant := hasMatchingDescendant(f.Node, query)
				if !Matches(f.Node.Name, query) && !descendant {
					t.Fatalf("node %s kept without a match", f.Code())
				}
				if f.ShouldAutoExpand != descendant {
					t.Fatalf("node %s auto-expand = %v, matching descendant = %v",
						f.Code(), f.ShouldAutoExpand, descendant)
				}
				check(f.Children, f.ShouldAutoExpand)
			}
		}
		check(Filter(tree, query), true)
	})
}

func TestPropertyFilterCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		query := genQuery(t)
		if NormalizeQuery(query) == "" {
			return
		}

		kept := CodeSet{}
		WalkFiltered(Filter(tree, query), func(f *FilteredNode, _ int) {
			kept.Add(f.Code())
		})

		up := parents(tree)
		Walk(tree, func(n *Node, _ int) bool {
			if !Matches(n.Name, query) {
				return true
			}
			if !kept.Has(n.Code) {
				t.Fatalf("matching node %s missing", n.Code)
			}
			for p := up[n.Code]; p != nil; p = up[p.Code] {
				if !kept.Has(p.Code) {
					t.Fatalf("ancestor %s of %s missing", p.Code, n.Code)
				}
			}
			return true
		})
	})
}

func TestPropertyClearingQueryEmptiesOverrides(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		e := NewEngine()
		e.Load(tree)
		e.SetQuery(genQuery(t))

		all := make([]string, 0)
		Walk(tree, func(n *Node, _ int) bool {
			all = append(all, n.Code)
			return true
		})
		if len(all) > 0 {
			toggles := rapid.SliceOf(rapid.SampledFrom(all)).Draw(t, "toggles")
			for _, code := range toggles {
				e.Toggle(code)
			}
		}

		e.SetQuery("")
		if len(e.CollapseOverrides()) != 0 {
			t.Fatalf("overrides survived clearing: %v", e.CollapseOverrides().Sorted())
		}
		if !e.Expanded().Equal(e.Manual()) {
			t.Fatalf("expanded %v != manual %v", e.Expanded().Sorted(), e.Manual().Sorted())
		}
	})
}

func TestPropertyResolveExpandedIsPure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codeGen := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})
		manual := NewCodeSet(rapid.SliceOf(codeGen).Draw(t, "manual")...)
		auto := NewCodeSet(rapid.SliceOf(codeGen).Draw(t, "auto")...)
		overrides := NewCodeSet(rapid.SliceOf(codeGen).Draw(t, "overrides")...)
		active := rapid.Bool().Draw(t, "active")

		first := ResolveExpanded(manual, auto, overrides, active)
		second := ResolveExpanded(manual, auto, overrides, active)
		if !first.Equal(second) {
			t.Fatalf("results differ: %v vs %v", first.Sorted(), second.Sorted())
		}
		for code := range manual {
			if !first.Has(code) {
				t.Fatalf("manual code %s dropped", code)
			}
		}
		for code := range first {
			inSearch := active && auto.Has(code) && !overrides.Has(code)
			if !manual.Has(code) && !inSearch {
				t.Fatalf("code %s expanded without a reason", code)
			}
		}
	})
}

func TestPropertyRevealIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		path := rapid.SampledFrom([]string{"", "#", "/a", "/b", "/c"}).Draw(t, "active")

		manual := CodeSet{}
		RevealActive(tree, path, manual)
		snapshot := manual.Clone()
		if added := RevealActive(tree, path, manual); added != 0 {
			t.Fatalf("second reveal added %d", added)
		}
		if !snapshot.Equal(manual) {
			t.Fatalf("second reveal changed manual state")
		}
	})
}

func TestPropertyToggleInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		e := NewEngine()
		e.Load(tree)
		e.SetQuery(genQuery(t))

		code := rapid.SampledFrom([]string{"n1", "n2", "n3", "n4", "unknown"}).Draw(t, "code")
		manual := e.Manual()
		overrides := e.CollapseOverrides()

		e.Toggle(code)
		e.Toggle(code)
		if !manual.Equal(e.Manual()) || !overrides.Equal(e.CollapseOverrides()) {
			t.Fatalf("double toggle of %s changed state", code)
		}
	})
}
