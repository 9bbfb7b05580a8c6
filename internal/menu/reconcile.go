package menu

// ResolveExpanded merges manual and search state into the set used for
// rendering. It never modifies its inputs.
//
// With no active query the result equals manual. Otherwise a code is expanded
// when it is manual, or auto-expanded and not overridden.
func ResolveExpanded(manual, auto, overrides CodeSet, queryActive bool) CodeSet {
	merged := manual.Clone()
	if !queryActive {
		return merged
	}
	for code := range auto {
		if !overrides.Has(code) {
			merged[code] = struct{}{}
		}
	}
	return merged
}

// ActiveAncestors returns the codes of every ancestor of every node whose
// path equals activePath, outermost first. Nodes without a real path never match.
func ActiveAncestors(tree []*Node, activePath string) []string {
	if activePath == "" || activePath == "#" {
		return nil
	}

	var (
		out   []string
		seen  = CodeSet{}
		chain []string
	)
	var visit func(nodes []*Node) bool
	visit = func(nodes []*Node) bool {
		found := false
		for _, n := range nodes {
			if n == nil {
				continue
			}
			chain = append(chain, n.Code)
			if n.HasPath() && n.Path == activePath {
				for _, code := range chain[:len(chain)-1] {
					if seen.Add(code) {
						out = append(out, code)
					}
				}
				found = true
			}
			if visit(n.Children) {
				found = true
			}
			chain = chain[:len(chain)-1]
		}
		return found
	}
	visit(tree)
	return out
}

// RevealActive makes sure every ancestor of the active node is in manual.
// It only inserts, so repeated runs for the same path change nothing.
// The number of inserted codes is returned.
func RevealActive(tree []*Node, activePath string, manual CodeSet) int {
	added := 0
	for _, code := range ActiveAncestors(tree, activePath) {
		if manual.Add(code) {
			added++
		}
	}
	return added
}
