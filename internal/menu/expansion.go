package menu

import "sort"

// CodeSet is a set of node codes.
type CodeSet map[string]struct{}

// NewCodeSet builds a set from codes.
func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Add inserts code and reports whether it was absent.
func (s CodeSet) Add(code string) bool {
	if _, ok := s[code]; ok {
		return false
	}
	s[code] = struct{}{}
	return true
}

// Remove deletes code.
func (s CodeSet) Remove(code string) {
	delete(s, code)
}

// Toggle flips membership of code and returns the new membership.
func (s CodeSet) Toggle(code string) bool {
	if _, ok := s[code]; ok {
		delete(s, code)
		return false
	}
	s[code] = struct{}{}
	return true
}

// Clone returns an independent copy.
func (s CodeSet) Clone() CodeSet {
	out := make(CodeSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Sorted returns the codes in lexical order.
func (s CodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same codes.
func (s CodeSet) Equal(other CodeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// ExpansionStore holds expand/collapse actions the user made directly.
// It is independent of search and survives query changes; only a new tree
// resets it.
type ExpansionStore struct {
	expanded CodeSet
}

// NewExpansionStore returns an empty store.
func NewExpansionStore() *ExpansionStore {
	return &ExpansionStore{expanded: CodeSet{}}
}

// Toggle flips code. Children are not affected.
func (s *ExpansionStore) Toggle(code string) bool {
	return s.expanded.Toggle(code)
}

// Expand inserts code and reports whether it was newly added.
func (s *ExpansionStore) Expand(code string) bool {
	return s.expanded.Add(code)
}

// Has reports whether code is manually expanded.
func (s *ExpansionStore) Has(code string) bool {
	return s.expanded.Has(code)
}

// Set exposes the live set to the reconciler. Callers must not keep it.
func (s *ExpansionStore) Set() CodeSet {
	return s.expanded
}

// Reset forgets every manual action.
func (s *ExpansionStore) Reset() {
	s.expanded = CodeSet{}
}
